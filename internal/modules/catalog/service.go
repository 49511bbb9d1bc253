package catalog

import (
	"strings"

	"guesthouse/internal/domain"
)

// AllSizes is the size filter value that matches every room.
const AllSizes = "All Sizes"

// FilterRooms keeps rooms matching every predicate, in source order.
// An empty or AllSizes size, minCapacity <= 0 and maxPrice <= 0 each match all.
func FilterRooms(rooms []domain.Room, size string, minCapacity, maxPrice int) []domain.Room {
	size = strings.TrimSpace(size)
	if minCapacity <= 0 {
		minCapacity = 1
	}

	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if size != "" && size != AllSizes && !strings.EqualFold(string(r.Size), size) {
			continue
		}
		if r.Capacity < minCapacity {
			continue
		}
		if maxPrice > 0 && r.Price > maxPrice {
			continue
		}
		out = append(out, r)
	}
	return out
}

type Service struct {
	rooms []domain.Room
}

func NewService() *Service {
	return &Service{rooms: Rooms()}
}

func (s *Service) List(f RoomFilter) []domain.Room {
	return FilterRooms(s.rooms, f.Size, f.MinCapacity, f.MaxPrice)
}

func (s *Service) Total() int { return len(s.rooms) }

func (s *Service) GetByID(id int) (domain.Room, error) {
	for _, r := range s.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Room{}, ErrRoomNotFound
}

// PriceRange reports the cheapest and dearest nightly rate.
func (s *Service) PriceRange() (lo, hi int) {
	for i, r := range s.rooms {
		if i == 0 || r.Price < lo {
			lo = r.Price
		}
		if r.Price > hi {
			hi = r.Price
		}
	}
	return lo, hi
}
