package catalog

import "guesthouse/internal/domain"

type RoomFilter struct {
	Size        string
	MinCapacity int
	MaxPrice    int
}

type RoomListResponse struct {
	Rooms    []domain.Room `json:"rooms"`
	Showing  int           `json:"showing"`
	Total    int           `json:"total"`
	MinPrice int           `json:"min_price"`
	MaxPrice int           `json:"max_price"`
}
