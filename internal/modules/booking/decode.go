package booking

import (
	"sort"
	"strconv"
	"time"

	"guesthouse/internal/domain"
	"guesthouse/internal/store"
)

// parseGuests reads the free-text guest count. Anything that is not a
// positive integer counts as one guest.
func parseGuests(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func toRecordFields(b domain.Booking, now time.Time) map[string]any {
	fields := map[string]any{
		"status":    string(b.Status),
		"created":   b.Created,
		"timestamp": now.Format(time.RFC1123),
		"source":    string(b.Source),
	}
	switch b.Source {
	case domain.SourceRoomsPage:
		fields["roomName"] = b.RoomName
		fields["roomId"] = b.RoomID
		fields["price"] = b.Price
		fields["capacity"] = b.Capacity
	default:
		fields["name"] = b.Name
		fields["email"] = b.Email
		fields["phone"] = b.Phone
		fields["checkIn"] = b.CheckIn
		fields["checkOut"] = b.CheckOut
		fields["guests"] = b.Guests
		fields["message"] = b.Message
	}
	return fields
}

// toDomainBooking decodes a stored record field by field. Every field has a
// fallback so older or hand-edited records still decode.
func toDomainBooking(rec store.Record, now time.Time) domain.Booking {
	str := func(field string) string {
		v, _ := rec.String(field)
		return v
	}
	num := func(field string) int {
		v, _ := rec.Int64(field)
		return int(v)
	}

	b := domain.Booking{
		ID:       rec.Key,
		Name:     str("name"),
		Email:    str("email"),
		Phone:    str("phone"),
		CheckIn:  str("checkIn"),
		CheckOut: str("checkOut"),
		Message:  str("message"),
		Source:   domain.BookingSource(str("source")),
		RoomID:   num("roomId"),
		RoomName: str("roomName"),
		Price:    num("price"),
		Capacity: num("capacity"),
		Guests:   1,
		Status:   domain.BookingPending,
		Created:  now.UnixMilli(),
	}

	if g, ok := rec.Int64("guests"); ok && g >= 1 {
		b.Guests = g
	}
	if c, ok := rec.Int64("created"); ok {
		b.Created = c
	}
	if s := str("status"); s != "" {
		b.Status = domain.BookingStatus(s)
	}
	return b
}

func decodeSnapshot(snap store.Snapshot, now time.Time) []domain.Booking {
	out := make([]domain.Booking, 0, len(snap.Records))
	for _, rec := range snap.Records {
		out = append(out, toDomainBooking(rec, now))
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(bookings []domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Created > bookings[j].Created
	})
}
