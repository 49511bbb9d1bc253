package domain

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDeclined  BookingStatus = "declined"
)

// BookingSource records which surface produced a booking.
type BookingSource string

const (
	SourceContactForm BookingSource = "contact_form"
	SourceRoomsPage   BookingSource = "rooms_page"
)

// Booking is a guest's stay request. Contact-form bookings carry the guest
// details; room-card bookings carry the room snapshot instead.
type Booking struct {
	ID       string        `json:"id"`
	Name     string        `json:"name,omitempty"`
	Email    string        `json:"email,omitempty"`
	Phone    string        `json:"phone,omitempty"`
	CheckIn  string        `json:"check_in,omitempty"`
	CheckOut string        `json:"check_out,omitempty"`
	Guests   int64         `json:"guests"`
	Message  string        `json:"message,omitempty"`
	Status   BookingStatus `json:"status"`
	Created  int64         `json:"created"`
	Source   BookingSource `json:"source,omitempty"`

	RoomID   int    `json:"room_id,omitempty"`
	RoomName string `json:"room_name,omitempty"`
	Price    int    `json:"price,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

func (b Booking) IsPending() bool { return b.Status == BookingPending }
