package live

import (
	"guesthouse/internal/domain"
	"guesthouse/internal/modules/rating"
)

const (
	TopicBookings = "bookings"
	TopicReviews  = "reviews"
)

// ClientMessage is what a client may send; only "ping" is understood.
type ClientMessage struct {
	Type string `json:"type"`
}

// ServerMessage is pushed to clients. Snapshot payloads always carry the
// full current state, never a delta.
type ServerMessage struct {
	Type         string `json:"type"`
	Topic        string `json:"topic,omitempty"`
	Payload      any    `json:"payload,omitempty"`
	ErrorCode    string `json:"code,omitempty"`
	ErrorMessage string `json:"message,omitempty"`
}

type BookingsPayload struct {
	Bookings []domain.Booking `json:"bookings"`
	Pending  int              `json:"pending"`
}

type ReviewsPayload struct {
	Reviews       []domain.Review `json:"reviews"`
	Home          rating.Summary  `json:"home"`
	ReviewsScreen rating.Summary  `json:"reviews_screen"`
}

func NewSnapshotEvent(topic string, payload any) *ServerMessage {
	return &ServerMessage{Type: "snapshot", Topic: topic, Payload: payload}
}

func NewPongEvent() *ServerMessage {
	return &ServerMessage{Type: "pong"}
}

func NewErrorEvent(code, message string) *ServerMessage {
	return &ServerMessage{Type: "error", ErrorCode: code, ErrorMessage: message}
}
