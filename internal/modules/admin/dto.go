package admin

import "guesthouse/internal/domain"

// Outcome is the result of a moderation action that also sends email.
// EmailErr is set when the status write succeeded but the email did not.
type Outcome struct {
	Booking  domain.Booking
	EmailErr error
}

type AnalyticsResponse struct {
	TotalBookings int `json:"total_bookings"`
	Pending       int `json:"pending"`
	// Processed is every booking that is no longer pending.
	Processed    int `json:"processed"`
	Confirmed    int `json:"confirmed"`
	Declined     int `json:"declined"`
	TotalReviews int `json:"total_reviews"`
}

type BookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int              `json:"total"`
}

type ModerationResponse struct {
	Booking   domain.Booking `json:"booking"`
	EmailSent bool           `json:"email_sent"`
}
