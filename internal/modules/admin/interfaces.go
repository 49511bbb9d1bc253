package admin

import (
	"context"

	"guesthouse/internal/domain"
	"guesthouse/internal/modules/notification"
)

type BookingStore interface {
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	DeleteBooking(ctx context.Context, id string) error
}

type ReviewLister interface {
	ListReviews(ctx context.Context) ([]domain.Review, error)
}

type ConfirmedNotifier interface {
	NotifyBookingConfirmed(ctx context.Context, b domain.Booking, attachments ...notification.Attachment) error
}
