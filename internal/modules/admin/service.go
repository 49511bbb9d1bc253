package admin

import (
	"context"

	"guesthouse/internal/domain"
	"guesthouse/internal/metrics"
	"guesthouse/internal/modules/notification"

	"go.uber.org/zap"
)

// seedReviewCount is added to the stored review total on the dashboard.
const seedReviewCount = 6

type Service struct {
	bookings BookingStore
	reviews  ReviewLister
	notifier ConfirmedNotifier
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewService(bookings BookingStore, reviews ReviewLister, notifier ConfirmedNotifier, log *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		bookings: bookings,
		reviews:  reviews,
		notifier: notifier,
		log:      log.Named("admin"),
		metrics:  m,
	}
}

// ListBookings returns bookings newest first, optionally only those with the
// given status.
func (s *Service) ListBookings(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	all, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return all, nil
	}
	out := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

// Confirm moves a pending booking to confirmed and emails the guest. The
// status write stands even if the email fails.
func (s *Service) Confirm(ctx context.Context, id string, attachments ...notification.Attachment) (Outcome, error) {
	b, err := s.transition(ctx, "confirm", id, domain.BookingConfirmed)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Booking: *b}
	if s.notifier != nil {
		if err := s.notifier.NotifyBookingConfirmed(ctx, *b, attachments...); err != nil {
			s.log.Warn("confirmation email failed", zap.String("booking_id", id), zap.Error(err))
			out.EmailErr = err
		}
	}
	return out, nil
}

// Decline moves a pending booking to declined. No email is sent.
func (s *Service) Decline(ctx context.Context, id string) (domain.Booking, error) {
	b, err := s.transition(ctx, "decline", id, domain.BookingDeclined)
	if err != nil {
		return domain.Booking{}, err
	}
	return *b, nil
}

func (s *Service) transition(ctx context.Context, action, id string, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		s.metrics.Moderation(action, err)
		return nil, err
	}
	if !b.IsPending() {
		s.metrics.Moderation(action, ErrInvalidStatusTransition)
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, id, to); err != nil {
		s.metrics.Moderation(action, err)
		s.log.Error("status write failed", zap.String("booking_id", id), zap.String("action", action), zap.Error(err))
		return nil, err
	}
	s.metrics.Moderation(action, nil)
	s.log.Info("booking moderated", zap.String("booking_id", id), zap.String("status", string(to)))

	b.Status = to
	return b, nil
}

// Delete removes a booking in any state. It is irreversible, so the caller
// must pass confirmed=true.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	err := s.bookings.DeleteBooking(ctx, id)
	s.metrics.Moderation("delete", err)
	if err != nil {
		s.log.Error("delete failed", zap.String("booking_id", id), zap.Error(err))
		return err
	}
	s.log.Info("booking deleted", zap.String("booking_id", id))
	return nil
}

func (s *Service) Analytics(ctx context.Context) (AnalyticsResponse, error) {
	all, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return AnalyticsResponse{}, err
	}

	var out AnalyticsResponse
	out.TotalBookings = len(all)
	for _, b := range all {
		switch b.Status {
		case domain.BookingPending:
			out.Pending++
		case domain.BookingConfirmed:
			out.Confirmed++
		case domain.BookingDeclined:
			out.Declined++
		}
	}
	out.Processed = out.TotalBookings - out.Pending

	out.TotalReviews = seedReviewCount
	if stored, err := s.reviews.ListReviews(ctx); err != nil {
		s.log.Warn("review count unavailable", zap.Error(err))
	} else {
		out.TotalReviews += len(stored)
	}
	return out, nil
}
