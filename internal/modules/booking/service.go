package booking

import (
	"context"
	"errors"
	"time"

	"guesthouse/internal/domain"
	"guesthouse/internal/logging"
	"guesthouse/internal/metrics"
	"guesthouse/internal/store"

	"go.uber.org/zap"
)

type Service struct {
	tree    store.Tree
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(tree store.Tree, log *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		tree:    tree,
		log:     log.Named("booking"),
		metrics: m,
		now:     time.Now,
	}
}

// SubmitBooking stores a contact-form request. Status and creation time are
// always set here, whatever the caller sent.
func (s *Service) SubmitBooking(ctx context.Context, f BookingFields) (*domain.Booking, error) {
	f = f.trimmed()
	if missing := f.missing(); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	now := s.now()
	b := domain.Booking{
		Name:     f.Name,
		Email:    f.Email,
		Phone:    f.Phone,
		CheckIn:  f.CheckIn,
		CheckOut: f.CheckOut,
		Guests:   parseGuests(f.Guests),
		Message:  f.Message,
		Status:   domain.BookingPending,
		Created:  now.UnixMilli(),
		Source:   domain.SourceContactForm,
	}

	id, err := s.tree.Push(ctx, store.Bookings, toRecordFields(b, now))
	if err != nil {
		s.log.Error("booking write failed", zap.Error(err), logging.Email("guest", b.Email))
		return nil, &RemoteWriteError{Op: "submit booking", Err: err}
	}
	b.ID = id

	s.metrics.BookingSubmitted(string(b.Source))
	s.log.Info("booking submitted", zap.String("booking_id", id), logging.Email("guest", b.Email), zap.Int64("guests", b.Guests))
	return &b, nil
}

// SubmitRoomInterest stores a one-tap request from a room card.
func (s *Service) SubmitRoomInterest(ctx context.Context, room domain.Room) (*domain.Booking, error) {
	now := s.now()
	b := domain.Booking{
		RoomID:   room.ID,
		RoomName: room.Name,
		Price:    room.Price,
		Capacity: room.Capacity,
		Guests:   1,
		Status:   domain.BookingPending,
		Created:  now.UnixMilli(),
		Source:   domain.SourceRoomsPage,
	}

	id, err := s.tree.Push(ctx, store.Bookings, toRecordFields(b, now))
	if err != nil {
		s.log.Error("room interest write failed", zap.Error(err), zap.Int("room_id", room.ID))
		return nil, &RemoteWriteError{Op: "submit room interest", Err: err}
	}
	b.ID = id

	s.metrics.BookingSubmitted(string(b.Source))
	s.log.Info("room interest submitted", zap.String("booking_id", id), zap.Int("room_id", room.ID))
	return &b, nil
}

// ListBookings reads every booking once, newest first.
func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	snap, err := s.tree.List(ctx, store.Bookings)
	if err != nil {
		return nil, &RemoteReadError{Op: "list bookings", Err: err}
	}
	return decodeSnapshot(snap, s.now()), nil
}

// SubscribeBookings delivers the full, newly sorted list on every change.
func (s *Service) SubscribeBookings(ctx context.Context, fn func([]domain.Booking, error)) (store.Subscription, error) {
	return s.tree.Watch(ctx, store.Bookings, func(snap store.Snapshot, err error) {
		if err != nil {
			fn(nil, &RemoteReadError{Op: "watch bookings", Err: err})
			return
		}
		fn(decodeSnapshot(snap, s.now()), nil)
	})
}

func (s *Service) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	rec, err := s.tree.Get(ctx, store.Bookings, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &RemoteReadError{Op: "get booking", Err: err}
	}
	b := toDomainBooking(rec, s.now())
	return &b, nil
}

// UpdateStatus writes the status field only. No transition rules apply here.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	err := s.tree.Update(ctx, store.Bookings, id, map[string]any{"status": string(status)})
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return &RemoteWriteError{Op: "update booking status", Err: err}
	}
	return nil
}

func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	err := s.tree.Remove(ctx, store.Bookings, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return &RemoteWriteError{Op: "delete booking", Err: err}
	}
	return nil
}
