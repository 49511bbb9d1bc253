package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"guesthouse/internal/domain"
	"guesthouse/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock tree for failure paths; happy paths run against store.MemoryTree.
type MockTree struct {
	mock.Mock
}

func (m *MockTree) Push(ctx context.Context, collection string, fields map[string]any) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

func (m *MockTree) Get(ctx context.Context, collection, key string) (store.Record, error) {
	args := m.Called(ctx, collection, key)
	return args.Get(0).(store.Record), args.Error(1)
}

func (m *MockTree) List(ctx context.Context, collection string) (store.Snapshot, error) {
	args := m.Called(ctx, collection)
	return args.Get(0).(store.Snapshot), args.Error(1)
}

func (m *MockTree) Update(ctx context.Context, collection, key string, fields map[string]any) error {
	args := m.Called(ctx, collection, key, fields)
	return args.Error(0)
}

func (m *MockTree) Remove(ctx context.Context, collection, key string) error {
	args := m.Called(ctx, collection, key)
	return args.Error(0)
}

func (m *MockTree) Watch(ctx context.Context, collection string, fn store.Listener) (store.Subscription, error) {
	args := m.Called(ctx, collection, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(store.Subscription), args.Error(1)
}

var fixedNow = time.Date(2025, time.October, 14, 9, 30, 0, 0, time.UTC)

func newTestService(tree store.Tree) *Service {
	svc := NewService(tree, zap.NewNop(), nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func validFields() BookingFields {
	return BookingFields{
		Name:     "  Tumelo Makowa ",
		Email:    "tumelo@example.com",
		Phone:    "0821234567",
		CheckIn:  "2025-12-20",
		CheckOut: "2025-12-23",
		Guests:   "2",
		Message:  "Late arrival",
	}
}

func TestService_SubmitBooking_Success(t *testing.T) {
	tree := store.NewMemoryTree()
	svc := newTestService(tree)

	b, err := svc.SubmitBooking(context.Background(), validFields())
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Tumelo Makowa", b.Name)
	assert.Equal(t, int64(2), b.Guests)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, fixedNow.UnixMilli(), b.Created)
	assert.Equal(t, domain.SourceContactForm, b.Source)

	rec, err := tree.Get(context.Background(), store.Bookings, b.ID)
	require.NoError(t, err)
	status, _ := rec.String("status")
	checkIn, _ := rec.String("checkIn")
	assert.Equal(t, "pending", status)
	assert.Equal(t, "2025-12-20", checkIn)
}

func TestService_SubmitBooking_GuestsFallback(t *testing.T) {
	svc := newTestService(store.NewMemoryTree())

	for _, raw := range []string{"two", "0", "-3", "2.5"} {
		f := validFields()
		f.Guests = raw
		b, err := svc.SubmitBooking(context.Background(), f)
		require.NoError(t, err, raw)
		assert.Equal(t, int64(1), b.Guests, raw)
	}
}

func TestService_SubmitBooking_MissingFieldsNeverReachStore(t *testing.T) {
	tree := new(MockTree)
	svc := newTestService(tree)

	f := validFields()
	f.Phone = "   "
	f.CheckOut = ""

	_, err := svc.SubmitBooking(context.Background(), f)
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"phone", "check_out"}, verr.Missing)
	tree.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SubmitBooking_MessageIsOptional(t *testing.T) {
	svc := newTestService(store.NewMemoryTree())

	f := validFields()
	f.Message = ""
	_, err := svc.SubmitBooking(context.Background(), f)
	assert.NoError(t, err)
}

func TestService_SubmitBooking_WriteFailure(t *testing.T) {
	tree := new(MockTree)
	tree.On("Push", mock.Anything, store.Bookings, mock.Anything).Return("", errors.New("network down"))
	svc := newTestService(tree)

	_, err := svc.SubmitBooking(context.Background(), validFields())

	var werr *RemoteWriteError
	require.True(t, errors.As(err, &werr))
	assert.Contains(t, werr.Error(), "network down")
}

func TestService_SubmitRoomInterest(t *testing.T) {
	tree := store.NewMemoryTree()
	svc := newTestService(tree)

	room := domain.Room{ID: 5, Name: "Family Room", Capacity: 4, Price: 1200}
	b, err := svc.SubmitRoomInterest(context.Background(), room)
	require.NoError(t, err)

	rec, err := tree.Get(context.Background(), store.Bookings, b.ID)
	require.NoError(t, err)
	source, _ := rec.String("source")
	roomName, _ := rec.String("roomName")
	price, _ := rec.Int64("price")
	assert.Equal(t, "rooms_page", source)
	assert.Equal(t, "Family Room", roomName)
	assert.Equal(t, int64(1200), price)
}

func TestService_ListBookings_NewestFirstWithFallbacks(t *testing.T) {
	tree := new(MockTree)
	tree.On("List", mock.Anything, store.Bookings).Return(store.Snapshot{
		Collection: store.Bookings,
		Records: []store.Record{
			{Key: "a", Fields: map[string]any{"name": "Old", "created": float64(1000), "guests": "3", "status": "confirmed"}},
			{Key: "b", Fields: map[string]any{"name": "New", "created": "5000", "guests": "many"}},
			{Key: "c", Fields: map[string]any{"name": "Undated"}},
		},
	}, nil)
	svc := newTestService(tree)

	got, err := svc.ListBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, fixedNow.UnixMilli(), got[0].Created)
	assert.Equal(t, domain.BookingPending, got[0].Status)
	assert.Equal(t, int64(1), got[0].Guests)

	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, int64(5000), got[1].Created)
	assert.Equal(t, int64(1), got[1].Guests)

	assert.Equal(t, "a", got[2].ID)
	assert.Equal(t, int64(3), got[2].Guests)
	assert.Equal(t, domain.BookingConfirmed, got[2].Status)
}

func TestService_ListBookings_ReadFailure(t *testing.T) {
	tree := new(MockTree)
	tree.On("List", mock.Anything, store.Bookings).Return(store.Snapshot{}, errors.New("permission denied"))
	svc := newTestService(tree)

	_, err := svc.ListBookings(context.Background())
	var rerr *RemoteReadError
	assert.True(t, errors.As(err, &rerr))
}

func TestService_SubscribeBookings_FullListEachChange(t *testing.T) {
	tree := store.NewMemoryTree()
	svc := newTestService(tree)
	ctx := context.Background()

	got := make(chan []domain.Booking, 16)
	sub, err := svc.SubscribeBookings(ctx, func(list []domain.Booking, err error) {
		if err == nil {
			got <- list
		}
	})
	require.NoError(t, err)
	defer sub.Close()

	waitForLen(t, got, 0)

	_, err = svc.SubmitBooking(ctx, validFields())
	require.NoError(t, err)
	waitForLen(t, got, 1)

	_, err = svc.SubmitRoomInterest(ctx, domain.Room{ID: 1, Name: "Standard Single Room", Capacity: 1, Price: 450})
	require.NoError(t, err)
	waitForLen(t, got, 2)
}

func TestService_StatusAndDelete(t *testing.T) {
	tree := store.NewMemoryTree()
	svc := newTestService(tree)
	ctx := context.Background()

	b, err := svc.SubmitBooking(ctx, validFields())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, b.ID, domain.BookingDeclined))
	got, err := svc.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingDeclined, got.Status)
	assert.Equal(t, "Tumelo Makowa", got.Name)

	require.NoError(t, svc.DeleteBooking(ctx, b.ID))
	_, err = svc.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, b.ID, domain.BookingConfirmed), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteBooking(ctx, b.ID), ErrNotFound)
}

func TestService_DeleteFailure(t *testing.T) {
	tree := new(MockTree)
	tree.On("Remove", mock.Anything, store.Bookings, "x").Return(errors.New("timeout"))
	svc := newTestService(tree)

	err := svc.DeleteBooking(context.Background(), "x")
	var werr *RemoteWriteError
	assert.True(t, errors.As(err, &werr))
}

func waitForLen(t *testing.T, ch <-chan []domain.Booking, want int) []domain.Booking {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case list := <-ch:
			if len(list) == want {
				return list
			}
		case <-deadline:
			t.Fatalf("no booking list of length %d", want)
			return nil
		}
	}
}
