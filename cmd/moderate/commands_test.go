package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"guesthouse/internal/domain"
	"guesthouse/internal/modules/admin"
	"guesthouse/internal/modules/booking"
	"guesthouse/internal/modules/notification"
	"guesthouse/internal/modules/review"
	"guesthouse/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturingNotifier struct {
	sent        []domain.Booking
	attachments []notification.Attachment
}

func (n *capturingNotifier) NotifyBookingConfirmed(ctx context.Context, b domain.Booking, attachments ...notification.Attachment) error {
	n.sent = append(n.sent, b)
	n.attachments = append(n.attachments, attachments...)
	return nil
}

type cliFixture struct {
	bookings *booking.Service
	notifier *capturingNotifier
	open     serviceOpener
}

func newCLIFixture() *cliFixture {
	tree := store.NewMemoryTree()
	f := &cliFixture{
		bookings: booking.NewService(tree, zap.NewNop(), nil),
		notifier: &capturingNotifier{},
	}
	svc := admin.NewService(f.bookings, review.NewService(tree, zap.NewNop()), f.notifier, zap.NewNop(), nil)
	f.open = func(context.Context) (*admin.Service, error) { return svc, nil }
	return f
}

func (f *cliFixture) submit(t *testing.T, name string) domain.Booking {
	t.Helper()
	b, err := f.bookings.SubmitBooking(context.Background(), booking.BookingFields{
		Name: name, Email: "guest@example.com", Phone: "0821234567",
		CheckIn: "2025-12-01", CheckOut: "2025-12-03", Guests: "2",
	})
	require.NoError(t, err)
	return *b
}

func (f *cliFixture) run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(f.open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd(nil)
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"list", "confirm", "decline", "delete"})
}

func TestListCmd(t *testing.T) {
	f := newCLIFixture()
	f.submit(t, "Ann")
	b := f.submit(t, "Bongani")
	require.NoError(t, f.bookings.UpdateStatus(context.Background(), b.ID, domain.BookingDeclined))

	out, err := f.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "Bongani")

	out, err = f.run("list", "--status", "pending", "--json")
	require.NoError(t, err)
	var items []domain.Booking
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Ann", items[0].Name)

	_, err = f.run("list", "--status", "archived")
	assert.Error(t, err)
}

func TestListCmd_Empty(t *testing.T) {
	out, err := newCLIFixture().run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "No bookings.")
}

func TestConfirmCmd(t *testing.T) {
	f := newCLIFixture()
	b := f.submit(t, "Ann")

	pdf := filepath.Join(t.TempDir(), "invoice.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4 test"), 0o600))

	out, err := f.run("confirm", b.ID, "--attach", pdf)
	require.NoError(t, err)
	assert.Contains(t, out, "Confirmation email sent to guest@example.com")
	require.Len(t, f.notifier.sent, 1)
	require.Len(t, f.notifier.attachments, 1)
	assert.Equal(t, "invoice.pdf", f.notifier.attachments[0].Name)

	_, err = f.run("confirm", b.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only pending bookings")
}

func TestDeclineCmd(t *testing.T) {
	f := newCLIFixture()
	b := f.submit(t, "Ann")

	out, err := f.run("decline", b.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Booking declined")

	got, err := f.bookings.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingDeclined, got.Status)
	assert.Empty(t, f.notifier.sent)
}

func TestDeleteCmd_RequiresYes(t *testing.T) {
	f := newCLIFixture()
	b := f.submit(t, "Ann")

	_, err := f.run("delete", b.ID)
	require.Error(t, err)

	_, err = f.bookings.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)

	out, err := f.run("delete", b.ID, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Booking deleted")

	_, err = f.bookings.GetBooking(context.Background(), b.ID)
	assert.ErrorIs(t, err, booking.ErrNotFound)

	_, err = f.run("delete", b.ID, "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no booking with that id")
}
