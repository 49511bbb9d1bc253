package notification

import (
	"context"
	"strconv"

	"guesthouse/internal/domain"
	"guesthouse/internal/logging"
	"guesthouse/internal/metrics"

	"go.uber.org/zap"
)

// Identity is who the guesthouse emails appear to come from.
type Identity struct {
	Name  string
	Email string
	Phone string
}

// Dispatcher turns bookings into the two guest emails.
type Dispatcher struct {
	sender  Sender
	from    Identity
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewDispatcher(sender Sender, from Identity, log *zap.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{sender: sender, from: from, log: log.Named("notification"), metrics: m}
}

// NotifyBookingReceived acknowledges a contact-form request. The template
// sends from and to the guest's own address, matching the hosted template.
func (d *Dispatcher) NotifyBookingReceived(ctx context.Context, b domain.Booking, attachments ...Attachment) error {
	msg := Message{
		Template: TemplateBookingReceived,
		To:       b.Email,
		Subject:  "We received your booking request",
		Params: map[string]string{
			"from_name":  b.Name,
			"from_email": b.Email,
			"to_email":   b.Email,
			"phone":      b.Phone,
			"check_in":   b.CheckIn,
			"check_out":  b.CheckOut,
			"guests":     strconv.FormatInt(b.Guests, 10),
			"message":    b.Message,
		},
		Attachments: attachments,
	}
	return d.send(ctx, b, msg)
}

// NotifyBookingConfirmed tells the guest an admin accepted the booking.
func (d *Dispatcher) NotifyBookingConfirmed(ctx context.Context, b domain.Booking, attachments ...Attachment) error {
	msg := Message{
		Template: TemplateBookingConfirmed,
		To:       b.Email,
		Subject:  "Your booking at " + d.from.Name + " is confirmed",
		Params: map[string]string{
			"from_name":  d.from.Name,
			"from_email": d.from.Email,
			"to_email":   b.Email,
			"to_name":    b.Name,
			"guest_name": b.Name,
			"phone":      b.Phone,
			"check_in":   b.CheckIn,
			"check_out":  b.CheckOut,
			"guests":     strconv.FormatInt(b.Guests, 10),
			"message":    b.Message,
		},
		Attachments: attachments,
	}
	return d.send(ctx, b, msg)
}

func (d *Dispatcher) send(ctx context.Context, b domain.Booking, msg Message) error {
	for _, a := range msg.Attachments {
		if len(a.Data) > RecommendedAttachmentBytes {
			d.log.Warn("attachment exceeds recommended size",
				zap.String("template", string(msg.Template)),
				zap.String("name", a.Name),
				zap.Int("bytes", len(a.Data)),
				zap.Int("limit", RecommendedAttachmentBytes))
		}
	}

	err := d.sender.Send(ctx, msg)
	d.metrics.EmailSent(string(msg.Template), err)
	if err != nil {
		d.log.Warn("email send failed",
			zap.String("template", string(msg.Template)),
			zap.String("booking_id", b.ID),
			logging.Email("to", msg.To),
			zap.Error(err))
		return err
	}
	d.log.Info("email sent",
		zap.String("template", string(msg.Template)),
		zap.String("booking_id", b.ID),
		logging.Email("to", msg.To))
	return nil
}
