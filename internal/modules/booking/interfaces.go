package booking

import (
	"context"

	"guesthouse/internal/domain"
	"guesthouse/internal/modules/notification"
)

// ReceivedNotifier emails the guest that their request arrived.
type ReceivedNotifier interface {
	NotifyBookingReceived(ctx context.Context, b domain.Booking, attachments ...notification.Attachment) error
}
