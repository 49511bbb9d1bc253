// Package live streams store snapshots to WebSocket clients: the bookings
// list for the admin dashboard and the reviews list with both rating
// summaries for the public screens.
package live

import (
	"context"
	"net/http"

	"guesthouse/internal/domain"
	"guesthouse/internal/modules/rating"
	"guesthouse/internal/modules/review"
	"guesthouse/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already filtered by the CORS middleware for browsers.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type BookingSubscriber interface {
	SubscribeBookings(ctx context.Context, fn func([]domain.Booking, error)) (store.Subscription, error)
}

type ReviewSubscriber interface {
	SubscribeReviews(ctx context.Context, fn func([]domain.Review, error)) (store.Subscription, error)
}

type Handler struct {
	hub      *Hub
	bookings BookingSubscriber
	reviews  ReviewSubscriber
	log      *zap.Logger
}

func NewHandler(hub *Hub, bookings BookingSubscriber, reviews ReviewSubscriber, log *zap.Logger) *Handler {
	return &Handler{hub: hub, bookings: bookings, reviews: reviews, log: log.Named("live")}
}

// RegisterRoutes mounts the public reviews stream.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/reviews", h.Reviews)
}

// RegisterAdminRoutes expects a group already behind admin auth.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/bookings", h.Bookings)
}

// Bookings streams the full bookings list, newest first, on every change.
//
// Endpoint: GET /api/v1/admin/ws/bookings?token=JWT
func (h *Handler) Bookings(c *gin.Context) {
	h.serve(c, TopicBookings, func(ctx context.Context, cl *client) (store.Subscription, error) {
		return h.bookings.SubscribeBookings(ctx, func(list []domain.Booking, err error) {
			if err != nil {
				h.log.Warn("bookings stream read failed", zap.Error(err))
				cl.offer(NewErrorEvent("STORE_UNAVAILABLE", "Failed to load bookings"))
				return
			}
			pending := 0
			for _, b := range list {
				if b.IsPending() {
					pending++
				}
			}
			cl.offer(NewSnapshotEvent(TopicBookings, BookingsPayload{Bookings: list, Pending: pending}))
		})
	})
}

// Reviews streams seed plus stored reviews and both rating summaries.
//
// Endpoint: GET /api/v1/ws/reviews
func (h *Handler) Reviews(c *gin.Context) {
	h.serve(c, TopicReviews, func(ctx context.Context, cl *client) (store.Subscription, error) {
		return h.reviews.SubscribeReviews(ctx, func(stored []domain.Review, err error) {
			if err != nil {
				// the screens keep working on seed data alone
				h.log.Warn("reviews stream read failed", zap.Error(err))
				stored = nil
			}
			cl.offer(NewSnapshotEvent(TopicReviews, ReviewsPayload{
				Reviews:       review.WithSeed(stored),
				Home:          homeSummary(stored, err),
				ReviewsScreen: rating.ReviewsScreenSummary(review.SeedReviews(), stored),
			}))
		})
	})
}

func homeSummary(stored []domain.Review, err error) rating.Summary {
	if err != nil {
		return rating.HomePlaceholder()
	}
	return rating.HomeSummary(stored)
}

type subscribeFunc func(ctx context.Context, cl *client) (store.Subscription, error)

func (h *Handler) serve(c *gin.Context, topic string, subscribe subscribeFunc) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := newClient(conn, h.log)
	h.hub.Register(topic, conn)

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := subscribe(ctx, cl)
	if err != nil {
		h.log.Error("live subscribe failed", zap.String("topic", topic), zap.Error(err))
		cancel()
		h.hub.Unregister(topic, conn)
		return
	}
	h.log.Debug("live client connected", zap.String("topic", topic))

	go cl.writePump()
	cl.readPump()

	sub.Close()
	cancel()
	close(cl.done)
	h.hub.Unregister(topic, conn)
	h.log.Debug("live client disconnected", zap.String("topic", topic))
}
