// Command seed writes sample bookings and reviews into the configured store
// for local development.
package main

import (
	"context"
	"fmt"
	"os"

	"guesthouse/internal/app"
	"guesthouse/internal/config"
	"guesthouse/internal/logging"
	"guesthouse/internal/modules/booking"
	"guesthouse/internal/modules/catalog"
	"guesthouse/internal/modules/review"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sampleBookings = []booking.BookingFields{
	{
		Name: "Thabo Nkosi", Email: "thabo.nkosi@example.com", Phone: "+27821234567",
		CheckIn: "2025-12-01", CheckOut: "2025-12-04", Guests: "2",
		Message: "We will arrive after 8pm.",
	},
	{
		Name: "Anika van Wyk", Email: "anika.vw@example.com", Phone: "0834567890",
		CheckIn: "2025-12-12", CheckOut: "2025-12-14", Guests: "1",
	},
	{
		Name: "Sipho Dlamini", Email: "sipho.d@example.com", Phone: "+27 72 555 0101",
		CheckIn: "2025-12-20", CheckOut: "2025-12-27", Guests: "4",
		Message: "Family holiday, two children.",
	},
}

var sampleReviews = []review.ReviewFields{
	{Name: "Karen Botha", Rating: 5, Comment: "Spotless rooms and a lovely pool. Vanessa made us feel at home.", Category: "Family"},
	{Name: "Musa Khumalo", Rating: 4, Comment: "Good value for a work trip, close to the airport.", Category: "Business Traveler"},
}

// roomInterestIDs are catalog rooms that get a one-tap booking request.
var roomInterestIDs = []int{1, 5}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var skipReviews bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write sample bookings and reviews into the store",
		Long: `seed writes a few contact-form bookings, room-card requests and guest
reviews using the same configuration as the API. Records are appended, so
running it twice creates duplicates.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			tree, err := app.OpenStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			s := seeder{
				bookings: booking.NewService(tree, log, nil),
				reviews:  review.NewService(tree, log),
				catalog:  catalog.NewService(),
				log:      log,
			}
			return s.run(cmd.Context(), !skipReviews)
		},
	}
	cmd.Flags().BoolVar(&skipReviews, "skip-reviews", false, "Only write bookings")
	return cmd
}

type seeder struct {
	bookings *booking.Service
	reviews  *review.Service
	catalog  *catalog.Service
	log      *zap.Logger
}

func (s seeder) run(ctx context.Context, withReviews bool) error {
	for _, f := range sampleBookings {
		b, err := s.bookings.SubmitBooking(ctx, f)
		if err != nil {
			return fmt.Errorf("seed booking for %s: %w", f.Name, err)
		}
		s.log.Info("booking created", zap.String("id", b.ID), zap.String("guest", b.Name))
	}

	for _, id := range roomInterestIDs {
		room, err := s.catalog.GetByID(id)
		if err != nil {
			return fmt.Errorf("seed room interest: %w", err)
		}
		b, err := s.bookings.SubmitRoomInterest(ctx, room)
		if err != nil {
			return fmt.Errorf("seed room interest for %s: %w", room.Name, err)
		}
		s.log.Info("room request created", zap.String("id", b.ID), zap.String("room", room.Name))
	}

	if !withReviews {
		return nil
	}
	for _, f := range sampleReviews {
		r, err := s.reviews.SubmitReview(ctx, f)
		if err != nil {
			return fmt.Errorf("seed review by %s: %w", f.Name, err)
		}
		s.log.Info("review created", zap.String("id", r.ID), zap.String("name", r.Name))
	}
	return nil
}
