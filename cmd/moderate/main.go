// Command moderate lists and moderates guesthouse bookings from a terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"guesthouse/internal/app"
	"guesthouse/internal/config"
	"guesthouse/internal/logging"
	"guesthouse/internal/modules/admin"
	"guesthouse/internal/modules/booking"
	"guesthouse/internal/modules/notification"
	"guesthouse/internal/modules/review"
)

func main() {
	if err := newRootCmd(openService).Execute(); err != nil {
		os.Exit(1)
	}
}

// openService wires the moderation service against the configured store and
// email transport, the same way the API does.
func openService(ctx context.Context) (*admin.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tree, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	dispatcher := notification.NewDispatcher(app.NewSender(cfg, log), notification.Identity{
		Name:  cfg.Guesthouse.Name,
		Email: cfg.Guesthouse.Email,
		Phone: cfg.Guesthouse.Phone,
	}, log, nil)

	return admin.NewService(
		booking.NewService(tree, log, nil),
		review.NewService(tree, log),
		dispatcher,
		log,
		nil,
	), nil
}
