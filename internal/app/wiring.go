package app

import (
	"context"
	"fmt"

	"guesthouse/internal/config"
	"guesthouse/internal/database"
	"guesthouse/internal/modules/chatbot"
	"guesthouse/internal/modules/notification"
	"guesthouse/internal/store"

	"go.uber.org/zap"
)

// OpenStore returns the configured tree. For Postgres it also starts a
// change listener bound to ctx, so writes from other processes reach this
// process's watchers.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.Tree, error) {
	if cfg.StoreDriver == "memory" {
		log.Warn("using in-memory store, data is lost on restart")
		return store.NewMemoryTree(), nil
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	var opts []store.GormOption
	postgres := database.IsPostgres(cfg.DatabaseURL)
	if postgres {
		opts = append(opts, store.WithPostgresNotify())
	}
	tree := store.NewGormTree(db, opts...)
	if err := tree.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	if postgres {
		listener := store.NewChangeListener(cfg.DatabaseURL, tree.Broker(), log.Named("store.listener"))
		go listener.Run(ctx)
	}
	return tree, nil
}

func NewSender(cfg *config.Config, log *zap.Logger) notification.Sender {
	if cfg.Email.Transport == "smtp" {
		s := cfg.Email.SMTP
		return notification.NewSMTPSender(notification.SMTPConfig{
			Host:     s.Host,
			Port:     s.Port,
			Username: s.Username,
			Password: s.Password,
			From:     s.From,
			FromName: cfg.Guesthouse.Name,
		})
	}

	e := cfg.Email.EmailJS
	return notification.NewEmailJSSender(notification.EmailJSConfig{
		Endpoint:    e.Endpoint,
		ServiceID:   e.ServiceID,
		PublicKey:   e.PublicKey,
		AccessToken: e.AccessToken,
		Templates: map[notification.Template]string{
			notification.TemplateBookingReceived:  e.ReceivedTemplateID,
			notification.TemplateBookingConfirmed: e.ConfirmedTemplateID,
		},
		Timeout: cfg.HTTPTimeout,
	}, log)
}

// NewModel returns nil when no Gemini key is configured; the chatbot then
// answers from its keyword table.
func NewModel(ctx context.Context, cfg *config.Config, log *zap.Logger) chatbot.Model {
	if cfg.Chatbot.GeminiAPIKey == "" {
		log.Info("GEMINI_API_KEY not set, chatbot uses canned replies")
		return nil
	}
	model, err := chatbot.NewGeminiModel(ctx, cfg.Chatbot.GeminiAPIKey, cfg.Chatbot.Model, 3*cfg.HTTPTimeout, log)
	if err != nil {
		log.Warn("chatbot model unavailable, using canned replies", zap.Error(err))
		return nil
	}
	return model
}
