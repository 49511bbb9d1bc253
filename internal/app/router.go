// Package app assembles the HTTP surface from the feature modules.
package app

import (
	"net/http"

	"guesthouse/internal/config"
	"guesthouse/internal/metrics"
	"guesthouse/internal/middleware"
	"guesthouse/internal/modules/admin"
	"guesthouse/internal/modules/auth"
	"guesthouse/internal/modules/booking"
	"guesthouse/internal/modules/catalog"
	"guesthouse/internal/modules/chatbot"
	"guesthouse/internal/modules/live"
	"guesthouse/internal/modules/notification"
	"guesthouse/internal/modules/rating"
	"guesthouse/internal/modules/review"
	"guesthouse/internal/modules/weather"
	jwtsvc "guesthouse/internal/pkg/jwt"
	"guesthouse/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators the router cannot build from config alone.
// Model may be nil. Metrics must be registered on Registry.
type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Tree     store.Tree
	Sender   notification.Sender
	Model    chatbot.Model
	Hub      *live.Hub
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	m := d.Metrics
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	dispatcher := notification.NewDispatcher(d.Sender, notification.Identity{
		Name:  cfg.Guesthouse.Name,
		Email: cfg.Guesthouse.Email,
		Phone: cfg.Guesthouse.Phone,
	}, d.Log, m)

	bookingService := booking.NewService(d.Tree, d.Log, m)
	reviewService := review.NewService(d.Tree, d.Log)
	catalogService := catalog.NewService()
	adminService := admin.NewService(bookingService, reviewService, dispatcher, d.Log, m)
	authService := auth.NewService(cfg.AdminEmail, cfg.AdminPasswordHash, j, d.Log)
	chatService := chatbot.NewService(d.Model, d.Log, m)
	weatherService := weather.NewService(
		weather.NewClient(weather.ClientConfig{
			BaseURL: cfg.Weather.BaseURL,
			APIKey:  cfg.Weather.APIKey,
			City:    cfg.Weather.City,
			Country: cfg.Weather.Country,
			Timeout: cfg.HTTPTimeout,
		}, d.Log),
		weather.Location{City: cfg.Weather.City, Latitude: cfg.Weather.Latitude, Longitude: cfg.Weather.Longitude},
		d.Log, m,
	)

	catalogHandler := catalog.NewHandler(catalogService, bookingService)
	bookingHandler := booking.NewHandler(bookingService, dispatcher, d.Log)
	reviewHandler := review.NewHandler(reviewService, d.Log)
	ratingHandler := rating.NewHandler(reviewService, d.Log)
	adminHandler := admin.NewHandler(adminService)
	authHandler := auth.NewHandler(authService)
	chatHandler := chatbot.NewHandler(chatService)
	weatherHandler := weather.NewHandler(weatherService)
	liveHandler := live.NewHandler(d.Hub, bookingService, reviewService, d.Log)

	r := gin.New()
	r.Use(
		middleware.ErrorLogger(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	v1 := r.Group("/api/v1")
	{
		// public reads
		catalogHandler.RegisterRoutes(v1)
		reviewHandler.RegisterRoutes(v1)
		ratingHandler.RegisterRoutes(v1)
		chatHandler.RegisterRoutes(v1)
		weatherHandler.RegisterRoutes(v1)
		liveHandler.RegisterRoutes(v1)

		// public writes
		writes := v1.Group("")
		writes.Use(limiter.Middleware())
		{
			bookingHandler.RegisterRoutes(writes)
			catalogHandler.RegisterWriteRoutes(writes)
			reviewHandler.RegisterWriteRoutes(writes)
			chatHandler.RegisterWriteRoutes(writes)
			authHandler.RegisterRoutes(writes)
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
		}

		// browsers cannot set headers on a WebSocket handshake
		adminLive := v1.Group("/admin")
		adminLive.Use(middleware.QueryTokenAuth(j), middleware.AdminOnly())
		{
			liveHandler.RegisterAdminRoutes(adminLive)
		}
	}

	return r
}
