package handlers

import (
	"net/http"

	"Vineyard/internal/config"
	"Vineyard/internal/middleware"
	"Vineyard/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router  chi.Router
	Metrics *middleware.Metrics
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	logger *zap.SugaredLogger,
	config *config.Config,
	reg *prometheus.Registry,
) *Handler {
	r := chi.NewRouter()
	metrics := middleware.NewMetrics(reg)

	// promhttp сам сжимает ответ, поэтому /metrics живёт вне WithGzip
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Handlers
	tokenHandler := NewTokenHandler(logger, config, metrics)
	userHandler := NewUserHandler(userService, logger, config)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithGzip)
		r.Use(middleware.WithLogging)
		r.Use(metrics.Instrument)
		r.Use(middleware.WithAuth(config.AuthSecret))

		// Token routes
		r.Post("/api/token/verify/", tokenHandler.Verify)

		// User routes
		r.Get("/api/me/", userHandler.Me)
		r.Get("/api/check-head-user/", userHandler.CheckHeadUser)
		r.Post("/api/register-head-user/", userHandler.RegisterHeadUser)
	})

	return &Handler{Router: r, Metrics: metrics}
}
