package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/armory/internal/adapter/http/handler"
	"github.com/iho/armory/internal/adapter/http/middleware"
	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/auth"
	"github.com/iho/armory/internal/infrastructure/metrics"
	"github.com/iho/armory/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler       *handler.AuthHandler
	BalanceHandler    *handler.BalanceHandler
	DashboardHandler  *handler.DashboardHandler
	PurchaseHandler   *handler.PurchaseHandler
	TransferHandler   *handler.TransferHandler
	AssignmentHandler *handler.AssignmentHandler
	InventoryHandler  *handler.InventoryHandler
	HealthHandler     *handler.HealthHandler

	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RequestLogRepo   usecase.RequestLogRepository
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger

	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Metrics).Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	requireAuth := middleware.AuthMiddleware(cfg.JWTManager)
	anyRole := middleware.RequireRoles(domain.RoleAdmin, domain.RoleBaseCommander, domain.RoleLogisticsOfficer)
	commandRoles := middleware.RequireRoles(domain.RoleAdmin, domain.RoleBaseCommander)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}
		// Audit trail for mutating requests
		if cfg.RequestLogRepo != nil {
			r.Use(middleware.NewRequestLogMiddleware(cfg.RequestLogRepo, cfg.Metrics, cfg.Logger).Wrap)
		}

		// Authentication
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.AuthHandler.Signup)
			r.Post("/login", cfg.AuthHandler.Login)
			r.With(requireAuth).Get("/me", cfg.AuthHandler.Me)
		})

		// Reference lookups available before login, used by the signup form
		r.Route("/public", func(r chi.Router) {
			r.Get("/bases", cfg.InventoryHandler.ListBases)
			r.Get("/roles", cfg.InventoryHandler.ListRoles)
		})

		// Everything below requires a valid token
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/balances", func(r chi.Router) {
				r.With(anyRole).Post("/calculate", cfg.BalanceHandler.Calculate)
				r.With(anyRole).Get("/summary", cfg.BalanceHandler.Summary)
				r.With(commandRoles).Post("/opening-balance", cfg.BalanceHandler.SetOpening)
				r.With(adminOnly).Get("/debug", cfg.BalanceHandler.Debug)
			})

			r.Route("/purchases", func(r chi.Router) {
				r.With(anyRole).Post("/", cfg.PurchaseHandler.Create)
				r.With(anyRole).Get("/", cfg.PurchaseHandler.List)
			})

			r.Route("/transfers", func(r chi.Router) {
				r.With(anyRole).Post("/", cfg.TransferHandler.Create)
				r.With(anyRole).Get("/", cfg.TransferHandler.List)
			})

			r.Route("/assignments", func(r chi.Router) {
				r.With(commandRoles).Post("/assign", cfg.AssignmentHandler.Assign)
				r.With(commandRoles).Post("/expend", cfg.AssignmentHandler.Expend)
				r.With(anyRole).Get("/", cfg.AssignmentHandler.List)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(anyRole).Get("/", cfg.DashboardHandler.Metrics)
				r.With(anyRole).Get("/detailed-movement", cfg.DashboardHandler.DetailedMovement)
			})

			r.Route("/bases", func(r chi.Router) {
				r.With(anyRole).Get("/", cfg.InventoryHandler.ListBases)
				r.With(adminOnly).Post("/", cfg.InventoryHandler.CreateBase)
			})

			r.Route("/equipment", func(r chi.Router) {
				r.With(anyRole).Get("/", cfg.InventoryHandler.ListEquipment)
				r.With(adminOnly).Post("/", cfg.InventoryHandler.CreateEquipment)
			})

			r.Route("/equipment-types", func(r chi.Router) {
				r.With(anyRole).Get("/", cfg.InventoryHandler.ListEquipmentTypes)
				r.With(adminOnly).Post("/", cfg.InventoryHandler.CreateEquipmentType)
			})

			r.With(anyRole).Get("/roles", cfg.InventoryHandler.ListRoles)
		})
	})

	return r
}
