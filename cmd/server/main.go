package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/armory/internal/adapter/http"
	"github.com/iho/armory/internal/adapter/http/handler"
	postgresRepo "github.com/iho/armory/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/armory/internal/adapter/repository/redis"
	"github.com/iho/armory/internal/infrastructure/auth"
	"github.com/iho/armory/internal/infrastructure/config"
	"github.com/iho/armory/internal/infrastructure/logger"
	"github.com/iho/armory/internal/infrastructure/metrics"
	"github.com/iho/armory/internal/infrastructure/postgres"
	"github.com/iho/armory/internal/infrastructure/redis"
	"github.com/iho/armory/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, resolveMigrationsPath()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	appMetrics := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize repositories
	baseRepo := postgresRepo.NewBaseRepository(pool)
	equipmentTypeRepo := postgresRepo.NewEquipmentTypeRepository(pool)
	equipmentRepo := postgresRepo.NewEquipmentRepository(pool)
	purchaseRepo := postgresRepo.NewPurchaseRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	assignmentRepo := postgresRepo.NewAssignmentRepository(pool)
	expenditureRepo := postgresRepo.NewExpenditureRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	requestLogRepo := postgresRepo.NewRequestLogRepository(pool)
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()

	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	balanceUC := usecase.NewBalanceUseCase(baseRepo, equipmentRepo, purchaseRepo, transferRepo,
		assignmentRepo, expenditureRepo, balanceRepo, retrier, appMetrics)
	dashboardUC := usecase.NewDashboardUseCase(purchaseRepo, transferRepo, assignmentRepo,
		expenditureRepo, balanceRepo, cache, appLogger, appMetrics)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo, baseRepo, equipmentRepo, idGen, appMetrics)
	transferUC := usecase.NewTransferUseCase(transferRepo, baseRepo, equipmentRepo, idGen, appMetrics)
	assignmentUC := usecase.NewAssignmentUseCase(assignmentRepo, expenditureRepo, baseRepo,
		equipmentRepo, idGen, appMetrics)
	inventoryUC := usecase.NewInventoryUseCase(baseRepo, equipmentRepo, equipmentTypeRepo, idGen)
	userUC := usecase.NewUserUseCase(userRepo, baseRepo, idGen)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:       handler.NewAuthHandler(userUC, jwtManager, appMetrics),
		BalanceHandler:    handler.NewBalanceHandler(balanceUC),
		DashboardHandler:  handler.NewDashboardHandler(dashboardUC),
		PurchaseHandler:   handler.NewPurchaseHandler(purchaseUC),
		TransferHandler:   handler.NewTransferHandler(transferUC),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentUC),
		InventoryHandler:  handler.NewInventoryHandler(inventoryUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		JWTManager:        jwtManager,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RequestLogRepo:    requestLogRepo,
		Metrics:           appMetrics,
		Logger:            appLogger,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}

func resolveMigrationsPath() string {
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		return path
	}
	return "migrations"
}
