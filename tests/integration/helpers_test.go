package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adaptershttp "github.com/iho/armory/internal/adapter/http"
	"github.com/iho/armory/internal/adapter/http/handler"
	postgresrepo "github.com/iho/armory/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/armory/internal/adapter/repository/redis"
	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/auth"
	infraredis "github.com/iho/armory/internal/infrastructure/redis"
	"github.com/iho/armory/internal/usecase"
	"github.com/iho/armory/tests/testutil"
)

// newTestStack wires the full application against the test database and a
// real Redis instance, mirroring the wiring in cmd/server.
func newTestStack(t *testing.T, ctx context.Context, testDB *testutil.TestDB) (http.Handler, *auth.JWTManager) {
	t.Helper()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	logger := zerolog.Nop()

	baseRepo := postgresrepo.NewBaseRepository(pool)
	equipmentTypeRepo := postgresrepo.NewEquipmentTypeRepository(pool)
	equipmentRepo := postgresrepo.NewEquipmentRepository(pool)
	purchaseRepo := postgresrepo.NewPurchaseRepository(pool)
	transferRepo := postgresrepo.NewTransferRepository(pool)
	assignmentRepo := postgresrepo.NewAssignmentRepository(pool)
	expenditureRepo := postgresrepo.NewExpenditureRepository(pool)
	balanceRepo := postgresrepo.NewBalanceRepository(pool)
	userRepo := postgresrepo.NewUserRepository(pool)
	requestLogRepo := postgresrepo.NewRequestLogRepository(pool)
	retrier := postgresrepo.NewRetrier(logger)
	idGen := postgresrepo.NewULIDGenerator()
	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	jwtManager := auth.NewJWTManager("integration-secret", time.Hour)

	balanceUC := usecase.NewBalanceUseCase(baseRepo, equipmentRepo, purchaseRepo, transferRepo,
		assignmentRepo, expenditureRepo, balanceRepo, retrier, nil)
	dashboardUC := usecase.NewDashboardUseCase(purchaseRepo, transferRepo, assignmentRepo,
		expenditureRepo, balanceRepo, cache, logger, nil)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo, baseRepo, equipmentRepo, idGen, nil)
	transferUC := usecase.NewTransferUseCase(transferRepo, baseRepo, equipmentRepo, idGen, nil)
	assignmentUC := usecase.NewAssignmentUseCase(assignmentRepo, expenditureRepo, baseRepo,
		equipmentRepo, idGen, nil)
	inventoryUC := usecase.NewInventoryUseCase(baseRepo, equipmentRepo, equipmentTypeRepo, idGen)
	userUC := usecase.NewUserUseCase(userRepo, baseRepo, idGen)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AuthHandler:       handler.NewAuthHandler(userUC, jwtManager, nil),
		BalanceHandler:    handler.NewBalanceHandler(balanceUC),
		DashboardHandler:  handler.NewDashboardHandler(dashboardUC),
		PurchaseHandler:   handler.NewPurchaseHandler(purchaseUC),
		TransferHandler:   handler.NewTransferHandler(transferUC),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentUC),
		InventoryHandler:  handler.NewInventoryHandler(inventoryUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		JWTManager:        jwtManager,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    time.Minute,
		RequestLogRepo:    requestLogRepo,
		Logger:            logger,
	})

	return router, jwtManager
}

func adminToken(t *testing.T, jwtManager *auth.JWTManager) string {
	t.Helper()

	token, err := jwtManager.Generate(&domain.User{
		ID:       "it-admin",
		Username: "it-admin",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func commanderToken(t *testing.T, jwtManager *auth.JWTManager, baseID string) string {
	t.Helper()

	token, err := jwtManager.Generate(&domain.User{
		ID:       "it-commander",
		Username: "it-commander",
		Role:     domain.RoleBaseCommander,
		BaseID:   baseID,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// doJSON sends a JSON request through the router and decodes the response
// body into out when out is non-nil.
func doJSON(t *testing.T, router http.Handler, method, path, token string, body, out any) int {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code
}
