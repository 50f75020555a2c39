package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/metrics"
	"github.com/iho/armory/internal/usecase"
	"github.com/iho/armory/internal/usecase/mocks"
)

type dashboardFixture struct {
	purchaseRepo    *mocks.MockPurchaseRepository
	transferRepo    *mocks.MockTransferRepository
	assignmentRepo  *mocks.MockAssignmentRepository
	expenditureRepo *mocks.MockExpenditureRepository
	balanceRepo     *mocks.MockBalanceRepository
}

func newDashboardFixture() *dashboardFixture {
	return &dashboardFixture{
		purchaseRepo:    mocks.NewMockPurchaseRepository(),
		transferRepo:    mocks.NewMockTransferRepository(),
		assignmentRepo:  mocks.NewMockAssignmentRepository(),
		expenditureRepo: mocks.NewMockExpenditureRepository(),
		balanceRepo:     mocks.NewMockBalanceRepository(),
	}
}

func (f *dashboardFixture) usecase(cache usecase.Cache) *usecase.DashboardUseCase {
	return f.usecaseWithMetrics(cache, nil)
}

func (f *dashboardFixture) usecaseWithMetrics(cache usecase.Cache, m *metrics.Metrics) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(
		f.purchaseRepo,
		f.transferRepo,
		f.assignmentRepo,
		f.expenditureRepo,
		f.balanceRepo,
		cache,
		zerolog.Nop(),
		m,
	)
}

func TestDashboardUseCase_Metrics(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	f := newDashboardFixture()

	require.NoError(t, f.purchaseRepo.Create(ctx, &domain.Purchase{
		ID: "p1", BaseID: "base-alpha", EquipmentID: "eq-rifle", Quantity: 50, PurchasedAt: day,
	}))
	require.NoError(t, f.transferRepo.Create(ctx, &domain.Transfer{
		ID: "t1", FromBaseID: "base-alpha", ToBaseID: "base-bravo", EquipmentID: "eq-rifle", Quantity: 15, TransferredAt: day,
	}))
	require.NoError(t, f.expenditureRepo.Create(ctx, &domain.Expenditure{
		ID: "e1", BaseID: "base-alpha", EquipmentID: "eq-rifle", Quantity: 5, ExpendedAt: day,
	}))

	t.Run("base filter without snapshot falls back to computed closing", func(t *testing.T) {
		metrics, err := f.usecase(nil).Metrics(ctx, usecase.MetricsInput{BaseID: "base-alpha"})
		require.NoError(t, err)

		assert.Equal(t, int64(50), metrics.Purchases)
		assert.Equal(t, int64(15), metrics.TransfersOut)
		assert.Equal(t, int64(35), metrics.NetMovement)
		assert.Equal(t, int64(0), metrics.OpeningBalance)
		assert.Equal(t, int64(30), metrics.ClosingBalance)
	})

	t.Run("base filter surfaces latest snapshot balances", func(t *testing.T) {
		_, err := f.balanceRepo.Upsert(ctx, &domain.Balance{
			BaseID: "base-alpha", EquipmentID: "eq-rifle",
			OpeningBalance: 200, ClosingBalance: 230, Date: day,
		})
		require.NoError(t, err)

		metrics, err := f.usecase(nil).Metrics(ctx, usecase.MetricsInput{BaseID: "base-alpha"})
		require.NoError(t, err)

		assert.Equal(t, int64(200), metrics.OpeningBalance)
		assert.Equal(t, int64(230), metrics.ClosingBalance)
	})

	t.Run("without base filter transfers cancel out", func(t *testing.T) {
		metrics, err := f.usecase(nil).Metrics(ctx, usecase.MetricsInput{})
		require.NoError(t, err)

		assert.Equal(t, int64(15), metrics.TransfersIn)
		assert.Equal(t, int64(15), metrics.TransfersOut)
		assert.Equal(t, int64(50), metrics.NetMovement)
		assert.Equal(t, int64(0), metrics.OpeningBalance)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		_, err := f.usecase(nil).Metrics(ctx, usecase.MetricsInput{
			PeriodStart: datePtr(day.AddDate(0, 1, 0)),
			PeriodEnd:   datePtr(day),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})
}

func TestDashboardUseCase_Metrics_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips recomputation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)

		cached, err := json.Marshal(&usecase.DashboardMetrics{Purchases: 99, NetMovement: 99})
		require.NoError(t, err)
		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cached, nil)

		metrics, err := newDashboardFixture().usecase(cache).Metrics(ctx, usecase.MetricsInput{})
		require.NoError(t, err)
		assert.Equal(t, int64(99), metrics.Purchases)
	})

	t.Run("cache miss computes and stores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)

		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis: nil"))
		cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), usecase.MetricsCacheTTL).Return(nil)

		metrics, err := newDashboardFixture().usecase(cache).Metrics(ctx, usecase.MetricsInput{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), metrics.Purchases)
	})

	t.Run("cache set failure is non-fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)

		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis: nil"))
		cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		_, err := newDashboardFixture().usecase(cache).Metrics(ctx, usecase.MetricsInput{})
		require.NoError(t, err)
	})

	t.Run("hits and misses are counted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)
		m := metrics.New()

		cached, err := json.Marshal(&usecase.DashboardMetrics{Purchases: 7})
		require.NoError(t, err)

		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis: nil"))
		cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cached, nil)

		uc := newDashboardFixture().usecaseWithMetrics(cache, m)

		_, err = uc.Metrics(ctx, usecase.MetricsInput{})
		require.NoError(t, err)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses.WithLabelValues("dashboard_metrics")))
		assert.Equal(t, 0.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("dashboard_metrics")))

		_, err = uc.Metrics(ctx, usecase.MetricsInput{})
		require.NoError(t, err)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("dashboard_metrics")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses.WithLabelValues("dashboard_metrics")))
	})
}

func TestDashboardUseCase_GetDetailedMovement(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	f := newDashboardFixture()

	require.NoError(t, f.purchaseRepo.Create(ctx, &domain.Purchase{
		ID: "p1", BaseID: "base-alpha", EquipmentID: "eq-rifle", Quantity: 50, PurchasedAt: day,
	}))
	require.NoError(t, f.transferRepo.Create(ctx, &domain.Transfer{
		ID: "t1", FromBaseID: "base-alpha", ToBaseID: "base-bravo", EquipmentID: "eq-rifle", Quantity: 15, TransferredAt: day,
	}))
	require.NoError(t, f.assignmentRepo.Create(ctx, &domain.Assignment{
		ID: "a1", BaseID: "base-bravo", EquipmentID: "eq-rifle", AssignedTo: "Lt. Kovalenko", Quantity: 3, AssignedAt: day,
	}))

	t.Run("filtered by base splits transfers by direction", func(t *testing.T) {
		movement, err := f.usecase(nil).GetDetailedMovement(ctx, usecase.DetailedMovementInput{BaseID: "base-alpha"})
		require.NoError(t, err)

		assert.Len(t, movement.Purchases, 1)
		assert.Len(t, movement.TransfersOut, 1)
		assert.Empty(t, movement.TransfersIn)
		assert.Empty(t, movement.Assignments)
	})

	t.Run("unfiltered lists transfers on both sides", func(t *testing.T) {
		movement, err := f.usecase(nil).GetDetailedMovement(ctx, usecase.DetailedMovementInput{})
		require.NoError(t, err)

		assert.Len(t, movement.TransfersIn, 1)
		assert.Len(t, movement.TransfersOut, 1)
		assert.Len(t, movement.Assignments, 1)
	})
}
