package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/metrics"
)

// DashboardMetrics is the base-wide rollup served to the dashboard. It mirrors
// a balance snapshot without being persisted.
type DashboardMetrics struct {
	OpeningBalance int64 `json:"opening_balance"`
	ClosingBalance int64 `json:"closing_balance"`
	NetMovement    int64 `json:"net_movement"`
	Purchases      int64 `json:"purchases"`
	TransfersIn    int64 `json:"transfers_in"`
	TransfersOut   int64 `json:"transfers_out"`
	Assigned       int64 `json:"assigned"`
	Expended       int64 `json:"expended"`
}

// DetailedMovement holds the full per-ledger listings for drill-down display.
type DetailedMovement struct {
	Purchases    []*domain.Purchase
	TransfersIn  []*domain.Transfer
	TransfersOut []*domain.Transfer
	Assignments  []*domain.Assignment
	Expenditures []*domain.Expenditure
}

// DashboardUseCase serves read-only aggregation views. Metrics are cached
// briefly since the dashboard polls them.
type DashboardUseCase struct {
	purchaseRepo    PurchaseRepository
	transferRepo    TransferRepository
	assignmentRepo  AssignmentRepository
	expenditureRepo ExpenditureRepository
	balanceRepo     BalanceRepository
	cache           Cache
	logger          zerolog.Logger
	metrics         *metrics.Metrics
}

// NewDashboardUseCase creates a new DashboardUseCase. The cache and metrics
// are optional.
func NewDashboardUseCase(
	purchaseRepo PurchaseRepository,
	transferRepo TransferRepository,
	assignmentRepo AssignmentRepository,
	expenditureRepo ExpenditureRepository,
	balanceRepo BalanceRepository,
	cache Cache,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *DashboardUseCase {
	return &DashboardUseCase{
		purchaseRepo:    purchaseRepo,
		transferRepo:    transferRepo,
		assignmentRepo:  assignmentRepo,
		expenditureRepo: expenditureRepo,
		balanceRepo:     balanceRepo,
		cache:           cache,
		logger:          logger,
		metrics:         metrics,
	}
}

// MetricsInput represents filters for the dashboard metrics.
type MetricsInput struct {
	BaseID      string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// Metrics computes base-wide ledger sums and net movement. With a base filter
// it surfaces the most recent snapshot's opening/closing balance when one
// exists; otherwise the closing balance falls back to net movement minus
// assignments and expenditures with opening fixed at zero. Nothing is
// persisted.
func (uc *DashboardUseCase) Metrics(ctx context.Context, input MetricsInput) (*DashboardMetrics, error) {
	period := domain.Period{Start: input.PeriodStart, End: input.PeriodEnd}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	cacheKey := metricsCacheKey(input)
	if cached := uc.cachedMetrics(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	filter := LedgerSumFilter{BaseID: input.BaseID, Period: period}

	var totals domain.LedgerTotals
	var err error

	if totals.Purchases, err = uc.purchaseRepo.SumQuantity(ctx, filter); err != nil {
		return nil, err
	}

	if totals.TransfersIn, err = uc.transferRepo.SumInbound(ctx, filter); err != nil {
		return nil, err
	}

	if totals.TransfersOut, err = uc.transferRepo.SumOutbound(ctx, filter); err != nil {
		return nil, err
	}

	if totals.Assigned, err = uc.assignmentRepo.SumQuantity(ctx, filter); err != nil {
		return nil, err
	}

	if totals.Expended, err = uc.expenditureRepo.SumQuantity(ctx, filter); err != nil {
		return nil, err
	}

	metrics := &DashboardMetrics{
		NetMovement:  totals.NetMovement(),
		Purchases:    totals.Purchases,
		TransfersIn:  totals.TransfersIn,
		TransfersOut: totals.TransfersOut,
		Assigned:     totals.Assigned,
		Expended:     totals.Expended,
	}

	if input.BaseID != "" {
		latest, err := uc.balanceRepo.GetLatest(ctx, input.BaseID, "")
		switch {
		case err == nil:
			metrics.OpeningBalance = latest.OpeningBalance
			metrics.ClosingBalance = latest.ClosingBalance
		case errors.Is(err, domain.ErrBalanceNotFound):
			metrics.ClosingBalance = metrics.NetMovement - totals.Assigned - totals.Expended
		default:
			return nil, err
		}
	}

	uc.storeMetrics(ctx, cacheKey, metrics)

	return metrics, nil
}

// DetailedMovementInput represents filters for the drill-down listings.
type DetailedMovementInput struct {
	BaseID      string
	EquipmentID string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// GetDetailedMovement lists every ledger entry matching the filters, newest
// first per ledger. Transfers are listed twice, split by direction.
func (uc *DashboardUseCase) GetDetailedMovement(ctx context.Context, input DetailedMovementInput) (*DetailedMovement, error) {
	period := domain.Period{Start: input.PeriodStart, End: input.PeriodEnd}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	filter := LedgerListFilter{
		BaseID:      input.BaseID,
		EquipmentID: input.EquipmentID,
		Period:      period,
	}

	movement := &DetailedMovement{}
	var err error

	if movement.Purchases, err = uc.purchaseRepo.List(ctx, filter); err != nil {
		return nil, err
	}

	// Direction-specific transfer listings reuse the base filter on the
	// matching side only.
	inFilter := filter
	inFilter.BaseID = ""
	transfers, err := uc.transferRepo.List(ctx, inFilter)
	if err != nil {
		return nil, err
	}

	for _, t := range transfers {
		if input.BaseID == "" || t.ToBaseID == input.BaseID {
			movement.TransfersIn = append(movement.TransfersIn, t)
		}
		if input.BaseID == "" || t.FromBaseID == input.BaseID {
			movement.TransfersOut = append(movement.TransfersOut, t)
		}
	}

	if movement.Assignments, err = uc.assignmentRepo.List(ctx, filter); err != nil {
		return nil, err
	}

	if movement.Expenditures, err = uc.expenditureRepo.List(ctx, filter); err != nil {
		return nil, err
	}

	return movement, nil
}

func metricsCacheKey(input MetricsInput) string {
	start, end := "", ""
	if input.PeriodStart != nil {
		start = input.PeriodStart.UTC().Format(time.RFC3339)
	}
	if input.PeriodEnd != nil {
		end = input.PeriodEnd.UTC().Format(time.RFC3339)
	}

	return fmt.Sprintf("dashboard:metrics:%s:%s:%s", input.BaseID, start, end)
}

func (uc *DashboardUseCase) cachedMetrics(ctx context.Context, key string) *DashboardMetrics {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		uc.cacheMiss()
		return nil
	}

	var cached DashboardMetrics
	if err := json.Unmarshal(data, &cached); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("discarding corrupt cached metrics")
		uc.cacheMiss()
		return nil
	}

	if uc.metrics != nil {
		uc.metrics.CacheHits.WithLabelValues("dashboard_metrics").Inc()
	}

	return &cached
}

func (uc *DashboardUseCase) cacheMiss() {
	if uc.metrics != nil {
		uc.metrics.CacheMisses.WithLabelValues("dashboard_metrics").Inc()
	}
}

func (uc *DashboardUseCase) storeMetrics(ctx context.Context, key string, metrics *DashboardMetrics) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(metrics)
	if err != nil {
		return
	}

	// Cache failures only cost a recomputation.
	if err := uc.cache.Set(ctx, key, data, MetricsCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("failed to cache dashboard metrics")
	}
}
