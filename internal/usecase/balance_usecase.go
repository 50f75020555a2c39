package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/metrics"
)

// BalanceUseCase computes and persists balance snapshots for a base and
// equipment pair over optional date windows.
type BalanceUseCase struct {
	baseRepo        BaseRepository
	equipmentRepo   EquipmentRepository
	purchaseRepo    PurchaseRepository
	transferRepo    TransferRepository
	assignmentRepo  AssignmentRepository
	expenditureRepo ExpenditureRepository
	balanceRepo     BalanceRepository
	retrier         Retrier
	metrics         *metrics.Metrics
}

// NewBalanceUseCase creates a new BalanceUseCase. metrics may be nil.
func NewBalanceUseCase(
	baseRepo BaseRepository,
	equipmentRepo EquipmentRepository,
	purchaseRepo PurchaseRepository,
	transferRepo TransferRepository,
	assignmentRepo AssignmentRepository,
	expenditureRepo ExpenditureRepository,
	balanceRepo BalanceRepository,
	retrier Retrier,
	metrics *metrics.Metrics,
) *BalanceUseCase {
	return &BalanceUseCase{
		baseRepo:        baseRepo,
		equipmentRepo:   equipmentRepo,
		purchaseRepo:    purchaseRepo,
		transferRepo:    transferRepo,
		assignmentRepo:  assignmentRepo,
		expenditureRepo: expenditureRepo,
		balanceRepo:     balanceRepo,
		retrier:         retrier,
		metrics:         metrics,
	}
}

// CalculateBalanceInput represents input for calculating a balance.
type CalculateBalanceInput struct {
	BaseID      string
	EquipmentID string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// CalculateBalance computes the balance for a base and equipment pair over the
// given window and upserts the resulting snapshot.
//
// The opening balance chains from the most recent prior snapshot for the same
// pair (zero when none exists). A snapshot dated before the latest existing
// one is rejected: accepting it would corrupt the chain silently. Re-running
// the same window against unchanged ledgers overwrites the same snapshot with
// identical values.
func (uc *BalanceUseCase) CalculateBalance(ctx context.Context, input CalculateBalanceInput) (*domain.Balance, error) {
	started := time.Now()

	period := domain.Period{Start: input.PeriodStart, End: input.PeriodEnd}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	// 1. Validate that base and equipment exist
	base, err := uc.baseRepo.GetByID(ctx, input.BaseID)
	if err != nil {
		return nil, err
	}

	equipment, err := uc.equipmentRepo.GetByID(ctx, input.EquipmentID)
	if err != nil {
		return nil, err
	}

	// 2. Snapshot date is the period end, or now for an open-ended window.
	// Snapshots are keyed by calendar day, so drop the time of day.
	date := time.Now().UTC()
	if input.PeriodEnd != nil {
		date = input.PeriodEnd.UTC()
	}
	date = date.Truncate(24 * time.Hour)

	// 3. Resolve the opening balance from the latest snapshot. When the
	// latest snapshot sits on the same date we are recalculating it, so
	// its own opening carries over rather than its closing.
	opening := int64(0)
	var latest *domain.Balance

	latest, err = uc.balanceRepo.GetLatest(ctx, input.BaseID, input.EquipmentID)
	switch {
	case err == nil:
		if date.Equal(latest.Date) {
			opening = latest.OpeningBalance
		} else {
			opening = latest.ClosingBalance
		}
	case errors.Is(err, domain.ErrBalanceNotFound):
		// first snapshot for this pair
	default:
		return nil, err
	}

	if latest != nil && date.Before(latest.Date) {
		if uc.metrics != nil {
			uc.metrics.OutOfOrderRejected.Inc()
		}
		return nil, domain.ErrOutOfOrderPeriod
	}

	// 4. Sum each ledger over the window
	totals, err := uc.sumLedgers(ctx, input.BaseID, input.EquipmentID, period)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.BalanceErrors.WithLabelValues("sum").Inc()
		}
		return nil, err
	}

	// 5. Derive and upsert the snapshot
	balance := domain.NewBalance(input.BaseID, input.EquipmentID, opening, totals, date)
	balance.BaseName = base.Name
	balance.EquipmentName = equipment.Name

	var stored *domain.Balance
	err = uc.retrier.Retry(ctx, func() error {
		stored, err = uc.balanceRepo.Upsert(ctx, balance)
		return err
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.BalanceErrors.WithLabelValues("upsert").Inc()
		}
		return nil, err
	}

	uc.fillDisplayNames(stored)

	if uc.metrics != nil {
		uc.metrics.BalancesCalculated.Inc()
		uc.metrics.BalanceDuration.Observe(time.Since(started).Seconds())
		uc.metrics.ClosingBalance.WithLabelValues(stored.BaseID, stored.EquipmentID).Set(float64(stored.ClosingBalance))
	}

	return stored, nil
}

func (uc *BalanceUseCase) sumLedgers(ctx context.Context, baseID, equipmentID string, period domain.Period) (domain.LedgerTotals, error) {
	filter := LedgerSumFilter{BaseID: baseID, EquipmentID: equipmentID, Period: period}

	var totals domain.LedgerTotals
	var err error

	if totals.Purchases, err = uc.purchaseRepo.SumQuantity(ctx, filter); err != nil {
		return totals, err
	}

	if totals.TransfersIn, err = uc.transferRepo.SumInbound(ctx, filter); err != nil {
		return totals, err
	}

	if totals.TransfersOut, err = uc.transferRepo.SumOutbound(ctx, filter); err != nil {
		return totals, err
	}

	if totals.Assigned, err = uc.assignmentRepo.SumQuantity(ctx, filter); err != nil {
		return totals, err
	}

	if totals.Expended, err = uc.expenditureRepo.SumQuantity(ctx, filter); err != nil {
		return totals, err
	}

	return totals, nil
}

// BalanceSummaryInput represents filters for the summary listing.
type BalanceSummaryInput struct {
	BaseID      string
	EquipmentID string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// BalanceSummary lists snapshots matching the filters, newest first, together
// with a rollup of every numeric field across the filtered set. Read-only.
func (uc *BalanceUseCase) BalanceSummary(ctx context.Context, input BalanceSummaryInput) ([]*domain.Balance, domain.BalanceTotals, error) {
	period := domain.Period{Start: input.PeriodStart, End: input.PeriodEnd}
	if err := period.Validate(); err != nil {
		return nil, domain.BalanceTotals{}, err
	}

	balances, err := uc.balanceRepo.List(ctx, BalanceFilter{
		BaseID:      input.BaseID,
		EquipmentID: input.EquipmentID,
		Period:      period,
	})
	if err != nil {
		return nil, domain.BalanceTotals{}, err
	}

	for _, b := range balances {
		uc.fillDisplayNames(b)
	}

	return balances, domain.SumBalances(balances), nil
}

// SetOpeningBalanceInput represents input for the administrative override.
type SetOpeningBalanceInput struct {
	BaseID         string
	EquipmentID    string
	OpeningBalance int64
	Date           *time.Time
}

// SetOpeningBalance upserts a snapshot with an explicit opening balance,
// bypassing the chain-from-prior-snapshot rule. Computed fields keep their
// existing values, or schema zero defaults for a fresh record. Used to
// bootstrap a starting balance for a base and equipment pair.
func (uc *BalanceUseCase) SetOpeningBalance(ctx context.Context, input SetOpeningBalanceInput) (*domain.Balance, error) {
	if _, err := uc.baseRepo.GetByID(ctx, input.BaseID); err != nil {
		return nil, err
	}

	if _, err := uc.equipmentRepo.GetByID(ctx, input.EquipmentID); err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	var stored *domain.Balance
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		stored, err = uc.balanceRepo.UpsertOpening(ctx, input.BaseID, input.EquipmentID, input.OpeningBalance, date)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.fillDisplayNames(stored)

	if uc.metrics != nil {
		uc.metrics.OpeningOverrides.Inc()
	}

	return stored, nil
}

// DebugResult reports existence of the referenced base and equipment.
type DebugResult struct {
	Base            *domain.Base
	Equipment       *domain.Equipment
	BaseExists      bool
	EquipmentExists bool
}

// Debug checks whether the given base and equipment ids resolve.
func (uc *BalanceUseCase) Debug(ctx context.Context, baseID, equipmentID string) (*DebugResult, error) {
	result := &DebugResult{}

	base, err := uc.baseRepo.GetByID(ctx, baseID)
	switch {
	case err == nil:
		result.Base = base
		result.BaseExists = true
	case errors.Is(err, domain.ErrBaseNotFound):
	default:
		return nil, err
	}

	equipment, err := uc.equipmentRepo.GetByID(ctx, equipmentID)
	switch {
	case err == nil:
		result.Equipment = equipment
		result.EquipmentExists = true
	case errors.Is(err, domain.ErrEquipmentNotFound):
	default:
		return nil, err
	}

	return result, nil
}

func (uc *BalanceUseCase) fillDisplayNames(b *domain.Balance) {
	if b == nil {
		return
	}

	if b.BaseName == "" {
		b.BaseName = UnknownBaseName
	}

	if b.EquipmentName == "" {
		b.EquipmentName = UnknownEquipmentName
	}
}
