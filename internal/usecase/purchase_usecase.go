package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/metrics"
)

// PurchaseUseCase records and lists purchases.
type PurchaseUseCase struct {
	purchaseRepo  PurchaseRepository
	baseRepo      BaseRepository
	equipmentRepo EquipmentRepository
	idGen         IDGenerator
	metrics       *metrics.Metrics
}

// NewPurchaseUseCase creates a new PurchaseUseCase. metrics may be nil.
func NewPurchaseUseCase(
	purchaseRepo PurchaseRepository,
	baseRepo BaseRepository,
	equipmentRepo EquipmentRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		purchaseRepo:  purchaseRepo,
		baseRepo:      baseRepo,
		equipmentRepo: equipmentRepo,
		idGen:         idGen,
		metrics:       metrics,
	}
}

// CreatePurchaseInput represents input for recording a purchase. Base and
// Equipment accept either an id or an exact name.
type CreatePurchaseInput struct {
	Base        string
	Equipment   string
	Quantity    int64
	Price       decimal.Decimal
	CreatedBy   string
	PurchasedAt *time.Time
}

// CreatePurchase validates the references and appends to the purchase ledger.
// References given by name instead of id are resolved before validation, so
// clients that only know display names can still record purchases.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*domain.Purchase, error) {
	base, err := uc.resolveBase(ctx, input.Base)
	if err != nil {
		return nil, err
	}

	equipment, err := uc.resolveEquipment(ctx, input.Equipment)
	if err != nil {
		return nil, err
	}

	purchasedAt := time.Now().UTC()
	if input.PurchasedAt != nil {
		purchasedAt = input.PurchasedAt.UTC()
	}

	purchase := &domain.Purchase{
		ID:          uc.idGen.Generate(),
		BaseID:      base.ID,
		EquipmentID: equipment.ID,
		Quantity:    input.Quantity,
		Price:       input.Price,
		CreatedBy:   input.CreatedBy,
		PurchasedAt: purchasedAt,
		CreatedAt:   time.Now().UTC(),
	}

	if err := purchase.Validate(); err != nil {
		return nil, err
	}

	if err := uc.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PurchasesRecorded.Inc()
		uc.metrics.LedgerQuantity.WithLabelValues("purchase").Observe(float64(purchase.Quantity))
	}

	return purchase, nil
}

// ListPurchasesInput represents filters for the purchase listing.
type ListPurchasesInput struct {
	BaseID          string
	EquipmentID     string
	EquipmentTypeID string
	CreatedBy       string
	PeriodStart     *time.Time
	PeriodEnd       *time.Time
}

// ListPurchases lists purchases matching the filters, newest first.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, input ListPurchasesInput) ([]*domain.Purchase, error) {
	period := domain.Period{Start: input.PeriodStart, End: input.PeriodEnd}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	return uc.purchaseRepo.List(ctx, LedgerListFilter{
		BaseID:          input.BaseID,
		EquipmentID:     input.EquipmentID,
		EquipmentTypeID: input.EquipmentTypeID,
		CreatedBy:       input.CreatedBy,
		Period:          period,
	})
}

func (uc *PurchaseUseCase) resolveBase(ctx context.Context, ref string) (*domain.Base, error) {
	base, err := uc.baseRepo.GetByID(ctx, ref)
	if errors.Is(err, domain.ErrBaseNotFound) {
		return uc.baseRepo.GetByName(ctx, ref)
	}

	return base, err
}

func (uc *PurchaseUseCase) resolveEquipment(ctx context.Context, ref string) (*domain.Equipment, error) {
	equipment, err := uc.equipmentRepo.GetByID(ctx, ref)
	if errors.Is(err, domain.ErrEquipmentNotFound) {
		return uc.equipmentRepo.GetByName(ctx, ref)
	}

	return equipment, err
}
