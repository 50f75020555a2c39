package usecase

import (
	"context"
	"time"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/metrics"
)

// TransferUseCase records and lists inter-base transfers.
type TransferUseCase struct {
	transferRepo  TransferRepository
	baseRepo      BaseRepository
	equipmentRepo EquipmentRepository
	idGen         IDGenerator
	metrics       *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. metrics may be nil.
func NewTransferUseCase(
	transferRepo TransferRepository,
	baseRepo BaseRepository,
	equipmentRepo EquipmentRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		transferRepo:  transferRepo,
		baseRepo:      baseRepo,
		equipmentRepo: equipmentRepo,
		idGen:         idGen,
		metrics:       metrics,
	}
}

// CreateTransferInput represents input for recording a transfer.
type CreateTransferInput struct {
	FromBaseID    string
	ToBaseID      string
	EquipmentID   string
	Quantity      int64
	TransferredAt *time.Time
}

// CreateTransfer validates both bases and the equipment, then appends to the
// transfer ledger. A single record serves as the outflow for the source base
// and the inflow for the destination.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*domain.Transfer, error) {
	if _, err := uc.baseRepo.GetByID(ctx, input.FromBaseID); err != nil {
		return nil, err
	}

	if _, err := uc.baseRepo.GetByID(ctx, input.ToBaseID); err != nil {
		return nil, err
	}

	if _, err := uc.equipmentRepo.GetByID(ctx, input.EquipmentID); err != nil {
		return nil, err
	}

	transferredAt := time.Now().UTC()
	if input.TransferredAt != nil {
		transferredAt = input.TransferredAt.UTC()
	}

	transfer := &domain.Transfer{
		ID:            uc.idGen.Generate(),
		FromBaseID:    input.FromBaseID,
		ToBaseID:      input.ToBaseID,
		EquipmentID:   input.EquipmentID,
		Quantity:      input.Quantity,
		TransferredAt: transferredAt,
		CreatedAt:     time.Now().UTC(),
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Create(ctx, transfer); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersRecorded.Inc()
		uc.metrics.LedgerQuantity.WithLabelValues("transfer").Observe(float64(transfer.Quantity))
	}

	return transfer, nil
}

// ListTransfersInput represents filters for the transfer listing. BaseID
// matches either side of the transfer.
type ListTransfersInput struct {
	BaseID      string
	EquipmentID string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// ListTransfers lists transfers matching the filters, newest first.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, input ListTransfersInput) ([]*domain.Transfer, error) {
	period := domain.Period{Start: input.PeriodStart, End: input.PeriodEnd}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	return uc.transferRepo.List(ctx, LedgerListFilter{
		BaseID:      input.BaseID,
		EquipmentID: input.EquipmentID,
		Period:      period,
	})
}
