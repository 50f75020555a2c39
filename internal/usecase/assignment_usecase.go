package usecase

import (
	"context"
	"time"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/metrics"
)

// AssignmentUseCase records assignments and expenditures. The two ledgers
// share validation and are often listed together, so one usecase covers both.
type AssignmentUseCase struct {
	assignmentRepo  AssignmentRepository
	expenditureRepo ExpenditureRepository
	baseRepo        BaseRepository
	equipmentRepo   EquipmentRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewAssignmentUseCase creates a new AssignmentUseCase. metrics may be nil.
func NewAssignmentUseCase(
	assignmentRepo AssignmentRepository,
	expenditureRepo ExpenditureRepository,
	baseRepo BaseRepository,
	equipmentRepo EquipmentRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		assignmentRepo:  assignmentRepo,
		expenditureRepo: expenditureRepo,
		baseRepo:        baseRepo,
		equipmentRepo:   equipmentRepo,
		idGen:           idGen,
		metrics:         metrics,
	}
}

// CreateAssignmentInput represents input for recording an assignment.
type CreateAssignmentInput struct {
	BaseID      string
	EquipmentID string
	AssignedTo  string
	Quantity    int64
	AssignedAt  *time.Time
}

// CreateAssignment validates the references and appends to the assignment
// ledger.
func (uc *AssignmentUseCase) CreateAssignment(ctx context.Context, input CreateAssignmentInput) (*domain.Assignment, error) {
	if err := uc.checkRefs(ctx, input.BaseID, input.EquipmentID); err != nil {
		return nil, err
	}

	assignedAt := time.Now().UTC()
	if input.AssignedAt != nil {
		assignedAt = input.AssignedAt.UTC()
	}

	assignment := &domain.Assignment{
		ID:          uc.idGen.Generate(),
		BaseID:      input.BaseID,
		EquipmentID: input.EquipmentID,
		AssignedTo:  input.AssignedTo,
		Quantity:    input.Quantity,
		AssignedAt:  assignedAt,
		CreatedAt:   time.Now().UTC(),
	}

	if err := assignment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AssignmentsRecorded.Inc()
		uc.metrics.LedgerQuantity.WithLabelValues("assignment").Observe(float64(assignment.Quantity))
	}

	return assignment, nil
}

// CreateExpenditureInput represents input for recording an expenditure.
type CreateExpenditureInput struct {
	BaseID      string
	EquipmentID string
	Quantity    int64
	ExpendedAt  *time.Time
}

// CreateExpenditure validates the references and appends to the expenditure
// ledger.
func (uc *AssignmentUseCase) CreateExpenditure(ctx context.Context, input CreateExpenditureInput) (*domain.Expenditure, error) {
	if err := uc.checkRefs(ctx, input.BaseID, input.EquipmentID); err != nil {
		return nil, err
	}

	expendedAt := time.Now().UTC()
	if input.ExpendedAt != nil {
		expendedAt = input.ExpendedAt.UTC()
	}

	expenditure := &domain.Expenditure{
		ID:          uc.idGen.Generate(),
		BaseID:      input.BaseID,
		EquipmentID: input.EquipmentID,
		Quantity:    input.Quantity,
		ExpendedAt:  expendedAt,
		CreatedAt:   time.Now().UTC(),
	}

	if err := expenditure.Validate(); err != nil {
		return nil, err
	}

	if err := uc.expenditureRepo.Create(ctx, expenditure); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpendituresRecorded.Inc()
		uc.metrics.LedgerQuantity.WithLabelValues("expenditure").Observe(float64(expenditure.Quantity))
	}

	return expenditure, nil
}

// ListMovementsInput represents filters for the combined listing.
type ListMovementsInput struct {
	BaseID      string
	EquipmentID string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// Movements pairs the assignment and expenditure listings for one response.
type Movements struct {
	Assignments  []*domain.Assignment
	Expenditures []*domain.Expenditure
}

// ListMovements lists assignments and expenditures matching the filters,
// newest first in each ledger.
func (uc *AssignmentUseCase) ListMovements(ctx context.Context, input ListMovementsInput) (*Movements, error) {
	period := domain.Period{Start: input.PeriodStart, End: input.PeriodEnd}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	filter := LedgerListFilter{
		BaseID:      input.BaseID,
		EquipmentID: input.EquipmentID,
		Period:      period,
	}

	movements := &Movements{}
	var err error

	if movements.Assignments, err = uc.assignmentRepo.List(ctx, filter); err != nil {
		return nil, err
	}

	if movements.Expenditures, err = uc.expenditureRepo.List(ctx, filter); err != nil {
		return nil, err
	}

	return movements, nil
}

func (uc *AssignmentUseCase) checkRefs(ctx context.Context, baseID, equipmentID string) error {
	if _, err := uc.baseRepo.GetByID(ctx, baseID); err != nil {
		return err
	}

	if _, err := uc.equipmentRepo.GetByID(ctx, equipmentID); err != nil {
		return err
	}

	return nil
}
