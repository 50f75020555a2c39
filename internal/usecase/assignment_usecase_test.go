package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
	"github.com/iho/armory/internal/usecase/mocks"
)

func newAssignmentUseCase(t *testing.T) *usecase.AssignmentUseCase {
	t.Helper()

	baseRepo := mocks.NewMockBaseRepository()
	equipmentRepo := mocks.NewMockEquipmentRepository()

	require.NoError(t, baseRepo.Create(context.Background(), &domain.Base{ID: "base-alpha", Name: "Base Alpha"}))
	require.NoError(t, equipmentRepo.Create(context.Background(), &domain.Equipment{ID: "eq-rifle", Name: "Rifle"}))

	return usecase.NewAssignmentUseCase(
		mocks.NewMockAssignmentRepository(),
		mocks.NewMockExpenditureRepository(),
		baseRepo,
		equipmentRepo,
		mocks.NewMockIDGenerator(),
		nil,
	)
}

func TestAssignmentUseCase_CreateAssignment(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   usecase.CreateAssignmentInput
		wantErr error
	}{
		{
			name: "valid assignment",
			input: usecase.CreateAssignmentInput{
				BaseID: "base-alpha", EquipmentID: "eq-rifle", AssignedTo: "Sgt. Onishchenko", Quantity: 5,
			},
		},
		{
			name: "missing assignee",
			input: usecase.CreateAssignmentInput{
				BaseID: "base-alpha", EquipmentID: "eq-rifle", Quantity: 5,
			},
			wantErr: domain.ErrMissingAssignee,
		},
		{
			name: "unknown base",
			input: usecase.CreateAssignmentInput{
				BaseID: "missing", EquipmentID: "eq-rifle", AssignedTo: "Sgt. Onishchenko", Quantity: 5,
			},
			wantErr: domain.ErrBaseNotFound,
		},
		{
			name: "zero quantity",
			input: usecase.CreateAssignmentInput{
				BaseID: "base-alpha", EquipmentID: "eq-rifle", AssignedTo: "Sgt. Onishchenko", Quantity: 0,
			},
			wantErr: domain.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newAssignmentUseCase(t)

			assignment, err := uc.CreateAssignment(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, assignment.ID)
			assert.Equal(t, tt.input.AssignedTo, assignment.AssignedTo)
		})
	}
}

func TestAssignmentUseCase_CreateExpenditure(t *testing.T) {
	ctx := context.Background()
	uc := newAssignmentUseCase(t)

	expenditure, err := uc.CreateExpenditure(ctx, usecase.CreateExpenditureInput{
		BaseID: "base-alpha", EquipmentID: "eq-rifle", Quantity: 30,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, expenditure.ID)
	assert.False(t, expenditure.ExpendedAt.IsZero())

	_, err = uc.CreateExpenditure(ctx, usecase.CreateExpenditureInput{
		BaseID: "base-alpha", EquipmentID: "missing", Quantity: 30,
	})
	assert.ErrorIs(t, err, domain.ErrEquipmentNotFound)
}

func TestAssignmentUseCase_ListMovements(t *testing.T) {
	ctx := context.Background()
	uc := newAssignmentUseCase(t)

	at := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.CreateAssignment(ctx, usecase.CreateAssignmentInput{
		BaseID: "base-alpha", EquipmentID: "eq-rifle", AssignedTo: "Sgt. Onishchenko",
		Quantity: 5, AssignedAt: datePtr(at),
	})
	require.NoError(t, err)

	_, err = uc.CreateExpenditure(ctx, usecase.CreateExpenditureInput{
		BaseID: "base-alpha", EquipmentID: "eq-rifle", Quantity: 30, ExpendedAt: datePtr(at),
	})
	require.NoError(t, err)

	movements, err := uc.ListMovements(ctx, usecase.ListMovementsInput{BaseID: "base-alpha"})
	require.NoError(t, err)
	assert.Len(t, movements.Assignments, 1)
	assert.Len(t, movements.Expenditures, 1)

	empty, err := uc.ListMovements(ctx, usecase.ListMovementsInput{
		BaseID:      "base-alpha",
		PeriodStart: datePtr(at.AddDate(0, 0, 1)),
	})
	require.NoError(t, err)
	assert.Empty(t, empty.Assignments)
	assert.Empty(t, empty.Expenditures)
}
