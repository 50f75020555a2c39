package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// CalculateBalanceRequest represents a request to calculate a balance
// snapshot for a base and equipment pair.
type CalculateBalanceRequest struct {
	BaseID      string `json:"base_id"`
	EquipmentID string `json:"equipment_id"`
	StartDate   *Date  `json:"start_date,omitempty"`
	EndDate     *Date  `json:"end_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CalculateBalanceRequest) ToUseCaseInput() usecase.CalculateBalanceInput {
	return usecase.CalculateBalanceInput{
		BaseID:      r.BaseID,
		EquipmentID: r.EquipmentID,
		PeriodStart: r.StartDate.TimePtr(),
		PeriodEnd:   r.EndDate.TimePtr(),
	}
}

// SetOpeningBalanceRequest represents a request to set an explicit opening
// balance for a base and equipment pair.
type SetOpeningBalanceRequest struct {
	BaseID         string `json:"base_id"`
	EquipmentID    string `json:"equipment_id"`
	OpeningBalance int64  `json:"opening_balance"`
	Date           *Date  `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SetOpeningBalanceRequest) ToUseCaseInput() usecase.SetOpeningBalanceInput {
	return usecase.SetOpeningBalanceInput{
		BaseID:         r.BaseID,
		EquipmentID:    r.EquipmentID,
		OpeningBalance: r.OpeningBalance,
		Date:           r.Date.TimePtr(),
	}
}

// CreatePurchaseRequest represents a request to record a purchase. Base and
// equipment accept either an id or a display name.
type CreatePurchaseRequest struct {
	BaseID      string          `json:"base_id"`
	EquipmentID string          `json:"equipment_id"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	PurchasedAt *Date           `json:"purchased_at,omitempty"`
}

// ToUseCaseInput converts to use case input. The createdBy attribution comes
// from the authenticated user, not the request body.
func (r *CreatePurchaseRequest) ToUseCaseInput(createdBy string) usecase.CreatePurchaseInput {
	return usecase.CreatePurchaseInput{
		Base:        r.BaseID,
		Equipment:   r.EquipmentID,
		Quantity:    r.Quantity,
		Price:       r.Price,
		CreatedBy:   createdBy,
		PurchasedAt: r.PurchasedAt.TimePtr(),
	}
}

// CreateTransferRequest represents a request to record a transfer between
// two bases.
type CreateTransferRequest struct {
	FromBaseID    string `json:"from_base_id"`
	ToBaseID      string `json:"to_base_id"`
	EquipmentID   string `json:"equipment_id"`
	Quantity      int64  `json:"quantity"`
	TransferredAt *Date  `json:"transferred_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.CreateTransferInput {
	return usecase.CreateTransferInput{
		FromBaseID:    r.FromBaseID,
		ToBaseID:      r.ToBaseID,
		EquipmentID:   r.EquipmentID,
		Quantity:      r.Quantity,
		TransferredAt: r.TransferredAt.TimePtr(),
	}
}

// CreateAssignmentRequest represents a request to assign equipment to
// personnel.
type CreateAssignmentRequest struct {
	BaseID      string `json:"base_id"`
	EquipmentID string `json:"equipment_id"`
	AssignedTo  string `json:"assigned_to"`
	Quantity    int64  `json:"quantity"`
	AssignedAt  *Date  `json:"assigned_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAssignmentRequest) ToUseCaseInput() usecase.CreateAssignmentInput {
	return usecase.CreateAssignmentInput{
		BaseID:      r.BaseID,
		EquipmentID: r.EquipmentID,
		AssignedTo:  r.AssignedTo,
		Quantity:    r.Quantity,
		AssignedAt:  r.AssignedAt.TimePtr(),
	}
}

// CreateExpenditureRequest represents a request to record expended equipment.
type CreateExpenditureRequest struct {
	BaseID      string `json:"base_id"`
	EquipmentID string `json:"equipment_id"`
	Quantity    int64  `json:"quantity"`
	ExpendedAt  *Date  `json:"expended_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenditureRequest) ToUseCaseInput() usecase.CreateExpenditureInput {
	return usecase.CreateExpenditureInput{
		BaseID:      r.BaseID,
		EquipmentID: r.EquipmentID,
		Quantity:    r.Quantity,
		ExpendedAt:  r.ExpendedAt.TimePtr(),
	}
}

// SignupRequest represents a request to register a user.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	BaseID   string `json:"base_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SignupRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Password: r.Password,
		Role:     domain.Role(r.Role),
		BaseID:   r.BaseID,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// CreateBaseRequest represents a request to create a base.
type CreateBaseRequest struct {
	Name string `json:"name"`
}

// CreateEquipmentTypeRequest represents a request to create an equipment
// type.
type CreateEquipmentTypeRequest struct {
	Name string `json:"name"`
}

// CreateEquipmentRequest represents a request to create an equipment
// definition under an existing type.
type CreateEquipmentRequest struct {
	Name   string `json:"name"`
	TypeID string `json:"type_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEquipmentRequest) ToUseCaseInput() usecase.CreateEquipmentInput {
	return usecase.CreateEquipmentInput{
		Name:   r.Name,
		TypeID: r.TypeID,
	}
}
