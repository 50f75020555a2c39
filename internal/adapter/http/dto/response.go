package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BalanceResponse represents a balance snapshot in API responses.
type BalanceResponse struct {
	ID             string    `json:"id"`
	BaseID         string    `json:"base_id"`
	BaseName       string    `json:"base_name"`
	EquipmentID    string    `json:"equipment_id"`
	EquipmentName  string    `json:"equipment_name"`
	OpeningBalance int64     `json:"opening_balance"`
	ClosingBalance int64     `json:"closing_balance"`
	NetMovement    int64     `json:"net_movement"`
	Purchases      int64     `json:"purchases"`
	TransfersIn    int64     `json:"transfers_in"`
	TransfersOut   int64     `json:"transfers_out"`
	Assigned       int64     `json:"assigned"`
	Expended       int64     `json:"expended"`
	Date           time.Time `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b *domain.Balance) *BalanceResponse {
	return &BalanceResponse{
		ID:             b.ID,
		BaseID:         b.BaseID,
		BaseName:       b.BaseName,
		EquipmentID:    b.EquipmentID,
		EquipmentName:  b.EquipmentName,
		OpeningBalance: b.OpeningBalance,
		ClosingBalance: b.ClosingBalance,
		NetMovement:    b.NetMovement,
		Purchases:      b.Purchases,
		TransfersIn:    b.TransfersIn,
		TransfersOut:   b.TransfersOut,
		Assigned:       b.Assigned,
		Expended:       b.Expended,
		Date:           b.Date,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// BalancesFromDomain converts domain balances to responses.
func BalancesFromDomain(balances []*domain.Balance) []*BalanceResponse {
	result := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = BalanceFromDomain(b)
	}
	return result
}

// BalanceTotalsResponse represents the rollup across a snapshot listing.
type BalanceTotalsResponse struct {
	OpeningBalance int64 `json:"opening_balance"`
	ClosingBalance int64 `json:"closing_balance"`
	NetMovement    int64 `json:"net_movement"`
	Purchases      int64 `json:"purchases"`
	TransfersIn    int64 `json:"transfers_in"`
	TransfersOut   int64 `json:"transfers_out"`
	Assigned       int64 `json:"assigned"`
	Expended       int64 `json:"expended"`
}

// BalanceSummaryResponse pairs a snapshot listing with its rollup.
type BalanceSummaryResponse struct {
	Balances []*BalanceResponse    `json:"balances"`
	Totals   BalanceTotalsResponse `json:"totals"`
}

// BalanceSummaryFromDomain converts a snapshot listing and rollup to a
// response.
func BalanceSummaryFromDomain(balances []*domain.Balance, totals domain.BalanceTotals) *BalanceSummaryResponse {
	return &BalanceSummaryResponse{
		Balances: BalancesFromDomain(balances),
		Totals: BalanceTotalsResponse{
			OpeningBalance: totals.OpeningBalance,
			ClosingBalance: totals.ClosingBalance,
			NetMovement:    totals.NetMovement,
			Purchases:      totals.Purchases,
			TransfersIn:    totals.TransfersIn,
			TransfersOut:   totals.TransfersOut,
			Assigned:       totals.Assigned,
			Expended:       totals.Expended,
		},
	}
}

// DebugResponse reports whether a base and equipment id resolve.
type DebugResponse struct {
	BaseExists      bool               `json:"base_exists"`
	EquipmentExists bool               `json:"equipment_exists"`
	Base            *BaseResponse      `json:"base,omitempty"`
	Equipment       *EquipmentResponse `json:"equipment,omitempty"`
}

// DebugFromUseCase converts a debug result to a response.
func DebugFromUseCase(r *usecase.DebugResult) *DebugResponse {
	resp := &DebugResponse{
		BaseExists:      r.BaseExists,
		EquipmentExists: r.EquipmentExists,
	}
	if r.Base != nil {
		resp.Base = BaseFromDomain(r.Base)
	}
	if r.Equipment != nil {
		resp.Equipment = EquipmentFromDomain(r.Equipment)
	}
	return resp
}

// PurchaseResponse represents a purchase in API responses.
type PurchaseResponse struct {
	ID          string          `json:"id"`
	BaseID      string          `json:"base_id"`
	EquipmentID string          `json:"equipment_id"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CreatedBy   string          `json:"created_by,omitempty"`
	PurchasedAt time.Time       `json:"purchased_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PurchaseFromDomain converts a domain purchase to a response.
func PurchaseFromDomain(p *domain.Purchase) *PurchaseResponse {
	return &PurchaseResponse{
		ID:          p.ID,
		BaseID:      p.BaseID,
		EquipmentID: p.EquipmentID,
		Quantity:    p.Quantity,
		Price:       p.Price,
		CreatedBy:   p.CreatedBy,
		PurchasedAt: p.PurchasedAt,
		CreatedAt:   p.CreatedAt,
	}
}

// PurchasesFromDomain converts domain purchases to responses.
func PurchasesFromDomain(purchases []*domain.Purchase) []*PurchaseResponse {
	result := make([]*PurchaseResponse, len(purchases))
	for i, p := range purchases {
		result[i] = PurchaseFromDomain(p)
	}
	return result
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID            string    `json:"id"`
	FromBaseID    string    `json:"from_base_id"`
	ToBaseID      string    `json:"to_base_id"`
	EquipmentID   string    `json:"equipment_id"`
	Quantity      int64     `json:"quantity"`
	TransferredAt time.Time `json:"transferred_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:            t.ID,
		FromBaseID:    t.FromBaseID,
		ToBaseID:      t.ToBaseID,
		EquipmentID:   t.EquipmentID,
		Quantity:      t.Quantity,
		TransferredAt: t.TransferredAt,
		CreatedAt:     t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// AssignmentResponse represents an assignment in API responses.
type AssignmentResponse struct {
	ID          string    `json:"id"`
	BaseID      string    `json:"base_id"`
	EquipmentID string    `json:"equipment_id"`
	AssignedTo  string    `json:"assigned_to"`
	Quantity    int64     `json:"quantity"`
	AssignedAt  time.Time `json:"assigned_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// AssignmentFromDomain converts a domain assignment to a response.
func AssignmentFromDomain(a *domain.Assignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:          a.ID,
		BaseID:      a.BaseID,
		EquipmentID: a.EquipmentID,
		AssignedTo:  a.AssignedTo,
		Quantity:    a.Quantity,
		AssignedAt:  a.AssignedAt,
		CreatedAt:   a.CreatedAt,
	}
}

// AssignmentsFromDomain converts domain assignments to responses.
func AssignmentsFromDomain(assignments []*domain.Assignment) []*AssignmentResponse {
	result := make([]*AssignmentResponse, len(assignments))
	for i, a := range assignments {
		result[i] = AssignmentFromDomain(a)
	}
	return result
}

// ExpenditureResponse represents an expenditure in API responses.
type ExpenditureResponse struct {
	ID          string    `json:"id"`
	BaseID      string    `json:"base_id"`
	EquipmentID string    `json:"equipment_id"`
	Quantity    int64     `json:"quantity"`
	ExpendedAt  time.Time `json:"expended_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenditureFromDomain converts a domain expenditure to a response.
func ExpenditureFromDomain(e *domain.Expenditure) *ExpenditureResponse {
	return &ExpenditureResponse{
		ID:          e.ID,
		BaseID:      e.BaseID,
		EquipmentID: e.EquipmentID,
		Quantity:    e.Quantity,
		ExpendedAt:  e.ExpendedAt,
		CreatedAt:   e.CreatedAt,
	}
}

// ExpendituresFromDomain converts domain expenditures to responses.
func ExpendituresFromDomain(expenditures []*domain.Expenditure) []*ExpenditureResponse {
	result := make([]*ExpenditureResponse, len(expenditures))
	for i, e := range expenditures {
		result[i] = ExpenditureFromDomain(e)
	}
	return result
}

// MovementsResponse pairs assignment and expenditure listings.
type MovementsResponse struct {
	Assignments  []*AssignmentResponse  `json:"assignments"`
	Expenditures []*ExpenditureResponse `json:"expenditures"`
}

// MovementsFromUseCase converts a movements listing to a response.
func MovementsFromUseCase(m *usecase.Movements) *MovementsResponse {
	return &MovementsResponse{
		Assignments:  AssignmentsFromDomain(m.Assignments),
		Expenditures: ExpendituresFromDomain(m.Expenditures),
	}
}

// DetailedMovementResponse holds every ledger listing for drill-down views.
type DetailedMovementResponse struct {
	Purchases    []*PurchaseResponse    `json:"purchases"`
	TransfersIn  []*TransferResponse    `json:"transfers_in"`
	TransfersOut []*TransferResponse    `json:"transfers_out"`
	Assignments  []*AssignmentResponse  `json:"assignments"`
	Expenditures []*ExpenditureResponse `json:"expenditures"`
}

// DetailedMovementFromUseCase converts a detailed movement to a response.
func DetailedMovementFromUseCase(m *usecase.DetailedMovement) *DetailedMovementResponse {
	return &DetailedMovementResponse{
		Purchases:    PurchasesFromDomain(m.Purchases),
		TransfersIn:  TransfersFromDomain(m.TransfersIn),
		TransfersOut: TransfersFromDomain(m.TransfersOut),
		Assignments:  AssignmentsFromDomain(m.Assignments),
		Expenditures: ExpendituresFromDomain(m.Expenditures),
	}
}

// BaseResponse represents a base in API responses.
type BaseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BaseFromDomain converts a domain base to a response.
func BaseFromDomain(b *domain.Base) *BaseResponse {
	return &BaseResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BasesFromDomain converts domain bases to responses.
func BasesFromDomain(bases []*domain.Base) []*BaseResponse {
	result := make([]*BaseResponse, len(bases))
	for i, b := range bases {
		result[i] = BaseFromDomain(b)
	}
	return result
}

// EquipmentTypeResponse represents an equipment type in API responses.
type EquipmentTypeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EquipmentTypeFromDomain converts a domain equipment type to a response.
func EquipmentTypeFromDomain(et *domain.EquipmentType) *EquipmentTypeResponse {
	return &EquipmentTypeResponse{
		ID:        et.ID,
		Name:      et.Name,
		CreatedAt: et.CreatedAt,
		UpdatedAt: et.UpdatedAt,
	}
}

// EquipmentTypesFromDomain converts domain equipment types to responses.
func EquipmentTypesFromDomain(types []*domain.EquipmentType) []*EquipmentTypeResponse {
	result := make([]*EquipmentTypeResponse, len(types))
	for i, et := range types {
		result[i] = EquipmentTypeFromDomain(et)
	}
	return result
}

// EquipmentResponse represents an equipment definition in API responses.
type EquipmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TypeID    string    `json:"type_id"`
	TypeName  string    `json:"type_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EquipmentFromDomain converts a domain equipment definition to a response.
func EquipmentFromDomain(eq *domain.Equipment) *EquipmentResponse {
	return &EquipmentResponse{
		ID:        eq.ID,
		Name:      eq.Name,
		TypeID:    eq.TypeID,
		TypeName:  eq.TypeName,
		CreatedAt: eq.CreatedAt,
		UpdatedAt: eq.UpdatedAt,
	}
}

// EquipmentListFromDomain converts domain equipment definitions to responses.
func EquipmentListFromDomain(equipment []*domain.Equipment) []*EquipmentResponse {
	result := make([]*EquipmentResponse, len(equipment))
	for i, eq := range equipment {
		result[i] = EquipmentFromDomain(eq)
	}
	return result
}

// UserResponse represents a user in API responses. The password hash is
// never exposed.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	BaseID   string `json:"base_id,omitempty"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     string(u.Role),
		BaseID:   u.BaseID,
	}
}

// TokenResponse represents a successful login or signup.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// RolesResponse lists the assignable roles.
type RolesResponse struct {
	Roles []string `json:"roles"`
}

// RolesFromDomain converts domain roles to a response.
func RolesFromDomain(roles []domain.Role) *RolesResponse {
	result := make([]string, len(roles))
	for i, r := range roles {
		result[i] = string(r)
	}
	return &RolesResponse{Roles: result}
}
