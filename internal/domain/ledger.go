package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records equipment bought for a base. Immutable once created.
type Purchase struct {
	ID          string
	BaseID      string
	EquipmentID string
	Quantity    int64
	Price       decimal.Decimal
	CreatedBy   string
	PurchasedAt time.Time
	CreatedAt   time.Time
}

// Validate checks purchase invariants.
func (p *Purchase) Validate() error {
	if p.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Transfer records equipment moved between two bases. The source and
// destination are not required to differ.
type Transfer struct {
	ID            string
	FromBaseID    string
	ToBaseID      string
	EquipmentID   string
	Quantity      int64
	TransferredAt time.Time
	CreatedAt     time.Time
}

// Validate checks transfer invariants.
func (t *Transfer) Validate() error {
	if t.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Assignment records equipment handed to personnel at a base.
type Assignment struct {
	ID          string
	BaseID      string
	EquipmentID string
	AssignedTo  string
	Quantity    int64
	AssignedAt  time.Time
	CreatedAt   time.Time
}

// Validate checks assignment invariants.
func (a *Assignment) Validate() error {
	if a.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if a.AssignedTo == "" {
		return ErrMissingAssignee
	}
	return nil
}

// Expenditure records equipment consumed or destroyed at a base.
type Expenditure struct {
	ID          string
	BaseID      string
	EquipmentID string
	Quantity    int64
	ExpendedAt  time.Time
	CreatedAt   time.Time
}

// Validate checks expenditure invariants.
func (e *Expenditure) Validate() error {
	if e.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Period is an optional date window over which ledger sums are computed.
// A nil bound means the window is open on that side.
type Period struct {
	Start *time.Time
	End   *time.Time
}

// Validate checks that the window is not inverted.
func (p Period) Validate() error {
	if p.Start != nil && p.End != nil && p.Start.After(*p.End) {
		return ErrInvalidDateRange
	}
	return nil
}
