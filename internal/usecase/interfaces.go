package usecase

import (
	"context"
	"time"

	"github.com/iho/armory/internal/domain"
)

// LedgerSumFilter scopes a quantity sum over one ledger. Empty BaseID or
// EquipmentID leaves that dimension unconstrained; open period bounds leave
// the window unbounded on that side.
type LedgerSumFilter struct {
	BaseID      string
	EquipmentID string
	Period      domain.Period
}

// LedgerListFilter scopes a ledger listing.
type LedgerListFilter struct {
	BaseID          string
	EquipmentID     string
	EquipmentTypeID string
	CreatedBy       string
	Period          domain.Period
}

// BalanceFilter scopes a balance snapshot listing.
type BalanceFilter struct {
	BaseID      string
	EquipmentID string
	Period      domain.Period
}

// BaseRepository defines data access for bases.
type BaseRepository interface {
	Create(ctx context.Context, base *domain.Base) error
	GetByID(ctx context.Context, id string) (*domain.Base, error)
	GetByName(ctx context.Context, name string) (*domain.Base, error)
	List(ctx context.Context) ([]*domain.Base, error)
}

// EquipmentRepository defines data access for equipment definitions.
type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	GetByName(ctx context.Context, name string) (*domain.Equipment, error)
	List(ctx context.Context) ([]*domain.Equipment, error)
}

// EquipmentTypeRepository defines data access for equipment types.
type EquipmentTypeRepository interface {
	Create(ctx context.Context, et *domain.EquipmentType) error
	GetByID(ctx context.Context, id string) (*domain.EquipmentType, error)
	List(ctx context.Context) ([]*domain.EquipmentType, error)
}

// PurchaseRepository defines data access for the purchase ledger.
type PurchaseRepository interface {
	Create(ctx context.Context, p *domain.Purchase) error
	List(ctx context.Context, filter LedgerListFilter) ([]*domain.Purchase, error)
	SumQuantity(ctx context.Context, filter LedgerSumFilter) (int64, error)
}

// TransferRepository defines data access for the transfer ledger. Sums are
// split by direction relative to the filtered base.
type TransferRepository interface {
	Create(ctx context.Context, t *domain.Transfer) error
	List(ctx context.Context, filter LedgerListFilter) ([]*domain.Transfer, error)
	SumInbound(ctx context.Context, filter LedgerSumFilter) (int64, error)
	SumOutbound(ctx context.Context, filter LedgerSumFilter) (int64, error)
}

// AssignmentRepository defines data access for the assignment ledger.
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) error
	List(ctx context.Context, filter LedgerListFilter) ([]*domain.Assignment, error)
	SumQuantity(ctx context.Context, filter LedgerSumFilter) (int64, error)
}

// ExpenditureRepository defines data access for the expenditure ledger.
type ExpenditureRepository interface {
	Create(ctx context.Context, e *domain.Expenditure) error
	List(ctx context.Context, filter LedgerListFilter) ([]*domain.Expenditure, error)
	SumQuantity(ctx context.Context, filter LedgerSumFilter) (int64, error)
}

// BalanceRepository defines data access for balance snapshots. Upsert matches
// on (base, equipment, date) and replaces every computed field atomically.
type BalanceRepository interface {
	Upsert(ctx context.Context, b *domain.Balance) (*domain.Balance, error)
	UpsertOpening(ctx context.Context, baseID, equipmentID string, opening int64, date time.Time) (*domain.Balance, error)
	GetLatest(ctx context.Context, baseID, equipmentID string) (*domain.Balance, error)
	List(ctx context.Context, filter BalanceFilter) ([]*domain.Balance, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// RequestLogRepository defines data access for request audit logs.
type RequestLogRepository interface {
	Create(ctx context.Context, log *domain.RequestLog) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient store errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
