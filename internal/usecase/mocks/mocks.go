package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// MockBaseRepository is a mock implementation of BaseRepository.
type MockBaseRepository struct {
	mu    sync.RWMutex
	bases map[string]*domain.Base

	CreateFunc    func(ctx context.Context, base *domain.Base) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Base, error)
	GetByNameFunc func(ctx context.Context, name string) (*domain.Base, error)
	ListFunc      func(ctx context.Context) ([]*domain.Base, error)
}

func NewMockBaseRepository() *MockBaseRepository {
	return &MockBaseRepository{
		bases: make(map[string]*domain.Base),
	}
}

func (m *MockBaseRepository) Create(ctx context.Context, base *domain.Base) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, base)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bases {
		if b.Name == base.Name {
			return domain.ErrDuplicateName
		}
	}
	m.bases[base.ID] = base
	return nil
}

func (m *MockBaseRepository) GetByID(ctx context.Context, id string) (*domain.Base, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.bases[id]; ok {
		return b, nil
	}
	return nil, domain.ErrBaseNotFound
}

func (m *MockBaseRepository) GetByName(ctx context.Context, name string) (*domain.Base, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bases {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, domain.ErrBaseNotFound
}

func (m *MockBaseRepository) List(ctx context.Context) ([]*domain.Base, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	bases := make([]*domain.Base, 0, len(m.bases))
	for _, b := range m.bases {
		bases = append(bases, b)
	}
	sort.Slice(bases, func(i, j int) bool { return bases[i].Name < bases[j].Name })
	return bases, nil
}

// MockEquipmentRepository is a mock implementation of EquipmentRepository.
type MockEquipmentRepository struct {
	mu        sync.RWMutex
	equipment map[string]*domain.Equipment

	CreateFunc    func(ctx context.Context, eq *domain.Equipment) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Equipment, error)
	GetByNameFunc func(ctx context.Context, name string) (*domain.Equipment, error)
	ListFunc      func(ctx context.Context) ([]*domain.Equipment, error)
}

func NewMockEquipmentRepository() *MockEquipmentRepository {
	return &MockEquipmentRepository{
		equipment: make(map[string]*domain.Equipment),
	}
}

func (m *MockEquipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, eq)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.equipment {
		if e.Name == eq.Name {
			return domain.ErrDuplicateName
		}
	}
	m.equipment[eq.ID] = eq
	return nil
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.equipment[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEquipmentNotFound
}

func (m *MockEquipmentRepository) GetByName(ctx context.Context, name string) (*domain.Equipment, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.equipment {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, domain.ErrEquipmentNotFound
}

func (m *MockEquipmentRepository) List(ctx context.Context) ([]*domain.Equipment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	equipment := make([]*domain.Equipment, 0, len(m.equipment))
	for _, e := range m.equipment {
		equipment = append(equipment, e)
	}
	sort.Slice(equipment, func(i, j int) bool { return equipment[i].Name < equipment[j].Name })
	return equipment, nil
}

// MockEquipmentTypeRepository is a mock implementation of EquipmentTypeRepository.
type MockEquipmentTypeRepository struct {
	mu    sync.RWMutex
	types map[string]*domain.EquipmentType

	CreateFunc  func(ctx context.Context, et *domain.EquipmentType) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.EquipmentType, error)
	ListFunc    func(ctx context.Context) ([]*domain.EquipmentType, error)
}

func NewMockEquipmentTypeRepository() *MockEquipmentTypeRepository {
	return &MockEquipmentTypeRepository{
		types: make(map[string]*domain.EquipmentType),
	}
}

func (m *MockEquipmentTypeRepository) Create(ctx context.Context, et *domain.EquipmentType) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, et)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.types {
		if t.Name == et.Name {
			return domain.ErrDuplicateName
		}
	}
	m.types[et.ID] = et
	return nil
}

func (m *MockEquipmentTypeRepository) GetByID(ctx context.Context, id string) (*domain.EquipmentType, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.types[id]; ok {
		return t, nil
	}
	return nil, domain.ErrEquipmentTypeNotFound
}

func (m *MockEquipmentTypeRepository) List(ctx context.Context) ([]*domain.EquipmentType, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	types := make([]*domain.EquipmentType, 0, len(m.types))
	for _, t := range m.types {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types, nil
}

func matchPeriod(at time.Time, period domain.Period) bool {
	if period.Start != nil && at.Before(*period.Start) {
		return false
	}
	if period.End != nil && at.After(*period.End) {
		return false
	}
	return true
}

// MockPurchaseRepository is a mock implementation of PurchaseRepository.
type MockPurchaseRepository struct {
	mu        sync.RWMutex
	purchases []*domain.Purchase

	CreateFunc      func(ctx context.Context, p *domain.Purchase) error
	ListFunc        func(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Purchase, error)
	SumQuantityFunc func(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error)
}

func NewMockPurchaseRepository() *MockPurchaseRepository {
	return &MockPurchaseRepository{}
}

func (m *MockPurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchases = append(m.purchases, p)
	return nil
}

func (m *MockPurchaseRepository) List(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Purchase, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Purchase
	for _, p := range m.purchases {
		if filter.BaseID != "" && p.BaseID != filter.BaseID {
			continue
		}
		if filter.EquipmentID != "" && p.EquipmentID != filter.EquipmentID {
			continue
		}
		if filter.CreatedBy != "" && p.CreatedBy != filter.CreatedBy {
			continue
		}
		if !matchPeriod(p.PurchasedAt, filter.Period) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchasedAt.After(out[j].PurchasedAt) })
	return out, nil
}

func (m *MockPurchaseRepository) SumQuantity(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error) {
	if m.SumQuantityFunc != nil {
		return m.SumQuantityFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, p := range m.purchases {
		if filter.BaseID != "" && p.BaseID != filter.BaseID {
			continue
		}
		if filter.EquipmentID != "" && p.EquipmentID != filter.EquipmentID {
			continue
		}
		if !matchPeriod(p.PurchasedAt, filter.Period) {
			continue
		}
		sum += p.Quantity
	}
	return sum, nil
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers []*domain.Transfer

	CreateFunc      func(ctx context.Context, t *domain.Transfer) error
	ListFunc        func(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Transfer, error)
	SumInboundFunc  func(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error)
	SumOutboundFunc func(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{}
}

func (m *MockTransferRepository) Create(ctx context.Context, t *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers = append(m.transfers, t)
	return nil
}

func (m *MockTransferRepository) List(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Transfer, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transfer
	for _, t := range m.transfers {
		if filter.BaseID != "" && t.FromBaseID != filter.BaseID && t.ToBaseID != filter.BaseID {
			continue
		}
		if filter.EquipmentID != "" && t.EquipmentID != filter.EquipmentID {
			continue
		}
		if !matchPeriod(t.TransferredAt, filter.Period) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransferredAt.After(out[j].TransferredAt) })
	return out, nil
}

func (m *MockTransferRepository) SumInbound(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error) {
	if m.SumInboundFunc != nil {
		return m.SumInboundFunc(ctx, filter)
	}
	return m.sum(filter, true), nil
}

func (m *MockTransferRepository) SumOutbound(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error) {
	if m.SumOutboundFunc != nil {
		return m.SumOutboundFunc(ctx, filter)
	}
	return m.sum(filter, false), nil
}

func (m *MockTransferRepository) sum(filter usecase.LedgerSumFilter, inbound bool) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, t := range m.transfers {
		baseID := t.FromBaseID
		if inbound {
			baseID = t.ToBaseID
		}
		if filter.BaseID != "" && baseID != filter.BaseID {
			continue
		}
		if filter.EquipmentID != "" && t.EquipmentID != filter.EquipmentID {
			continue
		}
		if !matchPeriod(t.TransferredAt, filter.Period) {
			continue
		}
		sum += t.Quantity
	}
	return sum
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository.
type MockAssignmentRepository struct {
	mu          sync.RWMutex
	assignments []*domain.Assignment

	CreateFunc      func(ctx context.Context, a *domain.Assignment) error
	ListFunc        func(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Assignment, error)
	SumQuantityFunc func(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error)
}

func NewMockAssignmentRepository() *MockAssignmentRepository {
	return &MockAssignmentRepository{}
}

func (m *MockAssignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *MockAssignmentRepository) List(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Assignment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Assignment
	for _, a := range m.assignments {
		if filter.BaseID != "" && a.BaseID != filter.BaseID {
			continue
		}
		if filter.EquipmentID != "" && a.EquipmentID != filter.EquipmentID {
			continue
		}
		if !matchPeriod(a.AssignedAt, filter.Period) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignedAt.After(out[j].AssignedAt) })
	return out, nil
}

func (m *MockAssignmentRepository) SumQuantity(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error) {
	if m.SumQuantityFunc != nil {
		return m.SumQuantityFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, a := range m.assignments {
		if filter.BaseID != "" && a.BaseID != filter.BaseID {
			continue
		}
		if filter.EquipmentID != "" && a.EquipmentID != filter.EquipmentID {
			continue
		}
		if !matchPeriod(a.AssignedAt, filter.Period) {
			continue
		}
		sum += a.Quantity
	}
	return sum, nil
}

// MockExpenditureRepository is a mock implementation of ExpenditureRepository.
type MockExpenditureRepository struct {
	mu           sync.RWMutex
	expenditures []*domain.Expenditure

	CreateFunc      func(ctx context.Context, e *domain.Expenditure) error
	ListFunc        func(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Expenditure, error)
	SumQuantityFunc func(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error)
}

func NewMockExpenditureRepository() *MockExpenditureRepository {
	return &MockExpenditureRepository{}
}

func (m *MockExpenditureRepository) Create(ctx context.Context, e *domain.Expenditure) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenditures = append(m.expenditures, e)
	return nil
}

func (m *MockExpenditureRepository) List(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Expenditure, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Expenditure
	for _, e := range m.expenditures {
		if filter.BaseID != "" && e.BaseID != filter.BaseID {
			continue
		}
		if filter.EquipmentID != "" && e.EquipmentID != filter.EquipmentID {
			continue
		}
		if !matchPeriod(e.ExpendedAt, filter.Period) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpendedAt.After(out[j].ExpendedAt) })
	return out, nil
}

func (m *MockExpenditureRepository) SumQuantity(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error) {
	if m.SumQuantityFunc != nil {
		return m.SumQuantityFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, e := range m.expenditures {
		if filter.BaseID != "" && e.BaseID != filter.BaseID {
			continue
		}
		if filter.EquipmentID != "" && e.EquipmentID != filter.EquipmentID {
			continue
		}
		if !matchPeriod(e.ExpendedAt, filter.Period) {
			continue
		}
		sum += e.Quantity
	}
	return sum, nil
}

// MockBalanceRepository is a mock implementation of BalanceRepository. The
// snapshot key is (base, equipment, calendar date), matching the unique
// index on the real table.
type MockBalanceRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.Balance

	UpsertFunc        func(ctx context.Context, b *domain.Balance) (*domain.Balance, error)
	UpsertOpeningFunc func(ctx context.Context, baseID, equipmentID string, opening int64, date time.Time) (*domain.Balance, error)
	GetLatestFunc     func(ctx context.Context, baseID, equipmentID string) (*domain.Balance, error)
	ListFunc          func(ctx context.Context, filter usecase.BalanceFilter) ([]*domain.Balance, error)
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{
		snapshots: make(map[string]*domain.Balance),
	}
}

func snapshotKey(baseID, equipmentID string, date time.Time) string {
	return fmt.Sprintf("%s|%s|%s", baseID, equipmentID, date.UTC().Format("2006-01-02"))
}

func (m *MockBalanceRepository) Upsert(ctx context.Context, b *domain.Balance) (*domain.Balance, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, b)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *b
	m.snapshots[snapshotKey(b.BaseID, b.EquipmentID, b.Date)] = &stored
	return &stored, nil
}

func (m *MockBalanceRepository) UpsertOpening(ctx context.Context, baseID, equipmentID string, opening int64, date time.Time) (*domain.Balance, error) {
	if m.UpsertOpeningFunc != nil {
		return m.UpsertOpeningFunc(ctx, baseID, equipmentID, opening, date)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := snapshotKey(baseID, equipmentID, date)
	b, ok := m.snapshots[key]
	if !ok {
		b = &domain.Balance{
			BaseID:      baseID,
			EquipmentID: equipmentID,
			Date:        date.UTC(),
		}
		m.snapshots[key] = b
	}
	b.OpeningBalance = opening
	b.ClosingBalance = opening + b.NetMovement - b.Assigned - b.Expended
	return b, nil
}

func (m *MockBalanceRepository) GetLatest(ctx context.Context, baseID, equipmentID string) (*domain.Balance, error) {
	if m.GetLatestFunc != nil {
		return m.GetLatestFunc(ctx, baseID, equipmentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.Balance
	for _, b := range m.snapshots {
		if baseID != "" && b.BaseID != baseID {
			continue
		}
		if equipmentID != "" && b.EquipmentID != equipmentID {
			continue
		}
		if latest == nil || b.Date.After(latest.Date) {
			latest = b
		}
	}
	if latest == nil {
		return nil, domain.ErrBalanceNotFound
	}
	return latest, nil
}

func (m *MockBalanceRepository) List(ctx context.Context, filter usecase.BalanceFilter) ([]*domain.Balance, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Balance
	for _, b := range m.snapshots {
		if filter.BaseID != "" && b.BaseID != filter.BaseID {
			continue
		}
		if filter.EquipmentID != "" && b.EquipmentID != filter.EquipmentID {
			continue
		}
		if !matchPeriod(b.Date, filter.Period) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc        func(ctx context.Context, user *domain.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockIDGenerator is a mock implementation of IDGenerator producing
// deterministic sequential ids.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int
	Prefix  string

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{Prefix: "id"}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("%s-%03d", m.Prefix, m.counter)
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once with no retry.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
