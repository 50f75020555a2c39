package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// ExpenditureRepository implements expenditure ledger persistence
type ExpenditureRepository struct {
	pool *pgxpool.Pool
}

// NewExpenditureRepository creates a new expenditure repository
func NewExpenditureRepository(pool *pgxpool.Pool) *ExpenditureRepository {
	return &ExpenditureRepository{pool: pool}
}

// Create inserts a new expenditure record
func (r *ExpenditureRepository) Create(ctx context.Context, e *domain.Expenditure) error {
	query := `
		INSERT INTO expenditures (id, base_id, equipment_id, quantity, expended_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.BaseID,
		e.EquipmentID,
		e.Quantity,
		e.ExpendedAt,
		e.CreatedAt,
	)

	return err
}

// List retrieves expenditures matching the filter, newest first
func (r *ExpenditureRepository) List(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Expenditure, error) {
	b := &condBuilder{}
	if filter.BaseID != "" {
		b.add("base_id", "=", filter.BaseID)
	}
	if filter.EquipmentID != "" {
		b.add("equipment_id", "=", filter.EquipmentID)
	}
	b.addPeriod("expended_at", filter.Period)

	query := `
		SELECT id, base_id, equipment_id, quantity, expended_at, created_at
		FROM expenditures` +
		b.where() + `
		ORDER BY expended_at DESC`

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenditures []*domain.Expenditure
	for rows.Next() {
		var e domain.Expenditure
		err := rows.Scan(
			&e.ID,
			&e.BaseID,
			&e.EquipmentID,
			&e.Quantity,
			&e.ExpendedAt,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		expenditures = append(expenditures, &e)
	}

	return expenditures, rows.Err()
}

// SumQuantity sums expended quantities matching the filter
func (r *ExpenditureRepository) SumQuantity(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error) {
	b := &condBuilder{}
	if filter.BaseID != "" {
		b.add("base_id", "=", filter.BaseID)
	}
	if filter.EquipmentID != "" {
		b.add("equipment_id", "=", filter.EquipmentID)
	}
	b.addPeriod("expended_at", filter.Period)

	query := `SELECT COALESCE(SUM(quantity), 0) FROM expenditures` + b.where()

	var sum int64
	err := r.pool.QueryRow(ctx, query, b.args...).Scan(&sum)
	return sum, err
}
