package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// AssignmentRepository implements assignment ledger persistence
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// Create inserts a new assignment record
func (r *AssignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	query := `
		INSERT INTO assignments (id, base_id, equipment_id, assigned_to, quantity, assigned_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.BaseID,
		a.EquipmentID,
		a.AssignedTo,
		a.Quantity,
		a.AssignedAt,
		a.CreatedAt,
	)

	return err
}

// List retrieves assignments matching the filter, newest first
func (r *AssignmentRepository) List(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Assignment, error) {
	b := &condBuilder{}
	if filter.BaseID != "" {
		b.add("base_id", "=", filter.BaseID)
	}
	if filter.EquipmentID != "" {
		b.add("equipment_id", "=", filter.EquipmentID)
	}
	b.addPeriod("assigned_at", filter.Period)

	query := `
		SELECT id, base_id, equipment_id, assigned_to, quantity, assigned_at, created_at
		FROM assignments` +
		b.where() + `
		ORDER BY assigned_at DESC`

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		err := rows.Scan(
			&a.ID,
			&a.BaseID,
			&a.EquipmentID,
			&a.AssignedTo,
			&a.Quantity,
			&a.AssignedAt,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, &a)
	}

	return assignments, rows.Err()
}

// SumQuantity sums assigned quantities matching the filter
func (r *AssignmentRepository) SumQuantity(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error) {
	b := &condBuilder{}
	if filter.BaseID != "" {
		b.add("base_id", "=", filter.BaseID)
	}
	if filter.EquipmentID != "" {
		b.add("equipment_id", "=", filter.EquipmentID)
	}
	b.addPeriod("assigned_at", filter.Period)

	query := `SELECT COALESCE(SUM(quantity), 0) FROM assignments` + b.where()

	var sum int64
	err := r.pool.QueryRow(ctx, query, b.args...).Scan(&sum)
	return sum, err
}
