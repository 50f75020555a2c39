package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// PurchaseRepository implements purchase ledger persistence
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Create inserts a new purchase record
func (r *PurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	query := `
		INSERT INTO purchases (id, base_id, equipment_id, quantity, price, created_by, purchased_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.BaseID,
		p.EquipmentID,
		p.Quantity,
		p.Price,
		p.CreatedBy,
		p.PurchasedAt,
		p.CreatedAt,
	)

	return err
}

// List retrieves purchases matching the filter, newest first
func (r *PurchaseRepository) List(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Purchase, error) {
	b := &condBuilder{}
	if filter.BaseID != "" {
		b.add("p.base_id", "=", filter.BaseID)
	}
	if filter.EquipmentID != "" {
		b.add("p.equipment_id", "=", filter.EquipmentID)
	}
	if filter.EquipmentTypeID != "" {
		b.add("e.type_id", "=", filter.EquipmentTypeID)
	}
	if filter.CreatedBy != "" {
		b.add("p.created_by", "=", filter.CreatedBy)
	}
	b.addPeriod("p.purchased_at", filter.Period)

	query := `
		SELECT p.id, p.base_id, p.equipment_id, p.quantity, p.price,
		       COALESCE(p.created_by, ''), p.purchased_at, p.created_at
		FROM purchases p
		JOIN equipment e ON e.id = p.equipment_id` +
		b.where() + `
		ORDER BY p.purchased_at DESC`

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		err := rows.Scan(
			&p.ID,
			&p.BaseID,
			&p.EquipmentID,
			&p.Quantity,
			&p.Price,
			&p.CreatedBy,
			&p.PurchasedAt,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, &p)
	}

	return purchases, rows.Err()
}

// SumQuantity sums purchased quantities matching the filter
func (r *PurchaseRepository) SumQuantity(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error) {
	b := &condBuilder{}
	if filter.BaseID != "" {
		b.add("base_id", "=", filter.BaseID)
	}
	if filter.EquipmentID != "" {
		b.add("equipment_id", "=", filter.EquipmentID)
	}
	b.addPeriod("purchased_at", filter.Period)

	query := `SELECT COALESCE(SUM(quantity), 0) FROM purchases` + b.where()

	var sum int64
	err := r.pool.QueryRow(ctx, query, b.args...).Scan(&sum)
	return sum, err
}
