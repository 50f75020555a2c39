package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// TransferRepository implements transfer ledger persistence
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

// Create inserts a new transfer record
func (r *TransferRepository) Create(ctx context.Context, t *domain.Transfer) error {
	query := `
		INSERT INTO transfers (id, from_base_id, to_base_id, equipment_id, quantity, transferred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.FromBaseID,
		t.ToBaseID,
		t.EquipmentID,
		t.Quantity,
		t.TransferredAt,
		t.CreatedAt,
	)

	return err
}

// List retrieves transfers touching either side of the filtered base,
// newest first
func (r *TransferRepository) List(ctx context.Context, filter usecase.LedgerListFilter) ([]*domain.Transfer, error) {
	b := &condBuilder{}
	if filter.BaseID != "" {
		b.args = append(b.args, filter.BaseID)
		b.conds = append(b.conds, "(from_base_id = $1 OR to_base_id = $1)")
	}
	if filter.EquipmentID != "" {
		b.add("equipment_id", "=", filter.EquipmentID)
	}
	b.addPeriod("transferred_at", filter.Period)

	query := `
		SELECT id, from_base_id, to_base_id, equipment_id, quantity, transferred_at, created_at
		FROM transfers` +
		b.where() + `
		ORDER BY transferred_at DESC`

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.Transfer
	for rows.Next() {
		var t domain.Transfer
		err := rows.Scan(
			&t.ID,
			&t.FromBaseID,
			&t.ToBaseID,
			&t.EquipmentID,
			&t.Quantity,
			&t.TransferredAt,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, &t)
	}

	return transfers, rows.Err()
}

// SumInbound sums quantities received by the filtered base
func (r *TransferRepository) SumInbound(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error) {
	return r.sum(ctx, "to_base_id", filter)
}

// SumOutbound sums quantities shipped from the filtered base
func (r *TransferRepository) SumOutbound(ctx context.Context, filter usecase.LedgerSumFilter) (int64, error) {
	return r.sum(ctx, "from_base_id", filter)
}

func (r *TransferRepository) sum(ctx context.Context, baseColumn string, filter usecase.LedgerSumFilter) (int64, error) {
	b := &condBuilder{}
	if filter.BaseID != "" {
		b.add(baseColumn, "=", filter.BaseID)
	}
	if filter.EquipmentID != "" {
		b.add("equipment_id", "=", filter.EquipmentID)
	}
	b.addPeriod("transferred_at", filter.Period)

	query := `SELECT COALESCE(SUM(quantity), 0) FROM transfers` + b.where()

	var sum int64
	err := r.pool.QueryRow(ctx, query, b.args...).Scan(&sum)
	return sum, err
}
