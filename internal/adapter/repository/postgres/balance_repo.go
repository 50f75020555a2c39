package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// BalanceRepository implements balance snapshot persistence. Snapshots are
// keyed by (base_id, equipment_id, date); writing the same key again replaces
// the computed fields in place.
type BalanceRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{pool: pool}
}

const balanceColumns = `
	u.id, u.base_id, COALESCE(b.name, ''), u.equipment_id, COALESCE(e.name, ''),
	u.opening_balance, u.closing_balance, u.net_movement,
	u.purchases, u.transfers_in, u.transfers_out, u.assigned, u.expended,
	u.date, u.created_at, u.updated_at`

// Upsert writes a snapshot, replacing every computed field when the key
// already exists
func (r *BalanceRepository) Upsert(ctx context.Context, bal *domain.Balance) (*domain.Balance, error) {
	if bal.ID == "" {
		bal.ID = uuid.New().String()
	}

	now := time.Now().UTC()

	query := `
		WITH u AS (
			INSERT INTO balances (
				id, base_id, equipment_id,
				opening_balance, closing_balance, net_movement,
				purchases, transfers_in, transfers_out, assigned, expended,
				date, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
			ON CONFLICT (base_id, equipment_id, date) DO UPDATE SET
				opening_balance = EXCLUDED.opening_balance,
				closing_balance = EXCLUDED.closing_balance,
				net_movement    = EXCLUDED.net_movement,
				purchases       = EXCLUDED.purchases,
				transfers_in    = EXCLUDED.transfers_in,
				transfers_out   = EXCLUDED.transfers_out,
				assigned        = EXCLUDED.assigned,
				expended        = EXCLUDED.expended,
				updated_at      = EXCLUDED.updated_at
			RETURNING *
		)
		SELECT` + balanceColumns + `
		FROM u
		LEFT JOIN bases b ON b.id = u.base_id
		LEFT JOIN equipment e ON e.id = u.equipment_id
	`

	row := r.pool.QueryRow(ctx, query,
		bal.ID,
		bal.BaseID,
		bal.EquipmentID,
		bal.OpeningBalance,
		bal.ClosingBalance,
		bal.NetMovement,
		bal.Purchases,
		bal.TransfersIn,
		bal.TransfersOut,
		bal.Assigned,
		bal.Expended,
		bal.Date,
		now,
	)

	return scanBalance(row)
}

// UpsertOpening writes an explicit opening balance for the key. Computed
// fields keep their stored values for an existing row; a fresh row starts
// them at zero with closing equal to the opening.
func (r *BalanceRepository) UpsertOpening(ctx context.Context, baseID, equipmentID string, opening int64, date time.Time) (*domain.Balance, error) {
	now := time.Now().UTC()

	query := `
		WITH u AS (
			INSERT INTO balances (
				id, base_id, equipment_id,
				opening_balance, closing_balance, net_movement,
				purchases, transfers_in, transfers_out, assigned, expended,
				date, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $4, 0, 0, 0, 0, 0, 0, $5, $6, $6)
			ON CONFLICT (base_id, equipment_id, date) DO UPDATE SET
				opening_balance = EXCLUDED.opening_balance,
				closing_balance = EXCLUDED.opening_balance
					+ balances.net_movement - balances.assigned - balances.expended,
				updated_at = EXCLUDED.updated_at
			RETURNING *
		)
		SELECT` + balanceColumns + `
		FROM u
		LEFT JOIN bases b ON b.id = u.base_id
		LEFT JOIN equipment e ON e.id = u.equipment_id
	`

	row := r.pool.QueryRow(ctx, query,
		uuid.New().String(),
		baseID,
		equipmentID,
		opening,
		date,
		now,
	)

	return scanBalance(row)
}

// GetLatest retrieves the most recent snapshot for the filters. An empty
// equipmentID matches any equipment at the base.
func (r *BalanceRepository) GetLatest(ctx context.Context, baseID, equipmentID string) (*domain.Balance, error) {
	b := &condBuilder{}
	if baseID != "" {
		b.add("u.base_id", "=", baseID)
	}
	if equipmentID != "" {
		b.add("u.equipment_id", "=", equipmentID)
	}

	query := `
		SELECT` + balanceColumns + `
		FROM balances u
		LEFT JOIN bases b ON b.id = u.base_id
		LEFT JOIN equipment e ON e.id = u.equipment_id` +
		b.where() + `
		ORDER BY u.date DESC
		LIMIT 1`

	return scanBalance(r.pool.QueryRow(ctx, query, b.args...))
}

// List retrieves snapshots matching the filter, newest first
func (r *BalanceRepository) List(ctx context.Context, filter usecase.BalanceFilter) ([]*domain.Balance, error) {
	b := &condBuilder{}
	if filter.BaseID != "" {
		b.add("u.base_id", "=", filter.BaseID)
	}
	if filter.EquipmentID != "" {
		b.add("u.equipment_id", "=", filter.EquipmentID)
	}
	b.addPeriod("u.date", filter.Period)

	query := `
		SELECT` + balanceColumns + `
		FROM balances u
		LEFT JOIN bases b ON b.id = u.base_id
		LEFT JOIN equipment e ON e.id = u.equipment_id` +
		b.where() + `
		ORDER BY u.date DESC`

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*domain.Balance
	for rows.Next() {
		bal, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, bal)
	}

	return balances, rows.Err()
}

func scanBalance(row pgx.Row) (*domain.Balance, error) {
	var bal domain.Balance
	err := row.Scan(
		&bal.ID,
		&bal.BaseID,
		&bal.BaseName,
		&bal.EquipmentID,
		&bal.EquipmentName,
		&bal.OpeningBalance,
		&bal.ClosingBalance,
		&bal.NetMovement,
		&bal.Purchases,
		&bal.TransfersIn,
		&bal.TransfersOut,
		&bal.Assigned,
		&bal.Expended,
		&bal.Date,
		&bal.CreatedAt,
		&bal.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBalanceNotFound
	}
	if err != nil {
		return nil, err
	}

	return &bal, nil
}
