package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/armory/internal/domain"
)

const pgErrUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

// BaseRepository implements base persistence
type BaseRepository struct {
	pool *pgxpool.Pool
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(pool *pgxpool.Pool) *BaseRepository {
	return &BaseRepository{pool: pool}
}

// Create inserts a new base
func (r *BaseRepository) Create(ctx context.Context, base *domain.Base) error {
	query := `
		INSERT INTO bases (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		base.ID,
		base.Name,
		base.CreatedAt,
		base.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}

	return err
}

// GetByID retrieves a base by ID
func (r *BaseRepository) GetByID(ctx context.Context, id string) (*domain.Base, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM bases
		WHERE id = $1
	`

	return r.scanBase(r.pool.QueryRow(ctx, query, id))
}

// GetByName retrieves a base by exact name
func (r *BaseRepository) GetByName(ctx context.Context, name string) (*domain.Base, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM bases
		WHERE name = $1
	`

	return r.scanBase(r.pool.QueryRow(ctx, query, name))
}

// List retrieves all bases ordered by name
func (r *BaseRepository) List(ctx context.Context) ([]*domain.Base, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM bases
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bases []*domain.Base
	for rows.Next() {
		var base domain.Base
		if err := rows.Scan(&base.ID, &base.Name, &base.CreatedAt, &base.UpdatedAt); err != nil {
			return nil, err
		}
		bases = append(bases, &base)
	}

	return bases, rows.Err()
}

func (r *BaseRepository) scanBase(row pgx.Row) (*domain.Base, error) {
	var base domain.Base
	err := row.Scan(&base.ID, &base.Name, &base.CreatedAt, &base.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBaseNotFound
	}
	if err != nil {
		return nil, err
	}

	return &base, nil
}
