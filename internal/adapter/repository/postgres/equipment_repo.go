package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/armory/internal/domain"
)

// EquipmentTypeRepository implements equipment type persistence
type EquipmentTypeRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentTypeRepository creates a new equipment type repository
func NewEquipmentTypeRepository(pool *pgxpool.Pool) *EquipmentTypeRepository {
	return &EquipmentTypeRepository{pool: pool}
}

// Create inserts a new equipment type
func (r *EquipmentTypeRepository) Create(ctx context.Context, et *domain.EquipmentType) error {
	query := `
		INSERT INTO equipment_types (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, et.ID, et.Name, et.CreatedAt, et.UpdatedAt)

	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}

	return err
}

// GetByID retrieves an equipment type by ID
func (r *EquipmentTypeRepository) GetByID(ctx context.Context, id string) (*domain.EquipmentType, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM equipment_types
		WHERE id = $1
	`

	var et domain.EquipmentType
	err := r.pool.QueryRow(ctx, query, id).Scan(&et.ID, &et.Name, &et.CreatedAt, &et.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEquipmentTypeNotFound
	}
	if err != nil {
		return nil, err
	}

	return &et, nil
}

// List retrieves all equipment types ordered by name
func (r *EquipmentTypeRepository) List(ctx context.Context) ([]*domain.EquipmentType, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM equipment_types
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*domain.EquipmentType
	for rows.Next() {
		var et domain.EquipmentType
		if err := rows.Scan(&et.ID, &et.Name, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, &et)
	}

	return types, rows.Err()
}

// EquipmentRepository implements equipment persistence
type EquipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository creates a new equipment repository
func NewEquipmentRepository(pool *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{pool: pool}
}

// Create inserts a new equipment definition
func (r *EquipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `
		INSERT INTO equipment (id, name, type_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, eq.ID, eq.Name, eq.TypeID, eq.CreatedAt, eq.UpdatedAt)

	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}

	return err
}

// GetByID retrieves equipment by ID, including its type name
func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	query := `
		SELECT e.id, e.name, e.type_id, t.name, e.created_at, e.updated_at
		FROM equipment e
		JOIN equipment_types t ON t.id = e.type_id
		WHERE e.id = $1
	`

	return r.scanEquipment(r.pool.QueryRow(ctx, query, id))
}

// GetByName retrieves equipment by exact name
func (r *EquipmentRepository) GetByName(ctx context.Context, name string) (*domain.Equipment, error) {
	query := `
		SELECT e.id, e.name, e.type_id, t.name, e.created_at, e.updated_at
		FROM equipment e
		JOIN equipment_types t ON t.id = e.type_id
		WHERE e.name = $1
	`

	return r.scanEquipment(r.pool.QueryRow(ctx, query, name))
}

// List retrieves all equipment ordered by name
func (r *EquipmentRepository) List(ctx context.Context) ([]*domain.Equipment, error) {
	query := `
		SELECT e.id, e.name, e.type_id, t.name, e.created_at, e.updated_at
		FROM equipment e
		JOIN equipment_types t ON t.id = e.type_id
		ORDER BY e.name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var equipment []*domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.TypeID, &eq.TypeName, &eq.CreatedAt, &eq.UpdatedAt); err != nil {
			return nil, err
		}
		equipment = append(equipment, &eq)
	}

	return equipment, rows.Err()
}

func (r *EquipmentRepository) scanEquipment(row pgx.Row) (*domain.Equipment, error) {
	var eq domain.Equipment
	err := row.Scan(&eq.ID, &eq.Name, &eq.TypeID, &eq.TypeName, &eq.CreatedAt, &eq.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &eq, nil
}
