package usecase

import (
	"context"
	"time"

	"github.com/iho/armory/internal/domain"
)

// InventoryUseCase manages the reference data that ledgers point at: bases,
// equipment types and equipment definitions.
type InventoryUseCase struct {
	baseRepo          BaseRepository
	equipmentRepo     EquipmentRepository
	equipmentTypeRepo EquipmentTypeRepository
	idGen             IDGenerator
}

// NewInventoryUseCase creates a new InventoryUseCase.
func NewInventoryUseCase(
	baseRepo BaseRepository,
	equipmentRepo EquipmentRepository,
	equipmentTypeRepo EquipmentTypeRepository,
	idGen IDGenerator,
) *InventoryUseCase {
	return &InventoryUseCase{
		baseRepo:          baseRepo,
		equipmentRepo:     equipmentRepo,
		equipmentTypeRepo: equipmentTypeRepo,
		idGen:             idGen,
	}
}

// CreateBase registers a new base under the given display name.
func (uc *InventoryUseCase) CreateBase(ctx context.Context, name string) (*domain.Base, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	base := &domain.Base{
		ID:        uc.idGen.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.baseRepo.Create(ctx, base); err != nil {
		return nil, err
	}

	return base, nil
}

// GetBase fetches a base by id.
func (uc *InventoryUseCase) GetBase(ctx context.Context, id string) (*domain.Base, error) {
	return uc.baseRepo.GetByID(ctx, id)
}

// ListBases lists every base, ordered by name.
func (uc *InventoryUseCase) ListBases(ctx context.Context) ([]*domain.Base, error) {
	return uc.baseRepo.List(ctx)
}

// CreateEquipmentType registers a new equipment category.
func (uc *InventoryUseCase) CreateEquipmentType(ctx context.Context, name string) (*domain.EquipmentType, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	et := &domain.EquipmentType{
		ID:        uc.idGen.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.equipmentTypeRepo.Create(ctx, et); err != nil {
		return nil, err
	}

	return et, nil
}

// ListEquipmentTypes lists every equipment category, ordered by name.
func (uc *InventoryUseCase) ListEquipmentTypes(ctx context.Context) ([]*domain.EquipmentType, error) {
	return uc.equipmentTypeRepo.List(ctx)
}

// CreateEquipmentInput represents input for registering equipment.
type CreateEquipmentInput struct {
	Name   string
	TypeID string
}

// CreateEquipment registers a new equipment definition under an existing
// type.
func (uc *InventoryUseCase) CreateEquipment(ctx context.Context, input CreateEquipmentInput) (*domain.Equipment, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	et, err := uc.equipmentTypeRepo.GetByID(ctx, input.TypeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	equipment := &domain.Equipment{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		TypeID:    et.ID,
		TypeName:  et.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.equipmentRepo.Create(ctx, equipment); err != nil {
		return nil, err
	}

	return equipment, nil
}

// GetEquipment fetches an equipment definition by id.
func (uc *InventoryUseCase) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	return uc.equipmentRepo.GetByID(ctx, id)
}

// ListEquipment lists every equipment definition, ordered by name.
func (uc *InventoryUseCase) ListEquipment(ctx context.Context) ([]*domain.Equipment, error) {
	return uc.equipmentRepo.List(ctx)
}

// ListRoles returns the fixed set of assignable roles.
func (uc *InventoryUseCase) ListRoles(ctx context.Context) []domain.Role {
	return []domain.Role{
		domain.RoleAdmin,
		domain.RoleBaseCommander,
		domain.RoleLogisticsOfficer,
	}
}
