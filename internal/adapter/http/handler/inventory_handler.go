package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/armory/internal/adapter/http/dto"
	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// InventoryService defines the behavior needed by InventoryHandler.
type InventoryService interface {
	CreateBase(ctx context.Context, name string) (*domain.Base, error)
	ListBases(ctx context.Context) ([]*domain.Base, error)
	CreateEquipmentType(ctx context.Context, name string) (*domain.EquipmentType, error)
	ListEquipmentTypes(ctx context.Context) ([]*domain.EquipmentType, error)
	CreateEquipment(ctx context.Context, input usecase.CreateEquipmentInput) (*domain.Equipment, error)
	ListEquipment(ctx context.Context) ([]*domain.Equipment, error)
	ListRoles(ctx context.Context) []domain.Role
}

// InventoryHandler handles reference-data HTTP requests.
type InventoryHandler struct {
	inventoryUC InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryUC InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryUC: inventoryUC}
}

// CreateBase registers a new base.
func (h *InventoryHandler) CreateBase(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	base, err := h.inventoryUC.CreateBase(r.Context(), req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create base", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BaseFromDomain(base))
}

// ListBases lists all bases.
func (h *InventoryHandler) ListBases(w http.ResponseWriter, r *http.Request) {
	bases, err := h.inventoryUC.ListBases(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list bases", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BasesFromDomain(bases))
}

// CreateEquipmentType registers a new equipment type.
func (h *InventoryHandler) CreateEquipmentType(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEquipmentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	et, err := h.inventoryUC.CreateEquipmentType(r.Context(), req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create equipment type", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EquipmentTypeFromDomain(et))
}

// ListEquipmentTypes lists all equipment types.
func (h *InventoryHandler) ListEquipmentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.inventoryUC.ListEquipmentTypes(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list equipment types", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EquipmentTypesFromDomain(types))
}

// CreateEquipment registers a new equipment definition.
func (h *InventoryHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	eq, err := h.inventoryUC.CreateEquipment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create equipment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EquipmentFromDomain(eq))
}

// ListEquipment lists all equipment definitions.
func (h *InventoryHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.inventoryUC.ListEquipment(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list equipment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EquipmentListFromDomain(equipment))
}

// ListRoles lists the assignable roles.
func (h *InventoryHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.RolesFromDomain(h.inventoryUC.ListRoles(r.Context())))
}
