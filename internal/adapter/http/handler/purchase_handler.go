package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/armory/internal/adapter/http/dto"
	"github.com/iho/armory/internal/adapter/http/middleware"
	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// PurchaseService defines the behavior needed by PurchaseHandler.
type PurchaseService interface {
	CreatePurchase(ctx context.Context, input usecase.CreatePurchaseInput) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, input usecase.ListPurchasesInput) ([]*domain.Purchase, error)
}

// PurchaseHandler handles purchase-related HTTP requests.
type PurchaseHandler struct {
	purchaseUC PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseUC PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseUC: purchaseUC}
}

// Create records a purchase.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var createdBy string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		createdBy = claims.UserID
	}

	purchase, err := h.purchaseUC.CreatePurchase(r.Context(), req.ToUseCaseInput(createdBy))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create purchase", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PurchaseFromDomain(purchase))
}

// List lists purchases.
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	start, err := parseTimeQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	}
	end, err := parseTimeQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	}

	createdBy := r.URL.Query().Get("created_by")
	if r.URL.Query().Get("mine") == "true" {
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			createdBy = claims.UserID
		}
	}

	purchases, err := h.purchaseUC.ListPurchases(r.Context(), usecase.ListPurchasesInput{
		BaseID:          scopedBaseID(r, r.URL.Query().Get("base_id")),
		EquipmentID:     r.URL.Query().Get("equipment_id"),
		EquipmentTypeID: r.URL.Query().Get("equipment_type_id"),
		CreatedBy:       createdBy,
		PeriodStart:     start,
		PeriodEnd:       end,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list purchases", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchasesFromDomain(purchases))
}
