package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/armory/internal/adapter/http/dto"
	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	CalculateBalance(ctx context.Context, input usecase.CalculateBalanceInput) (*domain.Balance, error)
	BalanceSummary(ctx context.Context, input usecase.BalanceSummaryInput) ([]*domain.Balance, domain.BalanceTotals, error)
	SetOpeningBalance(ctx context.Context, input usecase.SetOpeningBalanceInput) (*domain.Balance, error)
	Debug(ctx context.Context, baseID, equipmentID string) (*usecase.DebugResult, error)
}

// BalanceHandler handles balance-related HTTP requests.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// Calculate computes and upserts a balance snapshot.
func (h *BalanceHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.BaseID == "" || req.EquipmentID == "" {
		writeError(w, http.StatusBadRequest, "base_id and equipment_id are required", "")
		return
	}

	balance, err := h.balanceUC.CalculateBalance(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to calculate balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// Summary lists balance snapshots with a totals rollup.
func (h *BalanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
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

	balances, totals, err := h.balanceUC.BalanceSummary(r.Context(), usecase.BalanceSummaryInput{
		BaseID:      scopedBaseID(r, r.URL.Query().Get("base_id")),
		EquipmentID: r.URL.Query().Get("equipment_id"),
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to summarize balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSummaryFromDomain(balances, totals))
}

// SetOpening upserts an explicit opening balance.
func (h *BalanceHandler) SetOpening(w http.ResponseWriter, r *http.Request) {
	var req dto.SetOpeningBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.BaseID == "" || req.EquipmentID == "" {
		writeError(w, http.StatusBadRequest, "base_id and equipment_id are required", "")
		return
	}

	balance, err := h.balanceUC.SetOpeningBalance(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set opening balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// Debug reports whether the given base and equipment ids resolve.
func (h *BalanceHandler) Debug(w http.ResponseWriter, r *http.Request) {
	result, err := h.balanceUC.Debug(r.Context(),
		r.URL.Query().Get("base_id"),
		r.URL.Query().Get("equipment_id"),
	)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve references", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DebugFromUseCase(result))
}
