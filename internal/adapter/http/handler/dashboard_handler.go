package handler

import (
	"context"
	"net/http"

	"github.com/iho/armory/internal/adapter/http/dto"
	"github.com/iho/armory/internal/usecase"
)

// DashboardService defines the behavior needed by DashboardHandler.
type DashboardService interface {
	Metrics(ctx context.Context, input usecase.MetricsInput) (*usecase.DashboardMetrics, error)
	GetDetailedMovement(ctx context.Context, input usecase.DetailedMovementInput) (*usecase.DetailedMovement, error)
}

// DashboardHandler handles dashboard HTTP requests.
type DashboardHandler struct {
	dashboardUC DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// Metrics returns aggregated movement metrics.
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
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

	metrics, err := h.dashboardUC.Metrics(r.Context(), usecase.MetricsInput{
		BaseID:      scopedBaseID(r, r.URL.Query().Get("base_id")),
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute metrics", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// DetailedMovement returns per-ledger listings for drill-down display.
func (h *DashboardHandler) DetailedMovement(w http.ResponseWriter, r *http.Request) {
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

	movement, err := h.dashboardUC.GetDetailedMovement(r.Context(), usecase.DetailedMovementInput{
		BaseID:      scopedBaseID(r, r.URL.Query().Get("base_id")),
		EquipmentID: r.URL.Query().Get("equipment_id"),
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute detailed movement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DetailedMovementFromUseCase(movement))
}
