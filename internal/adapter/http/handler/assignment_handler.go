package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/armory/internal/adapter/http/dto"
	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/usecase"
)

// AssignmentService defines the behavior needed by AssignmentHandler.
type AssignmentService interface {
	CreateAssignment(ctx context.Context, input usecase.CreateAssignmentInput) (*domain.Assignment, error)
	CreateExpenditure(ctx context.Context, input usecase.CreateExpenditureInput) (*domain.Expenditure, error)
	ListMovements(ctx context.Context, input usecase.ListMovementsInput) (*usecase.Movements, error)
}

// AssignmentHandler handles assignment and expenditure HTTP requests.
type AssignmentHandler struct {
	assignmentUC AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentUC AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentUC: assignmentUC}
}

// Assign records equipment assigned to personnel.
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	assignment, err := h.assignmentUC.CreateAssignment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create assignment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AssignmentFromDomain(assignment))
}

// Expend records consumed or destroyed equipment.
func (h *AssignmentHandler) Expend(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenditureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expenditure, err := h.assignmentUC.CreateExpenditure(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create expenditure", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenditureFromDomain(expenditure))
}

// List lists assignments and expenditures together.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
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

	movements, err := h.assignmentUC.ListMovements(r.Context(), usecase.ListMovementsInput{
		BaseID:      scopedBaseID(r, r.URL.Query().Get("base_id")),
		EquipmentID: r.URL.Query().Get("equipment_id"),
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromUseCase(movements))
}
