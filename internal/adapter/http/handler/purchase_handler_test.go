package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/armory/internal/adapter/http/middleware"
	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/auth"
	"github.com/iho/armory/internal/usecase"
)

type purchaseServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreatePurchaseInput) (*domain.Purchase, error)
	listFn   func(ctx context.Context, input usecase.ListPurchasesInput) ([]*domain.Purchase, error)
}

func (s *purchaseServiceStub) CreatePurchase(ctx context.Context, input usecase.CreatePurchaseInput) (*domain.Purchase, error) {
	return s.createFn(ctx, input)
}

func (s *purchaseServiceStub) ListPurchases(ctx context.Context, input usecase.ListPurchasesInput) ([]*domain.Purchase, error) {
	return s.listFn(ctx, input)
}

func TestPurchaseHandler_Create_AttributesAuthenticatedUser(t *testing.T) {
	var captured usecase.CreatePurchaseInput
	handler := NewPurchaseHandler(&purchaseServiceStub{
		createFn: func(ctx context.Context, input usecase.CreatePurchaseInput) (*domain.Purchase, error) {
			captured = input
			return &domain.Purchase{ID: "pur-1", Quantity: input.Quantity}, nil
		},
	})

	body, _ := json.Marshal(map[string]any{
		"base_id":      "base-1",
		"equipment_id": "eq-1",
		"quantity":     10,
		"price":        "1500.00",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/purchases", bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, &auth.Claims{
		UserID: "user-1",
		Role:   domain.RoleLogisticsOfficer,
		BaseID: "base-1",
	})
	rec := httptest.NewRecorder()

	handler.Create(rec, req.WithContext(ctx))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.CreatedBy != "user-1" {
		t.Fatalf("expected purchase attributed to user-1, got %q", captured.CreatedBy)
	}
	if !captured.Price.Equal(decimal.RequireFromString("1500.00")) {
		t.Fatalf("expected price 1500.00, got %s", captured.Price)
	}
}

func TestPurchaseHandler_Create_UnknownBase(t *testing.T) {
	handler := NewPurchaseHandler(&purchaseServiceStub{
		createFn: func(ctx context.Context, input usecase.CreatePurchaseInput) (*domain.Purchase, error) {
			return nil, domain.ErrBaseNotFound
		},
	})

	body, _ := json.Marshal(map[string]any{"base_id": "nope", "equipment_id": "eq-1", "quantity": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/purchases", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPurchaseHandler_List_ScopesBaseForCommander(t *testing.T) {
	var captured usecase.ListPurchasesInput
	handler := NewPurchaseHandler(&purchaseServiceStub{
		listFn: func(ctx context.Context, input usecase.ListPurchasesInput) ([]*domain.Purchase, error) {
			captured = input
			return []*domain.Purchase{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/purchases?base_id=base-9", nil)
	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, &auth.Claims{
		UserID: "user-1",
		Role:   domain.RoleBaseCommander,
		BaseID: "base-1",
	})
	rec := httptest.NewRecorder()

	handler.List(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.BaseID != "base-1" {
		t.Fatalf("expected commander scoped to base-1, got %q", captured.BaseID)
	}
}

func TestPurchaseHandler_List_AdminKeepsRequestedFilter(t *testing.T) {
	var captured usecase.ListPurchasesInput
	handler := NewPurchaseHandler(&purchaseServiceStub{
		listFn: func(ctx context.Context, input usecase.ListPurchasesInput) ([]*domain.Purchase, error) {
			captured = input
			return []*domain.Purchase{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/purchases?base_id=base-9&equipment_type_id=type-1", nil)
	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, &auth.Claims{
		UserID: "admin-1",
		Role:   domain.RoleAdmin,
	})
	rec := httptest.NewRecorder()

	handler.List(rec, req.WithContext(ctx))

	if captured.BaseID != "base-9" || captured.EquipmentTypeID != "type-1" {
		t.Fatalf("expected admin filters to pass through, got %+v", captured)
	}
}

func TestPurchaseHandler_List_MineFiltersByAuthenticatedUser(t *testing.T) {
	var captured usecase.ListPurchasesInput
	handler := NewPurchaseHandler(&purchaseServiceStub{
		listFn: func(ctx context.Context, input usecase.ListPurchasesInput) ([]*domain.Purchase, error) {
			captured = input
			return []*domain.Purchase{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/purchases?mine=true&created_by=someone-else", nil)
	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, &auth.Claims{
		UserID: "user-7",
		Role:   domain.RoleLogisticsOfficer,
		BaseID: "base-1",
	})
	rec := httptest.NewRecorder()

	handler.List(rec, req.WithContext(ctx))

	if captured.CreatedBy != "user-7" {
		t.Fatalf("expected mine to pin created_by to user-7, got %q", captured.CreatedBy)
	}
}
