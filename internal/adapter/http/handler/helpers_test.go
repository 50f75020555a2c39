package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/armory/internal/adapter/http/middleware"
	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/auth"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrBaseNotFound, http.StatusBadRequest},
		{domain.ErrEquipmentNotFound, http.StatusBadRequest},
		{domain.ErrInvalidQuantity, http.StatusBadRequest},
		{domain.ErrInvalidDateRange, http.StatusBadRequest},
		{domain.ErrOutOfOrderPeriod, http.StatusConflict},
		{domain.ErrDuplicateName, http.StatusConflict},
		{domain.ErrDuplicateUsername, http.StatusConflict},
		{domain.ErrBalanceNotFound, http.StatusNotFound},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInsufficientRole, http.StatusForbidden},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestParseTimeQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?start_date=2024-03-01", nil)
	got, err := parseTimeQuery(req, "start_date")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 2024-03-01, got %v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	got, err = parseTimeQuery(req, "start_date")
	if err != nil || got != nil {
		t.Fatalf("expected nil for absent parameter, got %v, %v", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/?start_date=bogus", nil)
	if _, err = parseTimeQuery(req, "start_date"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestScopedBaseID(t *testing.T) {
	withClaims := func(r *http.Request, claims *auth.Claims) *http.Request {
		ctx := context.WithValue(r.Context(), middleware.ClaimsContextKey, claims)
		return r.WithContext(ctx)
	}

	// Admins may query any base.
	req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), &auth.Claims{Role: domain.RoleAdmin})
	if got := scopedBaseID(req, "base-2"); got != "base-2" {
		t.Fatalf("expected admin to keep requested base, got %q", got)
	}

	// Base-bound users are pinned to their own base.
	req = withClaims(httptest.NewRequest(http.MethodGet, "/", nil), &auth.Claims{
		Role:   domain.RoleBaseCommander,
		BaseID: "base-1",
	})
	if got := scopedBaseID(req, "base-2"); got != "base-1" {
		t.Fatalf("expected commander pinned to own base, got %q", got)
	}

	// No claims in context: pass through.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := scopedBaseID(req, "base-3"); got != "base-3" {
		t.Fatalf("expected passthrough without claims, got %q", got)
	}
}
