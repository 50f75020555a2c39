package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/iho/armory/internal/adapter/http/dto"
	"github.com/iho/armory/internal/adapter/http/middleware"
	"github.com/iho/armory/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
//
// Unresolvable base/equipment/type references surface as 400 rather than 404:
// on this API they only ever appear as foreign keys inside a request, so a
// miss means the request itself is malformed.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrBaseNotFound),
		errors.Is(err, domain.ErrEquipmentNotFound),
		errors.Is(err, domain.ErrEquipmentTypeNotFound),
		errors.Is(err, domain.ErrRoleNotFound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrMissingAssignee),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrPasswordTooWeak):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOutOfOrderPeriod),
		errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBalanceNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// parseTimeQuery parses an optional date query parameter. Both RFC 3339
// timestamps and plain YYYY-MM-DD values are accepted.
func parseTimeQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}

	t, err := dto.ParseFlexibleTime(val)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// scopedBaseID resolves the effective base filter for the request. Users
// tied to a base always see their own base regardless of the requested
// filter; admins may query any base.
func scopedBaseID(r *http.Request, requested string) string {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return requested
	}

	if claims.Role != domain.RoleAdmin && claims.BaseID != "" {
		return claims.BaseID
	}

	return requested
}
