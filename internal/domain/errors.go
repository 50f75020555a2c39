package domain

import "errors"

var (
	// Reference data errors
	ErrBaseNotFound          = errors.New("base not found")
	ErrEquipmentNotFound     = errors.New("equipment not found")
	ErrEquipmentTypeNotFound = errors.New("equipment type not found")
	ErrRoleNotFound          = errors.New("role not found")
	ErrDuplicateName         = errors.New("name already exists")

	// Ledger errors
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrMissingAssignee  = errors.New("assigned_to is required")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrTransferNotFound = errors.New("transfer not found")

	// Balance errors
	ErrBalanceNotFound  = errors.New("balance not found")
	ErrOutOfOrderPeriod = errors.New("balance date precedes an existing snapshot for this base and equipment")
)
