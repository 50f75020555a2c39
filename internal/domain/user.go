package domain

import (
	"errors"
	"time"
)

// User represents a system user tied to a role and, except for admins, a base.
type User struct {
	ID             string
	Username       string
	HashedPassword string
	Role           Role
	BaseID         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level.
//
// The role names are the canonical normalized forms; the casing variants that
// existed historically ("Admin", "baseCommander") are not accepted.
type Role string

const (
	// RoleAdmin has full access including reference-data management.
	RoleAdmin Role = "admin"

	// RoleBaseCommander manages assets of their own base, including
	// assignments, expenditures and opening balances.
	RoleBaseCommander Role = "base_commander"

	// RoleLogisticsOfficer records purchases and transfers and views balances.
	RoleLogisticsOfficer Role = "logistics_officer"
)

var validRoles = map[Role]bool{
	RoleAdmin:            true,
	RoleBaseCommander:    true,
	RoleLogisticsOfficer: true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// RequiresBase reports whether users with this role must belong to a base.
func (r Role) RequiresBase() bool {
	return r != RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInsufficientRole   = errors.New("insufficient role for this operation")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already exists")
)
