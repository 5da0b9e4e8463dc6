package domain

import "errors"

// Validation failures surfaced as 400s at the boundary.
var (
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidTimeRange  = errors.New("start must precede end")
	ErrOverlapConflict   = errors.New("schedule entry overlaps an existing entry")
)

// Authentication and authorization failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrInsufficientRole   = errors.New("insufficient role")
	ErrNotOwner           = errors.New("not the resource owner")
	ErrAdminExists        = errors.New("an administrator already exists")
)

// Resource failures.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
	ErrEntryNotFound = errors.New("schedule entry not found")
)
