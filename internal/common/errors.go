// Package common defines sentinel errors and small helpers shared by the
// storage, service and HTTP layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Uniqueness violations reported by the account directory.
	ErrEmailExists = errors.New("email already exists")
	ErrPhoneExists = errors.New("phone already exists")

	// Client input errors.
	ErrMissingFields = errors.New("missing fields")
	ErrInvalidPlan   = errors.New("invalid plan")
	ErrInvalidRating = errors.New("invalid rating")

	// Auth errors. ErrInvalidCredentials never tells an unknown login apart
	// from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Session lifecycle errors.
	ErrSessionExpired = errors.New("session expired")
)
