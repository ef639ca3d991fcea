// Package services implements the business logic between handlers and
// repositories.
package services

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("user already exists")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrExpired           = errors.New("expired")
	ErrUnauthorized      = errors.New("unauthorized")
	// ErrUpstreamUnavailable covers the delivery and text-generation collaborators.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// WeakPasswordError carries the policy suggestion list back to the caller.
type WeakPasswordError struct {
	Suggestions []string
}

func (e *WeakPasswordError) Error() string {
	return "weak password"
}

// ValidationError signals missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
