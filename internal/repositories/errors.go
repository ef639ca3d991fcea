// Package repositories implements the persistence layer over Postgres.
package repositories

import "errors"

// Sentinel values shared across repositories so the service layer can
// distinguish failure scenarios without inspecting driver errors.
var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned on a unique-constraint violation
	// for users.email.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrAlreadyUsed is returned when a conditional "mark used" update
	// matched no row, meaning a concurrent confirm won the race.
	ErrAlreadyUsed = errors.New("reset record already used")
)
