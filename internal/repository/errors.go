package repository

import "errors"

var (
	// ErrUnavailable is returned when the database cannot be reached
	ErrUnavailable = errors.New("database unavailable")

	// ErrConstraint is returned when a NOT NULL or CHECK constraint fails
	ErrConstraint = errors.New("constraint violation")
)
