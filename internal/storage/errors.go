package storage

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/rpggio/deepwork/internal/repository"
)

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "database is closed") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "unable to open database file")
}

func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "NOT NULL constraint failed") ||
		strings.Contains(msg, "violates not-null constraint") ||
		strings.Contains(msg, "CHECK constraint failed")
}

// classify wraps err with the matching repository sentinel.
func classify(op string, err error) error {
	switch {
	case isConnectionError(err):
		return fmt.Errorf("%s: %w: %w", op, repository.ErrUnavailable, err)
	case isConstraintViolation(err):
		return fmt.Errorf("%s: %w: %w", op, repository.ErrConstraint, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
