package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/deepwork/internal/domain/session"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, session.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Provide non-blank name, buddy and task"}
	case errors.Is(err, session.ErrConnection):
		return &APIError{Code: "DATABASE_UNAVAILABLE", Message: "database unavailable", RecoveryHint: "Check the database and try again"}
	case errors.Is(err, session.ErrWrite):
		return &APIError{Code: "WRITE_FAILED", Message: "failed to save session"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
