package cli

import (
	"errors"
	"fmt"
	"testing"

	apperrors "task-logger/internal/errors"
	"task-logger/internal/validation"
)

func requiredTaskError() error {
	ve := validation.NewValidationError()
	ve.AddRequiredError("task")
	return apperrors.NewValidationError("All fields are required", ve)
}

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error with field detail",
			operation: "create task log",
			err:       requiredTaskError(),
			expected:  "failed to create task log: task is required",
		},
		{
			name:      "Not found error",
			operation: "get task log",
			err:       apperrors.NewNotFoundError("task log", "123"),
			expected:  "failed to get task log: task log not found: 123",
		},
		{
			name:      "Database error",
			operation: "list task logs",
			err:       apperrors.NewDatabaseError("select", errors.New("disk I/O error")),
			expected:  "failed to list task logs: A database error occurred. Please try again.",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleNil(t *testing.T) {
	eh := NewErrorHandler()
	if err := eh.Handle("anything", nil); err != nil {
		t.Errorf("ErrorHandler.Handle(nil) = %v, want nil", err)
	}
	if err := eh.HandleSimple(nil); err != nil {
		t.Errorf("ErrorHandler.HandleSimple(nil) = %v, want nil", err)
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Invalid input error",
			err:      apperrors.NewInvalidInputError("id", "abc", "must be a positive integer"),
			expected: "invalid input for id: must be a positive integer",
		},
		{
			name:     "Not found error",
			err:      apperrors.NewNotFoundError("task log", "123"),
			expected: "task log not found: 123",
		},
		{
			name:     "Timeout error",
			err:      apperrors.NewTimeoutError("select", nil),
			expected: "The operation timed out. Please try again.",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.HandleSimple(tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.HandleSimple() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_ExitCode(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "No error", err: nil, expected: ExitOK},
		{name: "Validation error", err: requiredTaskError(), expected: ExitBadRequest},
		{name: "Constraint error", err: apperrors.NewConstraintError("bad team", nil), expected: ExitBadRequest},
		{name: "Invalid input", err: apperrors.NewInvalidInputError("id", "x", "bad"), expected: ExitBadRequest},
		{name: "Not found", err: apperrors.NewNotFoundError("task log", "9"), expected: ExitNotFound},
		{name: "Wrapped not found", err: fmt.Errorf("get: %w", apperrors.NewNotFoundError("task log", "9")), expected: ExitNotFound},
		{name: "Database error", err: apperrors.NewDatabaseError("insert", nil), expected: ExitFailure},
		{name: "Regular error", err: errors.New("boom"), expected: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eh.ExitCode(tt.err); got != tt.expected {
				t.Errorf("ErrorHandler.ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	if !eh.IsClientError(requiredTaskError()) {
		t.Error("validation error should be a client error")
	}
	if eh.IsClientError(errors.New("boom")) {
		t.Error("plain error should not be a client error")
	}
	if !eh.IsDatabaseError(apperrors.NewTimeoutError("select", nil)) {
		t.Error("timeout should count as a database error")
	}
	if eh.IsDatabaseError(apperrors.NewNotFoundError("task log", "1")) {
		t.Error("not found should not count as a database error")
	}
	if code := eh.GetErrorCode(apperrors.NewNotFoundError("task log", "1")); code != "NOT_FOUND" {
		t.Errorf("GetErrorCode() = %q, want NOT_FOUND", code)
	}
}
