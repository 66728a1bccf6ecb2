package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"Constraint", ErrorTypeConstraint, "constraint"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Database", ErrorTypeDatabase, "database"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Timeout", ErrorTypeTimeout, "timeout"},
		{"Unknown", ErrorType("quota"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.errorType.String()
			if result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "Error without cause",
			appError: &AppError{
				Type:    ErrorTypeConstraint,
				Message: "minutes out of range",
			},
			expected: "constraint: minutes out of range",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeDatabase,
				Message: "insert failed",
				Cause:   errors.New("disk I/O error"),
			},
			expected: "database: insert failed (caused by: disk I/O error)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appError := &AppError{
		Type:    ErrorTypeDatabase,
		Message: "wrapped error",
		Cause:   cause,
	}

	if appError.Unwrap() != cause {
		t.Errorf("AppError.Unwrap() = %v, want %v", appError.Unwrap(), cause)
	}
	if !errors.Is(appError, cause) {
		t.Errorf("errors.Is should find the cause through Unwrap")
	}
}

func TestAppError_Is(t *testing.T) {
	validation1 := &AppError{Type: ErrorTypeValidation, Code: "VALIDATION_FAILED"}
	validation2 := &AppError{Type: ErrorTypeValidation, Code: "VALIDATION_FAILED"}
	constraint := &AppError{Type: ErrorTypeConstraint, Code: "CONSTRAINT_VIOLATION"}
	regularError := errors.New("regular error")

	tests := []struct {
		name     string
		err      *AppError
		target   error
		expected bool
	}{
		{"Same type and code", validation1, validation2, true},
		{"Different type", validation1, constraint, false},
		{"Regular error", validation1, regularError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Is(tt.target)
			if result != tt.expected {
				t.Errorf("AppError.Is() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_IsType(t *testing.T) {
	appError := &AppError{Type: ErrorTypeConstraint}

	if !appError.IsType(ErrorTypeConstraint) {
		t.Errorf("AppError.IsType() = false, want true for matching type")
	}
	if appError.IsType(ErrorTypeValidation) {
		t.Errorf("AppError.IsType() = true, want false for different type")
	}
}

func TestAppError_Context(t *testing.T) {
	appError := &AppError{Type: ErrorTypeConstraint}

	result := appError.WithContext("field", "minutes")
	if result != appError {
		t.Errorf("WithContext should return the same instance")
	}

	value, exists := appError.GetContext("field")
	if !exists || value != "minutes" {
		t.Errorf("GetContext should return the value added with WithContext")
	}

	if _, exists := appError.GetContext("nonexistent"); exists {
		t.Errorf("GetContext should return false for non-existing key")
	}

	appError.Context = nil
	if _, exists := appError.GetContext("field"); exists {
		t.Errorf("GetContext should return false when context is nil")
	}
}

func TestErrorType_Code(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "VALIDATION_FAILED"},
		{ErrorTypeConstraint, "CONSTRAINT_VIOLATION"},
		{ErrorTypeNotFound, "NOT_FOUND"},
		{ErrorTypeDatabase, "DATABASE_ERROR"},
		{ErrorTypeInvalidInput, "INVALID_INPUT"},
		{ErrorTypeTimeout, "TIMEOUT"},
		{ErrorType("quota"), "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		if got := tt.errorType.Code(); got != tt.expected {
			t.Errorf("ErrorType(%q).Code() = %v, want %v", string(tt.errorType), got, tt.expected)
		}
	}
}

func TestAppError_Field(t *testing.T) {
	err := NewConstraintError("minutes violates a storage constraint", nil)
	if got := err.Field(); got != "" {
		t.Errorf("Field() without context = %q, want empty", got)
	}

	err.WithContext("field", "minutes")
	if got := err.Field(); got != "minutes" {
		t.Errorf("Field() = %q, want minutes", got)
	}

	err.WithContext("field", 42)
	if got := err.Field(); got != "" {
		t.Errorf("Field() with non-string context = %q, want empty", got)
	}
}
