package errors

import (
	"fmt"
)

// ErrorType is the category an AppError falls into. The value doubles as its log label.
type ErrorType string

const (
	// ErrorTypeValidation: a required task log field is missing or blank
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConstraint: a value lies outside its enumeration, range or format
	ErrorTypeConstraint ErrorType = "constraint"
	ErrorTypeNotFound   ErrorType = "not_found"
	// ErrorTypeDatabase: the store failed for reasons the caller cannot fix
	ErrorTypeDatabase     ErrorType = "database"
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypeTimeout      ErrorType = "timeout"
)

var errorCodes = map[ErrorType]string{
	ErrorTypeValidation:   "VALIDATION_FAILED",
	ErrorTypeConstraint:   "CONSTRAINT_VIOLATION",
	ErrorTypeNotFound:     "NOT_FOUND",
	ErrorTypeDatabase:     "DATABASE_ERROR",
	ErrorTypeInvalidInput: "INVALID_INPUT",
	ErrorTypeTimeout:      "TIMEOUT",
}

// String returns the label of a known type and "unknown" otherwise
func (et ErrorType) String() string {
	if _, ok := errorCodes[et]; ok {
		return string(et)
	}
	return "unknown"
}

// Code returns the machine readable code reported to clients
func (et ErrorType) Code() string {
	if code, ok := errorCodes[et]; ok {
		return code
	}
	return "UNKNOWN_ERROR"
}

// AppError is the single error shape crossing the store, service and API layers
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, ignoring message and cause
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext attaches a key/value pair and returns e for chaining
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}

// Field returns the task log field the error refers to, or "" when none was recorded
func (e *AppError) Field() string {
	if v, ok := e.GetContext("field"); ok {
		if field, ok := v.(string); ok {
			return field
		}
	}
	return ""
}
