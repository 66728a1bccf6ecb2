package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorType classifies a single field failure
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidFormat ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
	ErrorTypeInvalidRange  ValidationErrorType = "invalid_range"
	ErrorTypeInvalidEnum   ValidationErrorType = "invalid_enum"
)

// FieldError says why one task log field was rejected. It is what the HTTP layer reports as "details".
type FieldError struct {
	Field   string              `json:"field"`
	Type    ValidationErrorType `json:"type"`
	Message string              `json:"message"`
	Value   interface{}         `json:"value,omitempty"`
}

func (fe FieldError) Error() string {
	return fe.Message
}

// ValidationError collects every field failure found in one request, in check order
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates an empty collector
func NewValidationError() *ValidationError {
	return &ValidationError{
		Errors: make([]FieldError, 0),
	}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	return fmt.Sprintf("%d validation errors: %s", len(ve.Errors), strings.Join(ve.messages(), "; "))
}

// IsValidationError checks if an error is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	_, ok := AsValidationError(err)
	return ok
}

// AsValidationError extracts the field errors carried anywhere in err's chain
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Fields lists each rejected field once, in the order first reported
func (ve *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(ve.Errors))
	var fields []string
	for _, fe := range ve.Errors {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

// ForField returns the failures reported against one field
func (ve *ValidationError) ForField(field string) []FieldError {
	var fieldErrors []FieldError
	for _, fe := range ve.Errors {
		if fe.Field == field {
			fieldErrors = append(fieldErrors, fe)
		}
	}
	return fieldErrors
}

// AddError records a failure; message is used verbatim
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    errorType,
		Message: message,
		Value:   value,
	})
}

func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, fmt.Sprintf("%s is required", field), nil)
}

// AddInvalidFormatError reports a value that does not parse, e.g. a date outside YYYY-MM-DD
func (ve *ValidationError) AddInvalidFormatError(field string, value interface{}, layout string) {
	ve.AddError(field, ErrorTypeInvalidFormat, fmt.Sprintf("%s must use the %s format", field, layout), value)
}

func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, min, max int) {
	message := fmt.Sprintf("%s must be between %d and %d characters long", field, min, max)
	if min <= 0 {
		message = fmt.Sprintf("%s must be at most %d characters long", field, max)
	}
	ve.AddError(field, ErrorTypeInvalidLength, message, value)
}

// AddInvalidRangeError reports a number or date outside its bounds; reason completes "<field> ..."
func (ve *ValidationError) AddInvalidRangeError(field string, value interface{}, reason string) {
	ve.AddError(field, ErrorTypeInvalidRange, fmt.Sprintf("%s %s", field, reason), value)
}

// AddInvalidEnumError reports a value outside a closed set such as the teams or registered users
func (ve *ValidationError) AddInvalidEnumError(field string, value interface{}, allowed []string) {
	message := fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", "))
	ve.AddError(field, ErrorTypeInvalidEnum, message, value)
}

// GetUserFriendlyMessage joins every failure into one line suitable for a CLI or JSON "error"
func (ve *ValidationError) GetUserFriendlyMessage() string {
	if len(ve.Errors) == 0 {
		return "Input validation failed"
	}
	return strings.Join(ve.messages(), "; ")
}

func (ve *ValidationError) messages() []string {
	messages := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		messages[i] = fe.Message
	}
	return messages
}
