package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"task-logger/internal/config"
	"task-logger/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length in characters is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTextLength checks free text such as task and client against the configured limit.
// Without a limit any length is accepted; blank text is caught by ValidateRequired.
func (v *Validator) IsValidTextLength(s string) bool {
	max := v.getTextMaxLength()
	if max <= 0 {
		return true
	}
	return v.IsValidStringLength(s, 0, max)
}

// IsValidDate checks for a real calendar date in YYYY-MM-DD form
func (v *Validator) IsValidDate(s string) bool {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(domain.DateLayout) == s
}

// IsValidDateRange checks that end is not before start. Unparseable dates are
// reported by IsValidDate, not here.
func (v *Validator) IsValidDateRange(start, end string) bool {
	s, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return true
	}
	e, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return true
	}
	return !e.Before(s)
}

// IsValidHours checks hours are non-negative and small enough that the
// entry's total minutes fit in an int64
func (v *Validator) IsValidHours(hours int) bool {
	return hours >= 0 && int64(hours) <= domain.MaxHours
}

// IsValidMinutes checks minutes fall in [0, 60). Overflow is not carried into hours.
func (v *Validator) IsValidMinutes(minutes int) bool {
	return minutes >= 0 && minutes < 60
}

// IsValidTaskLogID checks if a task log ID is valid (positive)
func (v *Validator) IsValidTaskLogID(id int64) bool {
	return id > 0
}

// IsValidTeam checks membership in the closed set of teams
func (v *Validator) IsValidTeam(team string) bool {
	return domain.Team(team).IsValid()
}

// IsValidStatus checks membership in the closed set of statuses
func (v *Validator) IsValidStatus(status string) bool {
	return domain.Status(status).IsValid()
}

// IsRegisteredUser checks the name against the configured users
func (v *Validator) IsRegisteredUser(name string) bool {
	for _, u := range v.Users() {
		if u == name {
			return true
		}
	}
	return false
}

// Users returns the configured user names
func (v *Validator) Users() []string {
	if v.config != nil && len(v.config.Validation.Users) > 0 {
		return v.config.Validation.Users
	}
	return config.DefaultUsers()
}

// EnforceDateOrder reports whether end_date before start_date is rejected
func (v *Validator) EnforceDateOrder() bool {
	if v.config != nil {
		return v.config.Validation.EnforceDateOrder
	}
	return false
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getTextMaxLength returns the configured maximum text length, 0 when unlimited
func (v *Validator) getTextMaxLength() int {
	if v.config != nil && v.config.Validation.TextMaxLength > 0 {
		return v.config.Validation.TextMaxLength
	}
	return 0
}
