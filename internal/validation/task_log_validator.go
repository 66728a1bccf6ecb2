package validation

import (
	"fmt"

	"task-logger/internal/config"
	"task-logger/internal/domain"
	"task-logger/internal/errors"
)

// TaskLogValidator provides validation for TaskLog create and update requests
type TaskLogValidator struct {
	validator *Validator
}

// NewTaskLogValidator creates a new task log validator
func NewTaskLogValidator() *TaskLogValidator {
	return &TaskLogValidator{
		validator: NewValidator(),
	}
}

// NewTaskLogValidatorWithConfig creates a task log validator using configured rules
func NewTaskLogValidatorWithConfig(cfg *config.Config) *TaskLogValidator {
	return &TaskLogValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// Users returns the user names this validator accepts
func (tv *TaskLogValidator) Users() []string {
	return tv.validator.Users()
}

// ValidateRequired checks that all nine fields are present and that text fields are not blank.
// A failure is a ValidationError.
func (tv *TaskLogValidator) ValidateRequired(in domain.TaskLogInput) error {
	validationError := NewValidationError()

	requireText := func(field string, value *string) {
		if value == nil || !tv.validator.IsNonEmptyString(*value) {
			validationError.AddRequiredError(field)
		}
	}

	requireText("task", in.Task)
	requireText("client", in.Client)
	requireText("team", in.Team)
	requireText("user", in.User)
	if in.Hours == nil {
		validationError.AddRequiredError("hours")
	}
	if in.Minutes == nil {
		validationError.AddRequiredError("minutes")
	}
	requireText("start_date", in.StartDate)
	requireText("end_date", in.EndDate)
	requireText("status", in.Status)

	if validationError.HasErrors() {
		return errors.NewValidationError("All fields are required", validationError)
	}
	return nil
}

// ValidateConstraints checks enumerations, numeric ranges, date formats and, when a limit
// is configured, text lengths.
// A failure is a ConstraintError.
func (tv *TaskLogValidator) ValidateConstraints(f domain.TaskLogFields) error {
	validationError := NewValidationError()
	maxLen := tv.validator.getTextMaxLength()

	if !tv.validator.IsValidTextLength(f.Task) {
		validationError.AddInvalidLengthError("task", f.Task, 0, maxLen)
	}
	if !tv.validator.IsValidTextLength(f.Client) {
		validationError.AddInvalidLengthError("client", f.Client, 0, maxLen)
	}
	if !tv.validator.IsValidTeam(string(f.Team)) {
		validationError.AddInvalidEnumError("team", f.Team, teamNames())
	}
	if !tv.validator.IsRegisteredUser(f.User) {
		validationError.AddInvalidEnumError("user", f.User, tv.validator.Users())
	}
	if !tv.validator.IsValidHours(f.Hours) {
		validationError.AddInvalidRangeError("hours", f.Hours, fmt.Sprintf("must be between 0 and %d", int64(domain.MaxHours)))
	}
	if !tv.validator.IsValidMinutes(f.Minutes) {
		validationError.AddInvalidRangeError("minutes", f.Minutes, "must be between 0 and 59")
	}

	startOK := tv.validator.IsValidDate(f.StartDate)
	if !startOK {
		validationError.AddInvalidFormatError("start_date", f.StartDate, "YYYY-MM-DD")
	}
	endOK := tv.validator.IsValidDate(f.EndDate)
	if !endOK {
		validationError.AddInvalidFormatError("end_date", f.EndDate, "YYYY-MM-DD")
	}
	if startOK && endOK && tv.validator.EnforceDateOrder() && !tv.validator.IsValidDateRange(f.StartDate, f.EndDate) {
		validationError.AddInvalidRangeError("end_date", f.EndDate, "must not be before start_date")
	}

	if !tv.validator.IsValidStatus(string(f.Status)) {
		validationError.AddInvalidEnumError("status", f.Status, statusNames())
	}

	if validationError.HasErrors() {
		return errors.NewConstraintError(validationError.GetUserFriendlyMessage(), validationError)
	}
	return nil
}

// ValidateInput runs the presence check and then the constraint check,
// returning the dereferenced fields on success.
func (tv *TaskLogValidator) ValidateInput(in domain.TaskLogInput) (domain.TaskLogFields, error) {
	if err := tv.ValidateRequired(in); err != nil {
		return domain.TaskLogFields{}, err
	}
	fields := in.Fields()
	if err := tv.ValidateConstraints(fields); err != nil {
		return domain.TaskLogFields{}, err
	}
	return fields, nil
}

// ValidateID validates a task log ID
func (tv *TaskLogValidator) ValidateID(id int64) error {
	if !tv.validator.IsValidTaskLogID(id) {
		return errors.NewInvalidInputError("id", id, "must be a positive integer")
	}
	return nil
}

// ValidateSearchOptions rejects filters that can never match because they are malformed
func (tv *TaskLogValidator) ValidateSearchOptions(opts domain.SearchOptions) error {
	if opts.Team != nil && !tv.validator.IsValidTeam(*opts.Team) {
		return errors.NewInvalidInputError("team", *opts.Team, "must be one of the known teams")
	}
	if opts.Status != nil && !tv.validator.IsValidStatus(*opts.Status) {
		return errors.NewInvalidInputError("status", *opts.Status, "must be one of the known statuses")
	}
	if opts.From != nil && !tv.validator.IsValidDate(*opts.From) {
		return errors.NewInvalidInputError("from", *opts.From, "must be a YYYY-MM-DD date")
	}
	if opts.To != nil && !tv.validator.IsValidDate(*opts.To) {
		return errors.NewInvalidInputError("to", *opts.To, "must be a YYYY-MM-DD date")
	}
	return nil
}

func teamNames() []string {
	teams := domain.Teams()
	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = string(t)
	}
	return names
}

func statusNames() []string {
	statuses := domain.Statuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}
