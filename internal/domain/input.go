package domain

// TaskLogInput is a create or update request as received from a client.
// Pointers distinguish an absent field from a zero value, so that
// "hours": 0 is accepted while a missing "hours" is not.
type TaskLogInput struct {
	Task      *string `json:"task"`
	Client    *string `json:"client"`
	Team      *string `json:"team"`
	User      *string `json:"user"`
	Hours     *int    `json:"hours"`
	Minutes   *int    `json:"minutes"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status"`
}

// InputFromFields builds a fully populated input from a field set.
func InputFromFields(f TaskLogFields) TaskLogInput {
	team := string(f.Team)
	status := string(f.Status)
	return TaskLogInput{
		Task:      &f.Task,
		Client:    &f.Client,
		Team:      &team,
		User:      &f.User,
		Hours:     &f.Hours,
		Minutes:   &f.Minutes,
		StartDate: &f.StartDate,
		EndDate:   &f.EndDate,
		Status:    &status,
	}
}

// Fields dereferences the input. Absent fields come back as zero values;
// callers check presence first.
func (in TaskLogInput) Fields() TaskLogFields {
	return TaskLogFields{
		Task:      deref(in.Task),
		Client:    deref(in.Client),
		Team:      Team(deref(in.Team)),
		User:      deref(in.User),
		Hours:     derefInt(in.Hours),
		Minutes:   derefInt(in.Minutes),
		StartDate: deref(in.StartDate),
		EndDate:   deref(in.EndDate),
		Status:    Status(deref(in.Status)),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
