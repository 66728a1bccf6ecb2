package domain

import (
	"time"

	"task-logger/internal/repository/sqlite"
)

// DateLayout is the calendar date format used for start and end dates.
const DateLayout = "2006-01-02"

// MaxHours is the largest accepted hours value. Any entry up to it has a
// total in minutes that fits in an int64.
const MaxHours = sqlite.MaxHours

// Team identifies the team a task log was booked against.
type Team string

const (
	TeamBuild Team = "Build"
	TeamImp   Team = "Imp"
)

// Teams returns every valid team in display order.
func Teams() []Team {
	return []Team{TeamBuild, TeamImp}
}

// IsValid reports whether the team belongs to the closed set of teams.
func (t Team) IsValid() bool {
	switch t {
	case TeamBuild, TeamImp:
		return true
	}
	return false
}

// Status is the progress state of a task log.
type Status string

const (
	StatusYetToStart Status = "yet to start"
	StatusInProgress Status = "inprogress"
	StatusCompleted  Status = "completed"
)

// Statuses returns every valid status in workflow order.
func Statuses() []Status {
	return []Status{StatusYetToStart, StatusInProgress, StatusCompleted}
}

// IsValid reports whether the status belongs to the closed set of statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusYetToStart, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskLogFields are the nine user-facing fields of a task log.
// Create and update always carry all of them.
type TaskLogFields struct {
	Task      string `json:"task"`
	Client    string `json:"client"`
	Team      Team   `json:"team"`
	User      string `json:"user"`
	Hours     int    `json:"hours"`
	Minutes   int    `json:"minutes"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    Status `json:"status"`
}

// TotalMinutes returns the logged duration in minutes.
func (f TaskLogFields) TotalMinutes() int64 {
	return int64(f.Hours)*60 + int64(f.Minutes)
}

// Duration returns the logged duration.
func (f TaskLogFields) Duration() time.Duration {
	return time.Duration(f.TotalMinutes()) * time.Minute
}

// TaskLog represents a stored task time-log entry.
// This is a pure domain model without database-specific concerns.
type TaskLog struct {
	ID int64 `json:"id"`
	TaskLogFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTaskLog creates an unsaved TaskLog from its fields.
func NewTaskLog(fields TaskLogFields) TaskLog {
	return TaskLog{TaskLogFields: fields}
}

// IsPersisted returns true once the store has assigned an id.
func (tl TaskLog) IsPersisted() bool {
	return tl.ID > 0
}
