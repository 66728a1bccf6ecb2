package sqlite

import (
	"math"
	"time"
)

// TaskLog is a row of the task_logs table
type TaskLog struct {
	ID        int64
	Task      string
	Client    string
	Team      string
	User      string
	Hours     int
	Minutes   int
	StartDate string
	EndDate   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxHours is the largest hours value whose total minutes, including 59 extra
// minutes, still fit in an int64. chk_hours enforces the same bound.
const MaxHours = (math.MaxInt64 - 59) / 60

// TaskLogSummary is one row of the team/status aggregation
type TaskLogSummary struct {
	Team         string
	Status       string
	TotalTasks   int64
	TotalMinutes int64
}
