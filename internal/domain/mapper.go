package domain

import (
	"task-logger/internal/repository/sqlite"
)

// TaskLogMapper handles conversion between domain and database TaskLog models.
type TaskLogMapper struct{}

// NewTaskLogMapper creates a new TaskLogMapper instance.
func NewTaskLogMapper() *TaskLogMapper {
	return &TaskLogMapper{}
}

// ToDatabase converts a domain TaskLog to a database TaskLog.
func (m *TaskLogMapper) ToDatabase(domainLog TaskLog) sqlite.TaskLog {
	return sqlite.TaskLog{
		ID:        domainLog.ID,
		Task:      domainLog.Task,
		Client:    domainLog.Client,
		Team:      string(domainLog.Team),
		User:      domainLog.User,
		Hours:     domainLog.Hours,
		Minutes:   domainLog.Minutes,
		StartDate: domainLog.StartDate,
		EndDate:   domainLog.EndDate,
		Status:    string(domainLog.Status),
		CreatedAt: domainLog.CreatedAt,
		UpdatedAt: domainLog.UpdatedAt,
	}
}

// FromDatabase converts a database TaskLog to a domain TaskLog.
func (m *TaskLogMapper) FromDatabase(dbLog sqlite.TaskLog) TaskLog {
	return TaskLog{
		ID: dbLog.ID,
		TaskLogFields: TaskLogFields{
			Task:      dbLog.Task,
			Client:    dbLog.Client,
			Team:      Team(dbLog.Team),
			User:      dbLog.User,
			Hours:     dbLog.Hours,
			Minutes:   dbLog.Minutes,
			StartDate: dbLog.StartDate,
			EndDate:   dbLog.EndDate,
			Status:    Status(dbLog.Status),
		},
		CreatedAt: dbLog.CreatedAt,
		UpdatedAt: dbLog.UpdatedAt,
	}
}

// FromDatabaseSlice converts database TaskLogs to domain TaskLogs.
// The result is never nil so it encodes as an empty JSON array.
func (m *TaskLogMapper) FromDatabaseSlice(dbLogs []*sqlite.TaskLog) []TaskLog {
	domainLogs := make([]TaskLog, len(dbLogs))
	for i, log := range dbLogs {
		domainLogs[i] = m.FromDatabase(*log)
	}
	return domainLogs
}

// SummaryMapper converts aggregation rows into domain group summaries.
type SummaryMapper struct{}

// NewSummaryMapper creates a new SummaryMapper instance.
func NewSummaryMapper() *SummaryMapper {
	return &SummaryMapper{}
}

// FromDatabase converts a database TaskLogSummary to a domain GroupSummary.
func (m *SummaryMapper) FromDatabase(dbSummary sqlite.TaskLogSummary) GroupSummary {
	return GroupSummary{
		Team:         Team(dbSummary.Team),
		Status:       Status(dbSummary.Status),
		TotalTasks:   dbSummary.TotalTasks,
		TotalMinutes: dbSummary.TotalMinutes,
	}
}

// FromDatabaseSlice converts database summaries, keeping their order.
func (m *SummaryMapper) FromDatabaseSlice(dbSummaries []*sqlite.TaskLogSummary) []*GroupSummary {
	groups := make([]*GroupSummary, len(dbSummaries))
	for i, s := range dbSummaries {
		group := m.FromDatabase(*s)
		groups[i] = &group
	}
	return groups
}

// SearchOptionsMapper handles conversion between domain and database SearchOptions.
type SearchOptionsMapper struct{}

// NewSearchOptionsMapper creates a new SearchOptionsMapper instance.
func NewSearchOptionsMapper() *SearchOptionsMapper {
	return &SearchOptionsMapper{}
}

// ToDatabase converts domain SearchOptions to database SearchOptions.
func (m *SearchOptionsMapper) ToDatabase(domainOpts SearchOptions) sqlite.SearchOptions {
	return sqlite.SearchOptions{
		User:   domainOpts.User,
		Team:   domainOpts.Team,
		Status: domainOpts.Status,
		Client: domainOpts.Client,
		From:   domainOpts.From,
		To:     domainOpts.To,
	}
}

// FromDatabase converts database SearchOptions to domain SearchOptions.
func (m *SearchOptionsMapper) FromDatabase(dbOpts sqlite.SearchOptions) SearchOptions {
	return SearchOptions{
		User:   dbOpts.User,
		Team:   dbOpts.Team,
		Status: dbOpts.Status,
		Client: dbOpts.Client,
		From:   dbOpts.From,
		To:     dbOpts.To,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	TaskLog       *TaskLogMapper
	Summary       *SummaryMapper
	SearchOptions *SearchOptionsMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		TaskLog:       NewTaskLogMapper(),
		Summary:       NewSummaryMapper(),
		SearchOptions: NewSearchOptionsMapper(),
	}
}
