package api

import (
	"context"
	"time"

	"task-logger/internal/domain"
	"task-logger/internal/services"
)

// Statistics pairs the per-group summaries with their store-wide totals
type Statistics struct {
	Groups []*domain.GroupSummary `json:"groups"`
	Totals domain.Totals          `json:"totals"`
}

// ReferenceData lists every value accepted by the enumerated fields
type ReferenceData struct {
	Users    []string        `json:"users"`
	Teams    []domain.Team   `json:"teams"`
	Statuses []domain.Status `json:"statuses"`
}

// BusinessAPI adds the views used by the web client and the CLI on top of API
type BusinessAPI interface {
	API

	// GetStatistics returns the group summaries together with their totals
	GetStatistics(ctx context.Context) (*Statistics, error)

	// GetReferenceData returns the registered users, teams and statuses
	GetReferenceData(ctx context.Context) (*ReferenceData, error)

	// ExportFilename names a CSV export taken at the given time
	ExportFilename(now time.Time) string
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	*apiImpl
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(container *services.ServiceContainer) BusinessAPI {
	return &businessAPIImpl{apiImpl: newAPI(container)}
}

func (b *businessAPIImpl) GetStatistics(ctx context.Context) (*Statistics, error) {
	groups, err := b.reporting.Summarize(ctx)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		Groups: groups,
		Totals: domain.SumGroups(groups),
	}, nil
}

func (b *businessAPIImpl) GetReferenceData(ctx context.Context) (*ReferenceData, error) {
	users, err := b.taskLogs.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &ReferenceData{
		Users:    users,
		Teams:    domain.Teams(),
		Statuses: domain.Statuses(),
	}, nil
}

func (b *businessAPIImpl) ExportFilename(now time.Time) string {
	return b.export.ExportFilename(now)
}
