package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync/atomic"
	"time"

	"task-logger/internal/cache"
	"task-logger/internal/domain"
	"task-logger/internal/logging"
	"task-logger/internal/repository/sqlite"
)

const (
	// generationKey counts writes. Summary keys embed it so a write orphans every cached summary.
	generationKey = "summary:generation"

	summaryKeyFormat = "summary:%d"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo   sqlite.Repository
	cache  cache.Cache
	ttl    time.Duration
	mapper *domain.Mapper

	// stale is set when a write could not bump the generation
	stale atomic.Bool
}

// NewReportingService creates a new ReportingService instance backed by the given cache
func NewReportingService(repo sqlite.Repository, c cache.Cache, ttl time.Duration) ReportingService {
	return &reportingServiceImpl{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		mapper: domain.NewMapper(),
	}
}

// Summarize returns one summary per (team, status) pair that has entries,
// ordered by team then status. Cache failures fall back to the store.
func (r *reportingServiceImpl) Summarize(ctx context.Context) ([]*domain.GroupSummary, error) {
	key, cacheable := r.summaryKey(ctx)
	if cacheable {
		var cached []*domain.GroupSummary
		err := r.cache.Get(ctx, key, &cached)
		if err == nil {
			logging.Debugf("summary cache hit %s", key)
			return cached, nil
		}
		if !stderrors.Is(err, cache.ErrCacheMiss) {
			logging.Warnf("summary cache read failed: %v", err)
		}
	}

	dbSummaries, err := r.repo.SummarizeTaskLogs(ctx)
	if err != nil {
		return nil, err
	}
	groups := r.mapper.Summary.FromDatabaseSlice(dbSummaries)

	if cacheable {
		if err := r.cache.Set(ctx, key, groups, r.ttl); err != nil {
			logging.Warnf("summary cache write failed: %v", err)
		}
	}
	return groups, nil
}

// Totals returns the entry count and minutes across all groups
func (r *reportingServiceImpl) Totals(ctx context.Context) (domain.Totals, error) {
	groups, err := r.Summarize(ctx)
	if err != nil {
		return domain.Totals{}, err
	}
	return domain.SumGroups(groups), nil
}

// Invalidate bumps the write generation. If the bump fails, summaries bypass
// the cache until a later bump succeeds.
func (r *reportingServiceImpl) Invalidate(ctx context.Context) {
	if _, err := r.cache.Incr(ctx, generationKey); err != nil {
		r.stale.Store(true)
		logging.Errorf("summary cache invalidation failed, bypassing cache: %v", err)
	}
}

func (r *reportingServiceImpl) summaryKey(ctx context.Context) (string, bool) {
	if r.stale.CompareAndSwap(true, false) {
		if _, err := r.cache.Incr(ctx, generationKey); err != nil {
			r.stale.Store(true)
			return "", false
		}
		logging.Infof("summary cache invalidation recovered")
	}

	var generation int64
	err := r.cache.Get(ctx, generationKey, &generation)
	if err != nil && !stderrors.Is(err, cache.ErrCacheMiss) {
		logging.Warnf("summary cache generation read failed: %v", err)
		return "", false
	}
	return fmt.Sprintf(summaryKeyFormat, generation), true
}
