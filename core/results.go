package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/studytrack/core/agg"
	"github.com/huangsam/studytrack/core/evolution"
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
)

// ErrStoreUnavailable is returned when the manager has no store for the operation.
var ErrStoreUnavailable = errors.New("store is not initialized")

// attemptStore returns the attempt store of mgr or ErrStoreUnavailable.
func attemptStore(mgr contract.StoreManager) (contract.AttemptStore, error) {
	if mgr == nil {
		return nil, ErrStoreUnavailable
	}
	store := mgr.GetAttemptStore()
	if store == nil {
		return nil, ErrStoreUnavailable
	}
	return store, nil
}

// notebookStore returns the notebook store of mgr or ErrStoreUnavailable.
func notebookStore(mgr contract.StoreManager) (contract.NotebookStore, error) {
	if mgr == nil {
		return nil, ErrStoreUnavailable
	}
	store := mgr.GetNotebookStore()
	if store == nil {
		return nil, ErrStoreUnavailable
	}
	return store, nil
}

// loadAttempts fetches the attempts of the configured user and applies the filter predicates.
func loadAttempts(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, filter schema.AttemptFilter) ([]schema.Attempt, error) {
	store, err := attemptStore(mgr)
	if err != nil {
		return nil, err
	}
	attempts, err := store.ListAttempts(ctx, cfg.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return agg.FilterAttempts(attempts, filter), nil
}

// now returns the reference time of the config.
func now(cfg *contract.Config) time.Time {
	if cfg.Now.IsZero() {
		return time.Now()
	}
	return cfg.Now
}

// endTime returns the window end of the config, now when unset.
func endTime(cfg *contract.Config) time.Time {
	if cfg.EndTime.IsZero() {
		return now(cfg)
	}
	return cfg.EndTime
}

// GetEvolutionResult buckets the filtered attempts into chronological periods.
// An unbounded start resolves to six months before the end.
func GetEvolutionResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.EvolutionResult, error) {
	r := evolution.TimeRange{Start: cfg.StartBound(), End: endTime(cfg)}
	start := evolution.ResolveStart(r)
	logViewHeader(ctx, cfg, "evolution", start, r.End)

	filter := cfg.Filter()
	filter.Start, filter.End = start, r.End
	attempts, err := loadAttempts(ctx, cfg, mgr, filter)
	if err != nil {
		return schema.EvolutionResult{}, err
	}
	return evolution.Build(schema.LogEntries(attempts), r, cfg.Periods, cfg.Metric), nil
}

// GetSubjectsResult computes the per-subject performance within the configured window.
func GetSubjectsResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.SubjectsResult, error) {
	filter := cfg.Filter()
	filter.End = endTime(cfg)
	logViewHeader(ctx, cfg, "subjects", filter.Start, filter.End)

	attempts, err := loadAttempts(ctx, cfg, mgr, filter)
	if err != nil {
		return schema.SubjectsResult{}, err
	}
	return agg.Subjects(attempts, cfg.ResultLimit), nil
}

// GetWeeklyResult counts the questions solved on each of the last seven days.
// The configured window is ignored; the week always ends today.
func GetWeeklyResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.WeeklyResult, error) {
	ref := now(cfg)
	y, m, d := ref.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, ref.Location()).AddDate(0, 0, -(schema.WeeklyWindowDays - 1))
	logViewHeader(ctx, cfg, "weekly", first, ref)

	filter := cfg.Filter()
	filter.Start, filter.End = first, ref
	attempts, err := loadAttempts(ctx, cfg, mgr, filter)
	if err != nil {
		return schema.WeeklyResult{}, err
	}
	return agg.Weekly(attempts, ref), nil
}

// GetSummaryResult totals the filtered attempts within the configured window.
func GetSummaryResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.SummaryResult, error) {
	filter := cfg.Filter()
	filter.End = endTime(cfg)
	logViewHeader(ctx, cfg, "summary", filter.Start, filter.End)

	attempts, err := loadAttempts(ctx, cfg, mgr, filter)
	if err != nil {
		return schema.SummaryResult{}, err
	}
	return agg.Summary(attempts), nil
}
