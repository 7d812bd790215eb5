// Package core has the view orchestration and the attempt and notebook workflows.
package core

import (
	"context"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing a command against the stores.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteEvolution computes the accuracy evolution and prints it.
// It serves as the main entry point for the 'evolution' command.
func ExecuteEvolution(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	result, err := GetEvolutionResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteEvolution(result, cfg)
}

// ExecuteSubjects computes the per-subject performance and prints it.
func ExecuteSubjects(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	result, err := GetSubjectsResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSubjects(result, cfg)
}

// ExecuteWeekly computes the weekly solves and prints them.
func ExecuteWeekly(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	result, err := GetWeeklyResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteWeekly(result, cfg)
}

// ExecuteSummary computes the overall totals and prints them.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	result, err := GetSummaryResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSummary(result, cfg)
}
