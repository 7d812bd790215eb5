package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/internal/importer"
	"github.com/huangsam/studytrack/internal/iostore"
	"github.com/huangsam/studytrack/internal/outwriter"
	"github.com/huangsam/studytrack/schema"
)

// RecordAttempt stores one answer of the configured user at the current time.
func RecordAttempt(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (int64, error) {
	if cfg.QuestionID == "" {
		return 0, errors.New("--question is required")
	}
	store, err := attemptStore(mgr)
	if err != nil {
		return 0, err
	}

	attempt := schema.Attempt{
		UserID:     cfg.UserID,
		QuestionID: cfg.QuestionID,
		Subject:    cfg.Subject,
		Topic:      cfg.Topic,
		Answer:     cfg.Answer,
		IsCorrect:  cfg.Correct,
		Review:     !cfg.Correct,
		AnsweredAt: now(cfg),
	}
	id, err := store.RecordAttempt(ctx, attempt)
	if err != nil {
		return 0, fmt.Errorf("failed to record attempt: %w", err)
	}

	verdict := "incorrect, flagged for review"
	if cfg.Correct {
		verdict = "correct"
	}
	logStep(cfg, "✅", "Recorded answer to %s (%s)", cfg.QuestionID, verdict)
	return id, nil
}

// ImportAttempts parses every file in cfg.Args and records the attempts in one batch.
// A single unparsable file aborts the import before anything is written.
func ImportAttempts(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (int, error) {
	if len(cfg.Args) == 0 {
		return 0, errors.New("at least one file to import is required")
	}
	store, err := attemptStore(mgr)
	if err != nil {
		return 0, err
	}

	attempts, err := importer.ParseFiles(ctx, cfg.Args, cfg.UserID)
	if err != nil {
		return 0, err
	}
	if len(attempts) == 0 {
		logStep(cfg, "📭", "No attempts found in %d file(s)", len(cfg.Args))
		return 0, nil
	}

	n, err := store.ImportAttempts(ctx, attempts)
	if err != nil {
		return 0, fmt.Errorf("failed to import attempts: %w", err)
	}
	logStep(cfg, "📥", "Imported %d attempts from %d file(s)", n, len(cfg.Args))
	return n, nil
}

// notebookQuestions returns the question IDs of a new notebook: the explicit list when given,
// else the distinct questions of the attempts matching the filter, in first-answered order.
func notebookQuestions(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]string, error) {
	if len(cfg.QuestionIDs) > 0 {
		return cfg.QuestionIDs, nil
	}

	filter := cfg.Filter()
	filter.End = endTime(cfg)
	attempts, err := loadAttempts(ctx, cfg, mgr, filter)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(attempts))
	var ids []string
	for _, a := range attempts {
		if _, ok := seen[a.QuestionID]; ok {
			continue
		}
		seen[a.QuestionID] = struct{}{}
		ids = append(ids, a.QuestionID)
	}
	return ids, nil
}

// CreateNotebook saves a notebook and then resets the progress of its questions,
// so they are practiced from scratch.
func CreateNotebook(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.Notebook, error) {
	if cfg.NotebookName == "" {
		return schema.Notebook{}, errors.New("--name is required")
	}
	notebooks, err := notebookStore(mgr)
	if err != nil {
		return schema.Notebook{}, err
	}
	attempts, err := attemptStore(mgr)
	if err != nil {
		return schema.Notebook{}, err
	}

	ids, err := notebookQuestions(ctx, cfg, mgr)
	if err != nil {
		return schema.Notebook{}, err
	}
	if len(ids) == 0 {
		return schema.Notebook{}, errors.New("no questions match the notebook filter")
	}

	nb := schema.Notebook{
		ID:          uuid.NewString(),
		UserID:      cfg.UserID,
		Name:        cfg.NotebookName,
		Subject:     cfg.Subject,
		Topic:       cfg.Topic,
		QuestionIDs: ids,
		CreatedAt:   now(cfg).UTC(),
		Active:      true,
	}
	if err := notebooks.SaveNotebook(ctx, nb); err != nil {
		return schema.Notebook{}, fmt.Errorf("failed to save notebook: %w", err)
	}

	reset, err := attempts.ResetProgress(ctx, cfg.UserID, ids)
	if err != nil {
		return nb, fmt.Errorf("notebook %s saved but progress reset failed: %w", nb.ID, err)
	}
	logStep(cfg, "📒", "Created notebook %q (%s) with %d questions, reset %d progress entries", nb.Name, nb.ID, len(ids), reset)
	return nb, nil
}

// ExecuteNotebookList prints the notebooks of the configured user.
func ExecuteNotebookList(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := notebookStore(mgr)
	if err != nil {
		return err
	}
	notebooks, err := store.ListNotebooks(ctx, cfg.UserID)
	if err != nil {
		return fmt.Errorf("failed to list notebooks: %w", err)
	}
	return outwriter.NewOutWriter().WriteNotebooks(notebooks, cfg)
}

// DeleteNotebook removes the notebooks named in cfg.Args. It stops at the first failure.
func DeleteNotebook(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if len(cfg.Args) == 0 {
		return errors.New("a notebook ID is required")
	}
	store, err := notebookStore(mgr)
	if err != nil {
		return err
	}
	for _, id := range cfg.Args {
		if err := store.DeleteNotebook(ctx, cfg.UserID, id); err != nil {
			if errors.Is(err, iostore.ErrNotFound) {
				return fmt.Errorf("notebook %s not found", id)
			}
			return fmt.Errorf("failed to delete notebook %s: %w", id, err)
		}
		logStep(cfg, "🗑️", "Deleted notebook %s", id)
	}
	return nil
}

// ExportAttempts writes every attempt of the configured user to cfg.OutputFile as Parquet.
func ExportAttempts(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := attemptStore(mgr)
	if err != nil {
		return err
	}
	return iostore.ExecuteExport(ctx, store, cfg.UserID, cfg.OutputFile, headerWriter)
}
