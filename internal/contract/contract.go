// Package contract provides interfaces and shared utilities for the studytrack CLI's internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/studytrack/schema"
)

// StoreManager defines the interface for managing the persistent stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetAttemptStore() AttemptStore
	GetNotebookStore() NotebookStore
}

// AttemptStore defines the interface for answer attempt storage.
type AttemptStore interface {
	// RecordAttempt appends the attempt and upserts the question progress.
	RecordAttempt(ctx context.Context, a schema.Attempt) (int64, error)

	// ImportAttempts records many attempts in one transaction.
	ImportAttempts(ctx context.Context, attempts []schema.Attempt) (int, error)

	// ListAttempts returns the attempts of a user, oldest first.
	ListAttempts(ctx context.Context, userID string, filter schema.AttemptFilter) ([]schema.Attempt, error)

	// LoadProgress returns the latest progress of a user keyed by question ID.
	LoadProgress(ctx context.Context, userID string) (map[string]schema.Progress, error)

	// ResetProgress removes the progress of the given questions.
	ResetProgress(ctx context.Context, userID string, questionIDs []string) (int64, error)

	GetStatus() (schema.StoreStatus, error)
	Close() error
}

// NotebookStore defines the interface for notebook storage.
type NotebookStore interface {
	SaveNotebook(ctx context.Context, nb schema.Notebook) error

	// ListNotebooks returns the notebooks of a user, newest first.
	ListNotebooks(ctx context.Context, userID string) ([]schema.Notebook, error)

	DeleteNotebook(ctx context.Context, userID, id string) error
	Close() error
}
