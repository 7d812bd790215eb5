package iostore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/internal/parquet"
	"github.com/huangsam/studytrack/schema"
)

// ExecuteExport writes every attempt of a user to a Parquet file.
func ExecuteExport(ctx context.Context, store contract.AttemptStore, userID, outputFile string, progress io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalAttempts == 0 {
		return errors.New("no attempts found to export")
	}
	_, _ = fmt.Fprintf(progress, "Exporting data from %s backend...\n", status.Backend)

	attempts, err := store.ListAttempts(ctx, userID, schema.AttemptFilter{})
	if err != nil {
		return fmt.Errorf("failed to retrieve attempts: %w", err)
	}
	if len(attempts) == 0 {
		return fmt.Errorf("no attempts found for user %s", userID)
	}

	if err := parquet.WriteAttemptsFile(parquet.ConvertAttempts(attempts), outputFile); err != nil {
		return fmt.Errorf("failed to write attempts: %w", err)
	}
	_, _ = fmt.Fprintf(progress, "Exported %d attempts to: %s\n", len(attempts), outputFile)
	return nil
}
