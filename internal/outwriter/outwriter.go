// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
)

// EmptyMessage is printed by text output when no answer matches the filter.
const EmptyMessage = "No answers found for the selected filter."

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteEvolution prints the evolution result using the configured output format.
func (ow *OutWriter) WriteEvolution(result schema.EvolutionResult, cfg *contract.Config) error {
	return PrintEvolutionResult(result, cfg)
}

// WriteSubjects prints the per-subject performance using the configured output format.
func (ow *OutWriter) WriteSubjects(result schema.SubjectsResult, cfg *contract.Config) error {
	return PrintSubjectsResult(result, cfg)
}

// WriteWeekly prints the weekly solves using the configured output format.
func (ow *OutWriter) WriteWeekly(result schema.WeeklyResult, cfg *contract.Config) error {
	return PrintWeeklyResult(result, cfg)
}

// WriteSummary prints the overall summary using the configured output format.
func (ow *OutWriter) WriteSummary(result schema.SummaryResult, cfg *contract.Config) error {
	return PrintSummaryResult(result, cfg)
}

// WriteNotebooks prints notebooks using the configured output format.
func (ow *OutWriter) WriteNotebooks(notebooks []schema.Notebook, cfg *contract.Config) error {
	return PrintNotebooks(notebooks, cfg)
}

// errParquetUnsupported reports a view that has no Parquet form.
func errParquetUnsupported(view string) error {
	return fmt.Errorf("parquet output is only supported for evolution, not %s", view)
}

// writeEmpty prints the placeholder used by text output for empty results.
func writeEmpty(w io.Writer) error {
	_, err := fmt.Fprintln(w, EmptyMessage)
	return err
}
