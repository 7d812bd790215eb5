package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSummaryResult outputs the overall totals.
func PrintSummaryResult(result schema.SummaryResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON summary"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForSummary(w, result, fmtFloat, intFmt)
		}, "Wrote CSV summary"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("summary")
	default:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, result, cfg, fmtFloat, intFmt)
		}, "Wrote summary table"); err != nil {
			return fmt.Errorf("error writing summary table output: %w", err)
		}
	}
	return nil
}

func writeSummaryTable(w io.Writer, result schema.SummaryResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	if result.Empty {
		return writeEmpty(w)
	}

	level := contract.GetPlainLabel(result.Accuracy)
	if cfg.UseColors {
		level = contract.GetColorLabel(result.Accuracy)
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	data := [][]string{
		{"Correct", fmt.Sprintf(intFmt, result.Correct)},
		{"Incorrect", fmt.Sprintf(intFmt, result.Incorrect)},
		{"Total", fmt.Sprintf(intFmt, result.Total)},
		{"Accuracy", fmtFloat(result.Accuracy) + "%"},
		{"Level", level},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
