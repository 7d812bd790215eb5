package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSubjectsResult outputs the per-subject performance.
func PrintSubjectsResult(result schema.SubjectsResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON subject results"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForSubjects(w, result, fmtFloat, intFmt)
		}, "Wrote CSV subject results"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("subjects")
	default:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeSubjectsTable(w, result, cfg, fmtFloat, intFmt)
		}, "Wrote subject table"); err != nil {
			return fmt.Errorf("error writing subject table output: %w", err)
		}
	}
	return nil
}

// writeSubjectsTable prints one ranked row per subject.
func writeSubjectsTable(w io.Writer, result schema.SubjectsResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	if result.Empty {
		return writeEmpty(w)
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Subject", "Correct", "Incorrect", "Total", "Accuracy", "Level"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, s := range result.Subjects {
		var label string
		if cfg.UseColors {
			label = contract.GetColorLabel(s.Accuracy)
		} else {
			label = contract.GetPlainLabel(s.Accuracy)
		}
		if cfg.UseEmojis {
			label = accuracyEmoji(s.Accuracy) + " " + label
		}
		data = append(data, []string{
			fmt.Sprintf(intFmt, i+1),
			contract.TruncateText(s.Subject, 40),
			fmt.Sprintf(intFmt, s.Correct),
			fmt.Sprintf(intFmt, s.Incorrect),
			fmt.Sprintf(intFmt, s.Total),
			fmtFloat(s.Accuracy) + "%",
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// accuracyEmoji returns a marker for the accuracy level.
func accuracyEmoji(accuracy float64) string {
	switch contract.GetPlainLabel(accuracy) {
	case contract.ExcellentValue:
		return "🏆"
	case contract.GoodValue:
		return "✅"
	case contract.FairValue:
		return "⚠️"
	default:
		return "📕"
	}
}
