package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintWeeklyResult outputs the questions solved on each of the last seven days.
func PrintWeeklyResult(result schema.WeeklyResult, cfg *contract.Config) error {
	_, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON weekly results"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForWeekly(w, result, intFmt)
		}, "Wrote CSV weekly results"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("weekly")
	default:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeWeeklyTable(w, result, cfg, intFmt)
		}, "Wrote weekly table"); err != nil {
			return fmt.Errorf("error writing weekly table output: %w", err)
		}
	}
	return nil
}

// writeWeeklyTable prints one row per day with a bar scaled to the busiest day.
func writeWeeklyTable(w io.Writer, result schema.WeeklyResult, cfg *contract.Config, intFmt string) error {
	if result.Empty {
		return writeEmpty(w)
	}

	var scale float64
	for _, d := range result.Days {
		scale = max(scale, float64(d.Solved))
	}
	barWidth := GetMaxBarWidth(cfg)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Day", "Date", "Solved", "Activity"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range result.Days {
		data = append(data, []string{
			d.Label,
			d.Date.Format(contract.DateFormat),
			fmt.Sprintf(intFmt, d.Solved),
			renderBar(float64(d.Solved), 0, scale, barWidth, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
