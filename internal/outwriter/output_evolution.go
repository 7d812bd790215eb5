package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/internal/parquet"
	"github.com/huangsam/studytrack/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintEvolutionResult outputs the evolution result, dispatching based on the output format configured.
func PrintEvolutionResult(result schema.EvolutionResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForEvolution(w, result)
		}, "Wrote JSON evolution results"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForEvolution(w, result, fmtFloat)
		}, "Wrote CSV evolution results"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return parquet.Write(w, parquet.ConvertEvolution(result))
		}, "Wrote Parquet evolution results"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeEvolutionTable(w, result, cfg, fmtFloat)
		}, "Wrote evolution table"); err != nil {
			return fmt.Errorf("error writing evolution table output: %w", err)
		}
	}
	return nil
}

// seriesFor returns the points of the series with the given role, nil when absent.
func seriesFor(result schema.EvolutionResult, role schema.ColorRole) []float64 {
	for _, s := range result.Series {
		if s.Role == role {
			return s.Points
		}
	}
	return nil
}

// writeEvolutionTable prints one row per period with a proportional bar.
func writeEvolutionTable(w io.Writer, result schema.EvolutionResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	if result.Empty {
		return writeEmpty(w)
	}

	positive := seriesFor(result, schema.PositiveRole)
	negative := seriesFor(result, schema.NegativeRole)
	unit := result.Metric.Unit()

	// Counts are scaled against the busiest period, percentages against 100.
	scale := 100.0
	if result.Metric == schema.CountsMetric {
		scale = 0
		for _, p := range result.Periods {
			scale = max(scale, float64(p.Total))
		}
	}
	barWidth := GetMaxBarWidth(cfg)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Period", "Correct" + unit, "Incorrect" + unit, "Total", "Trend"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, p := range result.Periods {
		var pos, neg float64
		if i < len(positive) {
			pos = positive[i]
		}
		if i < len(negative) {
			neg = negative[i]
		}
		posText, negText := formatValue(pos, result.Metric, fmtFloat), formatValue(neg, result.Metric, fmtFloat)
		if cfg.UseColors {
			posText = contract.PositiveColor.Sprint(posText)
			negText = contract.NegativeColor.Sprint(negText)
		}
		data = append(data, []string{
			p.Label,
			posText,
			negText,
			fmt.Sprintf("%d", p.Total),
			renderBar(pos, neg, scale, barWidth, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Evolution (%s) from %s to %s in %d periods\n", result.Metric,
		result.Start.Format(contract.DateFormat), result.End.Format(contract.DateFormat), len(result.Periods))
	return err
}

// formatValue renders a projected value with the precision and unit of its metric.
func formatValue(v float64, metric schema.Metric, fmtFloat func(float64) string) string {
	if metric == schema.PercentageMetric {
		return fmtFloat(v) + metric.Unit()
	}
	return fmt.Sprintf("%d", int(v))
}
