package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/studytrack/schema"
)

// writeJSONResultsForEvolution marshals the schema.EvolutionResult to JSON and writes it.
func writeJSONResultsForEvolution(w io.Writer, result schema.EvolutionResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForEvolution writes one row per period. Value columns are empty when the result is empty.
func writeCSVResultsForEvolution(w io.Writer, result schema.EvolutionResult, fmtFloat func(float64) string) error {
	header := []string{
		"index",
		"label",
		"start",
		"end",
		"correct",
		"incorrect",
		"total",
		"metric",
		"positive",
		"negative",
	}
	positive := seriesFor(result, schema.PositiveRole)
	negative := seriesFor(result, schema.NegativeRole)

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, p := range result.Periods {
			var pos, neg string
			if i < len(positive) {
				pos = fmtFloat(positive[i])
			}
			if i < len(negative) {
				neg = fmtFloat(negative[i])
			}
			row := []string{
				strconv.Itoa(p.Index),
				p.Label,
				p.Start.Format(time.RFC3339Nano),
				p.End.Format(time.RFC3339Nano),
				strconv.Itoa(p.Correct),
				strconv.Itoa(p.Incorrect),
				strconv.Itoa(p.Total),
				result.Metric.String(),
				pos,
				neg,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
