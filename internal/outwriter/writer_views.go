package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
)

// writeCSVResultsForSubjects writes one row per subject, most answered first.
func writeCSVResultsForSubjects(w io.Writer, result schema.SubjectsResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"subject", "correct", "incorrect", "total", "accuracy", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range result.Subjects {
			row := []string{
				s.Subject,
				fmt.Sprintf(intFmt, s.Correct),
				fmt.Sprintf(intFmt, s.Incorrect),
				fmt.Sprintf(intFmt, s.Total),
				fmtFloat(s.Accuracy),
				contract.GetPlainLabel(s.Accuracy),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCSVResultsForWeekly writes one row per day, oldest first.
func writeCSVResultsForWeekly(w io.Writer, result schema.WeeklyResult, intFmt string) error {
	header := []string{"date", "label", "solved"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range result.Days {
			row := []string{d.Date.Format(contract.DateFormat), d.Label, fmt.Sprintf(intFmt, d.Solved)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCSVResultsForSummary writes the totals as a single row.
func writeCSVResultsForSummary(w io.Writer, result schema.SummaryResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"correct", "incorrect", "total", "accuracy", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			fmt.Sprintf(intFmt, result.Correct),
			fmt.Sprintf(intFmt, result.Incorrect),
			fmt.Sprintf(intFmt, result.Total),
			fmtFloat(result.Accuracy),
			contract.GetPlainLabel(result.Accuracy),
		})
	})
}

// writeCSVResultsForNotebooks writes one row per notebook; question IDs are joined with ';'.
func writeCSVResultsForNotebooks(w io.Writer, notebooks []schema.Notebook) error {
	header := []string{"id", "name", "subject", "topic", "question_ids", "created_at", "active"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, nb := range notebooks {
			row := []string{
				nb.ID,
				nb.Name,
				nb.Subject,
				nb.Topic,
				strings.Join(nb.QuestionIDs, ";"),
				nb.CreatedAt.UTC().Format(time.RFC3339),
				fmt.Sprintf("%t", nb.Active),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
