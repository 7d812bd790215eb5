package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintNotebooks outputs the notebooks of a user.
func PrintNotebooks(notebooks []schema.Notebook, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if notebooks == nil {
			notebooks = []schema.Notebook{}
		}
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, notebooks)
		}, "Wrote JSON notebooks"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForNotebooks(w, notebooks)
		}, "Wrote CSV notebooks"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("notebooks")
	default:
		if err := writeWithSink(cfg.OutputFile, func(w io.Writer) error {
			return writeNotebooksTable(w, notebooks)
		}, "Wrote notebook table"); err != nil {
			return fmt.Errorf("error writing notebook table output: %w", err)
		}
	}
	return nil
}

func writeNotebooksTable(w io.Writer, notebooks []schema.Notebook) error {
	if len(notebooks) == 0 {
		_, err := fmt.Fprintln(w, "No notebooks found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Subject", "Topic", "Questions", "Created"})

	var data [][]string
	for _, nb := range notebooks {
		data = append(data, []string{
			nb.ID,
			contract.TruncateText(nb.Name, 30),
			nb.Subject,
			nb.Topic,
			strconv.Itoa(len(nb.QuestionIDs)),
			nb.CreatedAt.Local().Format(contract.DateFormat),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
