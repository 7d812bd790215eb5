package cmd

import (
	"fmt"

	"github.com/huangsam/studytrack/core"
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/spf13/cobra"
)

// importCmd loads answers from files.
var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import answers from CSV, JSON or YAML files",
	Long: `Read answers from one or more files and store them in a single batch.

The format is picked from the file extension (.csv, .json, .yaml, .yml).
Every record needs question_id, is_correct and answered_at. Records without
a user_id belong to --user; a record with a different user_id fails the import.
Nothing is stored if any file fails to parse.

Examples:
  studytrack import answers.csv
  studytrack import week1.json week2.yaml --user alice`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		count, err := core.ImportAttempts(rootCtx, cfg, storeManager)
		if err != nil {
			contract.LogFatal("Cannot import answers", err)
		}
		fmt.Printf("Imported %d answers.\n", count)
	},
}
