package cmd

import (
	"fmt"

	"github.com/huangsam/studytrack/core"
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/spf13/cobra"
)

// recordCmd stores a single answer.
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record one answer to a question",
	Long: `Store an answer given to a practice question.

Incorrect answers are marked for review. Recording the same question again
replaces its review state with the latest answer.

Examples:
  studytrack record --question q-101 --answer B --correct yes
  studytrack record --question q-102 --answer D --correct no --user alice`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		id, err := core.RecordAttempt(rootCtx, cfg, storeManager)
		if err != nil {
			contract.LogFatal("Cannot record answer", err)
		}
		fmt.Printf("Recorded answer %d for question %s.\n", id, cfg.QuestionID)
	},
}
