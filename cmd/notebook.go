package cmd

import (
	"fmt"

	"github.com/huangsam/studytrack/core"
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/spf13/cobra"
)

// notebookCmd groups notebook management.
var notebookCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Manage notebooks of questions to practice again",
	Long: `A notebook is a named list of questions. Creating one clears the progress
of its questions so they can be practiced from scratch.

Subcommands:
  create - Create a notebook from question IDs or the current filters
  list   - List notebooks of the user
  delete - Delete notebooks by ID`,
}

var notebookCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a notebook",
	Long: `Create a notebook with the given questions.

Without --questions, every question answered within the filters is used.

Examples:
  # Redo every wrong answer in algebra
  studytrack notebook create --name "algebra review" --subject math --topic algebra --incorrect

  # Pick questions explicitly
  studytrack notebook create --name drills --questions q-1,q-2,q-3`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		nb, err := core.CreateNotebook(rootCtx, cfg, storeManager)
		if err != nil {
			contract.LogFatal("Cannot create notebook", err)
		}
		fmt.Printf("Created notebook %s with %d questions.\n", nb.ID, len(nb.QuestionIDs))
	},
}

var notebookListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List notebooks",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteNotebookList(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list notebooks", err)
		}
	},
}

var notebookDeleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Short:   "Delete notebooks",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.DeleteNotebook(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot delete notebook", err)
		}
		fmt.Printf("Deleted %d notebooks.\n", len(args))
	},
}
