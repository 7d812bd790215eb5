package cmd

import (
	"github.com/huangsam/studytrack/core"
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/spf13/cobra"
)

// runView adapts a core executor to a cobra Run function.
func runView(name string, executor core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := executor(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run "+name+" view", err)
		}
	}
}

// evolutionCmd shows how correct and incorrect answers evolve over time.
var evolutionCmd = &cobra.Command{
	Use:   "evolution",
	Short: "Show correct and incorrect answers over time",
	Long: `Group answers into consecutive periods and show how many were correct or incorrect in each.

Windows of up to 15 days get one period per day. Longer windows are split into
roughly --periods buckets of equal length. Without --start the window begins six
months before --end.

Metrics:
  counts     - Number of correct and incorrect answers per period (default)
  percentage - Share of correct and incorrect answers per period

Examples:
  # Last two weeks, one bar per day
  studytrack evolution --start "2 weeks ago"

  # Accuracy per month for a subject
  studytrack evolution --subject math --start 2024-01-01 --metric percentage --periods 12

  # Export the series for plotting
  studytrack evolution --output csv --output-file evolution.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runView("evolution", core.ExecuteEvolution),
}

// subjectsCmd ranks subjects by number of answers.
var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Show accuracy per subject",
	Long: `Rank subjects by number of answers and show the accuracy of each.

Examples:
  # Top 5 subjects this year
  studytrack subjects --limit 5 --start 2024-01-01

  # Only subjects with wrong answers
  studytrack subjects --incorrect --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runView("subjects", core.ExecuteSubjects),
}

// weeklyCmd shows the questions solved on each of the last seven days.
var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show questions solved in the last seven days",
	Long: `Count the answers given on each of the last seven days, today included.

Days without answers are omitted. The window always ends now, so --start and --end are ignored.

Examples:
  studytrack weekly
  studytrack weekly --subject physics --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runView("weekly", core.ExecuteWeekly),
}

// summaryCmd shows overall totals.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show overall correct, incorrect and accuracy totals",
	Long: `Show totals of every answer that matches the filters.

Examples:
  studytrack summary
  studytrack summary --topic derivatives --start "1 month ago"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runView("summary", core.ExecuteSummary),
}
