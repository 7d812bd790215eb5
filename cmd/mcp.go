package cmd

import (
	"github.com/huangsam/studytrack/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Studytrack MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents read study performance.

Tools:
  get_evolution           - Correct and incorrect answers over time
  get_subject_performance - Accuracy per subject
  get_weekly_solved       - Questions solved in the last seven days
  get_summary             - Overall totals

Flags given to this command become the defaults of every tool call.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
