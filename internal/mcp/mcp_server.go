// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// filterOptions are the parameters shared by every view tool.
func filterOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("user", mcp.Description("User whose attempts are read (defaults to the configured user).")),
		mcp.WithString("subject", mcp.Description("Only count attempts of this subject (case-insensitive).")),
		mcp.WithString("topic", mcp.Description("Only count attempts of this topic (case-insensitive).")),
		mcp.WithBoolean("incorrect", mcp.Description("Only count incorrect answers.")),
		mcp.WithString("start", mcp.Description("Window start: RFC3339, YYYY-MM-DD, 'N days ago' or 'all'. Empty means unbounded.")),
		mcp.WithString("end", mcp.Description("Window end: RFC3339, YYYY-MM-DD or 'N days ago'. Defaults to now.")),
	}
}

// NewMCPServer initializes and configures the studytrack MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Studytrack Performance Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_evolution ---
	evolutionOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Bucket answer attempts into chronological periods and report correct/incorrect per period."),
		mcp.WithString("metric", mcp.Description("Series values: absolute counts or share of the period total."), mcp.Enum("counts", "percentage")),
		mcp.WithNumber("periods", mcp.Description("Target number of periods for windows longer than 15 days. Defaults to 10.")),
	}, filterOptions()...)
	s.AddTool(mcp.NewTool("get_evolution", evolutionOpts...), h.handleGetEvolution)

	// --- 2. Tool: get_subject_performance ---
	subjectOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Report correct, incorrect, total and accuracy per subject, most answered first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of subjects returned.")),
	}, filterOptions()...)
	s.AddTool(mcp.NewTool("get_subject_performance", subjectOpts...), h.handleGetSubjectPerformance)

	// --- 3. Tool: get_weekly_solved ---
	weeklyOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Report how many questions were solved on each of the last seven days. Days without answers are omitted."),
	}, filterOptions()[:4]...)
	s.AddTool(mcp.NewTool("get_weekly_solved", weeklyOpts...), h.handleGetWeeklySolved)

	// --- 4. Tool: get_summary ---
	summaryOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Report the overall correct, incorrect, total and accuracy of the filtered attempts."),
	}, filterOptions()...)
	s.AddTool(mcp.NewTool("get_summary", summaryOpts...), h.handleGetSummary)

	return s
}

// StartMCPServer starts the studytrack MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
