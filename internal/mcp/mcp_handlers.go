package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/studytrack/core"
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// requestConfig clones the base config and applies the filter and window parameters.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = ""
	if u := strings.TrimSpace(request.GetString("user", "")); u != "" {
		cfg.UserID = u
	}
	cfg.Subject = strings.TrimSpace(request.GetString("subject", ""))
	cfg.Topic = strings.TrimSpace(request.GetString("topic", ""))
	cfg.OnlyIncorrect = request.GetBool("incorrect", false)

	err := contract.RevalidateView(cfg,
		request.GetString("start", ""),
		request.GetString("end", ""),
		request.GetString("metric", ""),
		request.GetInt("periods", 0),
	)
	return cfg, err
}

// jsonResult renders v as the indented JSON text of a tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetEvolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid evolution parameters: %v", err)), nil
	}

	result, err := core.GetEvolutionResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evolution failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetSubjectPerformance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid subject parameters: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l != 0 {
		if l < 0 || l > contract.MaxResultLimit {
			return mcp.NewToolResultError(fmt.Sprintf("limit must be greater than 0 and cannot exceed %d", contract.MaxResultLimit)), nil
		}
		cfg.ResultLimit = l
	}

	result, err := core.GetSubjectsResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("subject performance failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetWeeklySolved(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid weekly parameters: %v", err)), nil
	}

	result, err := core.GetWeeklyResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("weekly solved failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid summary parameters: %v", err)), nil
	}

	result, err := core.GetSummaryResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	return jsonResult(result)
}
