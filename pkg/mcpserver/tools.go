package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("get_switches",
		mcp.WithDescription("Get a list of all connected OpenFlow switches"),
	), s.handleGetSwitches)

	s.mcp.AddTool(mcp.NewTool("get_switch_desc",
		mcp.WithDescription("Get detailed information about a specific switch"),
		mcp.WithString("dpid",
			mcp.Description("Datapath ID of the switch to describe"),
			mcp.Required(),
		),
	), s.handleGetSwitchDesc)

	s.mcp.AddTool(mcp.NewTool("get_flow_stats",
		mcp.WithDescription("Get flow statistics from a switch"),
		mcp.WithString("dpid",
			mcp.Description("Datapath ID of the switch"),
			mcp.Required(),
		),
		mcp.WithObject("match",
			mcp.Description("Match structure to filter flows (optional)"),
		),
		mcp.WithString("table_id",
			mcp.Description("Table ID to filter flows (optional)"),
		),
		mcp.WithString("out_port",
			mcp.Description("Filter by out port (optional)"),
		),
	), s.handleGetFlowStats)

	s.mcp.AddTool(mcp.NewTool("set_table",
		mcp.WithDescription("Set the flow table on a switch"),
		mcp.WithString("dpid",
			mcp.Description("Datapath ID of the switch"),
			mcp.Required(),
		),
		mcp.WithArray("flows",
			mcp.Description("Flow entries to install, each with match criteria and actions"),
			mcp.Required(),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"match": map[string]any{
						"type":        "object",
						"description": "Flow match criteria",
					},
					"actions": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"type": map[string]any{"type": "string", "description": "Action type (e.g., OFPAT_OUTPUT)"},
								"port": map[string]any{"type": "string", "description": "Output port (e.g., port number or OFPP_ALL)"},
							},
						},
					},
				},
			}),
		),
	), s.handleSetTable)

	s.mcp.AddTool(mcp.NewTool("append_insight",
		mcp.WithDescription("Add a network insight to the configuration memo"),
		mcp.WithString("insight",
			mcp.Description("Network insight discovered from analysis"),
			mcp.Required(),
		),
	), s.handleAppendInsight)
}

func (s *Server) handleGetSwitches(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.jsonResult("get_switches", s.manager.GetSwitches(ctx))
}

func (s *Server) handleGetSwitchDesc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dpid, err := req.RequireString("dpid")
	if err != nil {
		return s.toolError("get_switch_desc", "Missing dpid argument"), nil
	}
	return s.jsonResult("get_switch_desc", s.manager.GetSwitchDesc(ctx, dpid))
}

func (s *Server) handleGetFlowStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dpid, err := req.RequireString("dpid")
	if err != nil {
		return s.toolError("get_flow_stats", "Missing dpid argument"), nil
	}

	var match map[string]any
	if raw, ok := req.GetArguments()["match"]; ok {
		match, _ = raw.(map[string]any)
	}
	tableID := req.GetString("table_id", "")
	outPort := req.GetString("out_port", "")

	return s.jsonResult("get_flow_stats", s.manager.GetFlowStats(ctx, dpid, match, tableID, outPort))
}

func (s *Server) handleSetTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dpid, err := req.RequireString("dpid")
	if err != nil {
		return s.toolError("set_table", "Missing dpid or flows arguments"), nil
	}

	raw, ok := req.GetArguments()["flows"]
	if !ok {
		return s.toolError("set_table", "Missing dpid or flows arguments"), nil
	}
	flows, err := coerceFlows(raw)
	if err != nil {
		return s.toolError("set_table", err.Error()), nil
	}

	result := s.manager.SetTable(ctx, dpid, flows)
	s.notifyConfigChanged()
	return s.jsonResult("set_table", result)
}

func (s *Server) handleAppendInsight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	insight, err := req.RequireString("insight")
	if err != nil {
		return s.toolError("append_insight", "Missing insight argument"), nil
	}

	s.store.AppendInsight(insight)
	s.notifyConfigChanged()

	s.recorder.RecordToolCall("append_insight", "success")
	return mcp.NewToolResultText("Network insight added to memo"), nil
}

// coerceFlows converts the JSON-decoded tool argument into the flow
// slice the facade passes through verbatim.
func coerceFlows(raw any) ([]map[string]any, error) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("flows must be an array of objects")
	}

	flows := make([]map[string]any, 0, len(entries))
	for i, entry := range entries {
		flow, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("flows[%d] must be an object", i)
		}
		flows = append(flows, flow)
	}
	return flows, nil
}

func (s *Server) jsonResult(tool string, v any) (*mcp.CallToolResult, error) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s.toolError(tool, fmt.Sprintf("Error: %v", err)), nil
	}

	s.recorder.RecordToolCall(tool, "success")
	return mcp.NewToolResultText(string(encoded)), nil
}

func (s *Server) toolError(tool, message string) *mcp.CallToolResult {
	s.recorder.RecordToolCall(tool, "error")
	return mcp.NewToolResultError(message)
}
