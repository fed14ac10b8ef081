package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/quotelab/gainermcp/pkg/plan"
)

// ExecutePlanTool replays an agent-supplied plan against the shared session.
type ExecutePlanTool struct {
	runtime *Runtime
}

// NewExecutePlanTool creates the execute_plan tool.
func NewExecutePlanTool(runtime *Runtime) *ExecutePlanTool {
	return &ExecutePlanTool{runtime: runtime}
}

// Name returns the tool name.
func (t *ExecutePlanTool) Name() string {
	return "execute_plan"
}

// Descriptor returns the tool's MCP metadata.
func (t *ExecutePlanTool) Descriptor() mcp.Tool {
	return mcp.NewTool("execute_plan",
		mcp.WithDescription(`Execute a structured plan against the live page. plan_json must be a JSON object like:
{"steps":[{"op":"goto","url":"..."},{"op":"accept_cookies"},{"op":"wait_for","selector":"table tbody tr"},{"op":"extract_top_gainer"}]}
Steps run in order and execution stops at the first failing step. Returns per-step results and, when extraction ran, the final {ticker, price} payload.`),
		mcp.WithString("plan_json",
			mcp.Required(),
			mcp.Description("JSON-encoded plan with an ordered steps array"),
		),
	)
}

// Execute validates the plan and replays it step by step. An invalid plan is
// reported inside the result payload, not as a protocol error, so the agent
// can correct it.
func (t *ExecutePlanTool) Execute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	planJSON, ok := args["plan_json"].(string)
	if !ok || planJSON == "" {
		return mcp.NewToolResultError("plan_json is required"), nil
	}

	p, err := plan.Decode([]byte(planJSON))
	if err != nil {
		return resultJSON(&plan.Result{OK: false, Error: err.Error()})
	}

	t.runtime.Lock()
	defer t.runtime.Unlock()

	driver := plan.NewSessionDriver(t.runtime.Session)
	result := plan.Run(ctx, driver, p)

	t.runtime.Logger.Info("executed plan",
		zap.String("run_id", result.RunID),
		zap.Int("steps", len(p.Steps)),
		zap.Int("completed", len(result.Results)))
	return resultJSON(result)
}

func resultJSON(result *plan.Result) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
