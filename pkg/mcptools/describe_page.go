package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// DescribePageTool returns a structured snapshot of the current page for the
// calling agent to plan over.
type DescribePageTool struct {
	runtime *Runtime
}

// NewDescribePageTool creates the describe_page tool.
func NewDescribePageTool(runtime *Runtime) *DescribePageTool {
	return &DescribePageTool{runtime: runtime}
}

// Name returns the tool name.
func (t *DescribePageTool) Name() string {
	return "describe_page"
}

// Descriptor returns the tool's MCP metadata.
func (t *DescribePageTool) Descriptor() mcp.Tool {
	return mcp.NewTool("describe_page",
		mcp.WithDescription("Return a structured snapshot of the current page: URL, title, buttons, links, inputs, and a locator hint for the ranked gainers table when one is present."),
	)
}

// Execute snapshots the current page.
func (t *DescribePageTool) Execute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.runtime.Lock()
	defer t.runtime.Unlock()

	snapshot, err := t.runtime.Session.Describe()
	if err != nil {
		t.runtime.Logger.Warn("describe_page failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}

	t.runtime.Logger.Info("described page",
		zap.String("url", snapshot.URL),
		zap.Int("buttons", len(snapshot.Buttons)),
		zap.Int("links", len(snapshot.Links)),
		zap.Bool("table", snapshot.TableHint != nil))
	return mcp.NewToolResultText(string(payload)), nil
}
