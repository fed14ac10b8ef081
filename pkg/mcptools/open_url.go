package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/quotelab/gainermcp/pkg/browser"
)

// OpenURLTool navigates the shared session to a URL.
type OpenURLTool struct {
	runtime *Runtime
}

// NewOpenURLTool creates the open_url tool.
func NewOpenURLTool(runtime *Runtime) *OpenURLTool {
	return &OpenURLTool{runtime: runtime}
}

// Name returns the tool name.
func (t *OpenURLTool) Name() string {
	return "open_url"
}

// Descriptor returns the tool's MCP metadata.
func (t *OpenURLTool) Descriptor() mcp.Tool {
	return mcp.NewTool("open_url",
		mcp.WithDescription("Navigate the browser to a URL and wait for the DOM to load."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("URL to navigate to (must include protocol, e.g. https://example.com)"),
		),
	)
}

// Execute navigates to the requested URL.
func (t *OpenURLTool) Execute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	url, ok := args["url"].(string)
	if !ok || url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	t.runtime.Lock()
	defer t.runtime.Unlock()

	err := t.runtime.Session.Navigate(url, browser.NavigateOptions{
		WaitUntil: "domcontentloaded",
		Timeout:   t.runtime.NavTimeoutMs,
	})
	if err != nil {
		t.runtime.Logger.Warn("open_url failed", zap.String("url", url), zap.Error(err))
		if browser.IsTimeout(err) {
			return mcp.NewToolResultError("timeout"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("navigation failed: %v", err)), nil
	}

	t.runtime.Logger.Info("navigated", zap.String("url", t.runtime.Session.CurrentURL))
	return mcp.NewToolResultText("navigated:" + t.runtime.Session.CurrentURL), nil
}
