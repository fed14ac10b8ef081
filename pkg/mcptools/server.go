// Package mcptools exposes browser operations as MCP tools over stdio.
//
// Three tools are registered: open_url, describe_page, and execute_plan. All
// of them operate on the single browser session the server holds for its
// whole lifetime; a mutex serializes access so one call completes before the
// next touches the page.
//
// Tool failures are returned as error results inside the protocol, never as
// Go errors, so the calling agent sees them and can replan.
package mcptools

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/quotelab/gainermcp/pkg/browser"
)

// Tool is one MCP-callable operation.
type Tool interface {
	// Name returns the tool's unique identifier.
	Name() string

	// Descriptor returns the tool's MCP metadata.
	Descriptor() mcp.Tool

	// Execute runs the tool against the shared browser session.
	Execute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Runtime is the state shared by every tool: the one browser session, the
// mutex serializing page access, and operation defaults.
type Runtime struct {
	Session *browser.Session
	Logger  *zap.Logger

	// NavTimeoutMs bounds open_url navigation, in milliseconds.
	NavTimeoutMs float64

	mu sync.Mutex
}

// Lock serializes page access across tool calls.
func (r *Runtime) Lock() { r.mu.Lock() }

// Unlock releases the page for the next tool call.
func (r *Runtime) Unlock() { r.mu.Unlock() }

// Server wraps an MCP server with the browser tool set.
type Server struct {
	mcp     *server.MCPServer
	runtime *Runtime
	logger  *zap.Logger
}

// Config configures a tool server.
type Config struct {
	Name         string
	Version      string
	NavTimeoutMs float64
}

// NewServer builds a tool server bound to the given browser session.
func NewServer(cfg Config, session *browser.Session, logger *zap.Logger) *Server {
	if cfg.Name == "" {
		cfg.Name = "gainermcp"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0"
	}
	if cfg.NavTimeoutMs == 0 {
		cfg.NavTimeoutMs = browser.DefaultTimeout
	}

	runtime := &Runtime{
		Session:      session,
		Logger:       logger,
		NavTimeoutMs: cfg.NavTimeoutMs,
	}

	svr := server.NewMCPServer(cfg.Name, cfg.Version)
	s := &Server{
		mcp:     svr,
		runtime: runtime,
		logger:  logger,
	}

	for _, t := range []Tool{
		NewOpenURLTool(runtime),
		NewDescribePageTool(runtime),
		NewExecutePlanTool(runtime),
	} {
		tool := t
		svr.AddTool(tool.Descriptor(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tool.Execute(ctx, req)
		})
	}

	return s
}

// ServeStdio blocks serving MCP requests over stdin/stdout until the client
// disconnects or the process is signalled.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcp)
}

// MCPServer exposes the underlying server for alternative transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}
