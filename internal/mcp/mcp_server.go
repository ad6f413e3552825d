// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/tempdash/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the tempdash MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(cfg *contract.Config, source contract.SnapshotSource) *server.MCPServer {
	s := server.NewMCPServer(
		"Tempdash Live Temperature Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		cfg:    cfg,
		source: source,
	}

	// --- 1. Tool: get_latest_reading ---
	s.AddTool(mcp.NewTool("get_latest_reading",
		mcp.WithDescription("Get the most recent synthetic temperature reading with its timestamp and temperature band."),
	), h.handleGetLatestReading)

	// --- 2. Tool: get_history ---
	s.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Get the readings currently held in the sliding history window, oldest first."),
		mcp.WithNumber("limit", mcp.Description("Only return the most recent N readings.")),
	), h.handleGetHistory)

	// --- 3. Tool: get_trend ---
	s.AddTool(mcp.NewTool("get_trend",
		mcp.WithDescription("Fit a least-squares trend line over the history window. Requires at least two readings."),
	), h.handleGetTrend)

	// --- 4. Tool: get_window_stats ---
	s.AddTool(mcp.NewTool("get_window_stats",
		mcp.WithDescription("Get count, min, max and mean of the readings in the history window."),
	), h.handleGetWindowStats)

	return s
}

// StartMCPServer starts the tempdash MCP server on stdio.
func StartMCPServer(_ context.Context, cfg *contract.Config, source contract.SnapshotSource) error {
	s := NewMCPServer(cfg, source)
	return server.ServeStdio(s)
}
