package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/huangsam/tempdash/core/algo"
	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	cfg    *contract.Config
	source contract.SnapshotSource
}

// latestReading is the payload of get_latest_reading.
type latestReading struct {
	schema.Reading
	Tick  int64  `json:"tick"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// history is the payload of get_history.
type history struct {
	Tick     int64            `json:"tick"`
	Capacity int              `json:"capacity"`
	Readings []schema.Reading `json:"readings"`
}

// snapshot returns the latest published snapshot or an error result when
// the scheduler has not ticked yet.
func (h *toolHandler) snapshot() (schema.Snapshot, *mcp.CallToolResult) {
	snap, ok := h.source.Latest()
	if !ok || snap.Empty() {
		return schema.Snapshot{}, mcp.NewToolResultError("no readings yet")
	}
	return snap, nil
}

func jsonResult(data any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetLatestReading(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, errResult := h.snapshot()
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(latestReading{
		Reading: snap.Latest,
		Tick:    snap.Tick,
		Label:   contract.GetPlainLabel(snap.Latest.Temp),
		Text:    snap.Latest.TempString(),
	}), nil
}

func (h *toolHandler) handleGetHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, errResult := h.snapshot()
	if errResult != nil {
		return errResult, nil
	}
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid limit %d: must not be negative", limit)), nil
	}

	readings := snap.Readings
	if limit > 0 && limit < len(readings) {
		readings = readings[len(readings)-limit:]
	}
	return jsonResult(history{Tick: snap.Tick, Capacity: h.cfg.Capacity, Readings: readings}), nil
}

func (h *toolHandler) handleGetTrend(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, errResult := h.snapshot()
	if errResult != nil {
		return errResult, nil
	}
	trend, err := algo.FitSnapshot(snap)
	if errors.Is(err, algo.ErrInsufficientData) {
		return mcp.NewToolResultError(fmt.Sprintf("%v: need at least %d readings, have %d", err, algo.MinFitPoints, snap.Len())), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend fit failed: %v", err)), nil
	}
	return jsonResult(trend), nil
}

func (h *toolHandler) handleGetWindowStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, errResult := h.snapshot()
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(algo.Summarize(snap.Values())), nil
}
