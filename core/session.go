package core

import (
	"log/slog"
	"time"

	"github.com/huangsam/tempdash/core/algo"
	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/schema"
)

// session records one run in the journal. A session without a store is a no-op.
type session struct {
	store  contract.JournalStore
	id     int64
	logger *slog.Logger
}

// beginSession opens a journal session when journaling is enabled.
// Journal failures are logged and never stop the dashboard.
func beginSession(cfg *contract.Config, mgr contract.JournalManager, logger *slog.Logger) *session {
	s := &session{logger: logger}
	if mgr == nil || !cfg.JournalEnabled() {
		return s
	}
	store := mgr.GetJournalStore()
	if store == nil {
		return s
	}

	id, err := store.BeginSession(time.Now(), cfg.ConfigParams())
	if err != nil {
		logger.Warn("failed to begin journal session", "error", err)
		return s
	}
	s.store = store
	s.id = id
	logger.Debug("journal session started", "session_id", id)
	return s
}

// finish stores the summary of the final window and closes the session.
func (s *session) finish(source contract.SnapshotSource) {
	if s.store == nil {
		return
	}
	var ticks int64
	if snap, ok := source.Latest(); ok {
		ticks = snap.Tick
		if err := s.store.RecordSummary(s.id, Summarize(snap, time.Now())); err != nil {
			s.logger.Warn("failed to record session summary", "session_id", s.id, "error", err)
		}
	}
	if err := s.store.EndSession(s.id, time.Now(), ticks); err != nil {
		s.logger.Warn("failed to end journal session", "session_id", s.id, "error", err)
	}
	s.store = nil
}

// Summarize reduces a snapshot to the aggregates kept in the journal.
func Summarize(snap schema.Snapshot, at time.Time) schema.SessionSummary {
	report := algo.BuildReport(snap, nil)
	return schema.SessionSummary{
		SummaryTime: at,
		WindowSize:  snap.Len(),
		LatestTemp:  snap.Latest.Temp,
		Stats:       report.Stats,
		Trend:       report.Trend,
	}
}
