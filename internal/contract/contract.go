// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/tempdash/schema"
)

// SnapshotSource exposes the most recently published snapshot.
// Implementations must be safe for concurrent readers.
type SnapshotSource interface {
	// Latest returns the last published snapshot, or false before the first tick.
	Latest() (schema.Snapshot, bool)
}

// JournalManager defines the interface for managing the journal store.
// This allows the journal layer to be mocked for testing.
type JournalManager interface {
	GetJournalStore() JournalStore
}

// JournalStore defines the interface for recording dashboard sessions.
// Only aggregates of the final window are stored, never individual readings.
type JournalStore interface {
	// BeginSession creates a new session row and returns its unique ID
	BeginSession(startTime time.Time, configParams map[string]any) (int64, error)

	// RecordSummary stores the final window statistics of a session
	RecordSummary(sessionID int64, summary schema.SessionSummary) error

	// EndSession updates the session with completion data
	EndSession(sessionID int64, endTime time.Time, totalTicks int64) error

	// GetStatus returns status information about the journal store
	GetStatus() (schema.JournalStatus, error)

	// GetAllSessions retrieves every session row
	GetAllSessions() ([]schema.SessionRecord, error)

	// GetAllSummaries retrieves every session summary row
	GetAllSummaries() ([]schema.SessionSummaryRecord, error)

	// Close closes the underlying connection
	Close() error
}
