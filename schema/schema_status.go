package schema

import "time"

// JournalStatus represents the status of the session journal store.
type JournalStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalSessions int              `json:"total_sessions"`
	LastSessionID int64            `json:"last_session_id"`
	LastSession   time.Time        `json:"last_session"`
	OldestSession time.Time        `json:"oldest_session"`
	TotalTicks    int64            `json:"total_ticks"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
