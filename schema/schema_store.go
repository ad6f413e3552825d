package schema

import "time"

// SessionSummary holds the aggregate statistics of the final window of a session.
// Individual readings are never stored.
type SessionSummary struct {
	SummaryTime time.Time
	WindowSize  int
	LatestTemp  float64
	Stats       WindowStats
	Trend       *TrendLine // nil when the window had fewer than two readings
}

// SessionRecord represents a row from the tempdash_sessions table.
type SessionRecord struct {
	SessionID     int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalTicks    int64
	ConfigParams  *string
}

// SessionSummaryRecord represents a row from the tempdash_session_summaries table.
type SessionSummaryRecord struct {
	SessionID   int64
	SummaryTime time.Time
	WindowSize  int32
	LatestTemp  float64
	MinTemp     float64
	MaxTemp     float64
	MeanTemp    float64
	Slope       *float64
	Intercept   *float64
}
