package iojournal

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/tempdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *JournalStoreImpl {
	t.Helper()
	store, err := NewJournalStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	impl, ok := store.(*JournalStoreImpl)
	require.True(t, ok)
	return impl
}

func TestJournalStore_NoneBackend(t *testing.T) {
	store, err := NewJournalStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginSession should return 0 for NoneBackend
	sessionID, err := store.BeginSession(time.Now(), map[string]any{"capacity": 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), sessionID)

	// Other operations should not error
	assert.NoError(t, store.RecordSummary(1, schema.SessionSummary{}))
	assert.NoError(t, store.EndSession(1, time.Now(), 10))

	sessions, err := store.GetAllSessions()
	assert.NoError(t, err)
	assert.Nil(t, sessions)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)

	assert.NoError(t, store.Close())
}

func TestJournalStore_UnsupportedBackend(t *testing.T) {
	_, err := NewJournalStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestJournalStore_SessionLifecycle(t *testing.T) {
	store := newMemoryStore(t)

	start := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	sessionID, err := store.BeginSession(start, map[string]any{"capacity": 10, "interval": "3s"})
	require.NoError(t, err)
	assert.Greater(t, sessionID, int64(0))

	summary := schema.SessionSummary{
		SummaryTime: start.Add(30 * time.Second),
		WindowSize:  10,
		LatestTemp:  56.2,
		Stats:       schema.WindowStats{Count: 10, Min: 50.3, Max: 59.1, Mean: 54.87},
		Trend:       &schema.TrendLine{Slope: 0.25, Intercept: 53.7},
	}
	require.NoError(t, store.RecordSummary(sessionID, summary))
	require.NoError(t, store.EndSession(sessionID, start.Add(30*time.Second), 11))

	sessions, err := store.GetAllSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, sessionID, s.SessionID)
	assert.True(t, start.Equal(s.StartTime))
	require.NotNil(t, s.EndTime)
	assert.True(t, start.Add(30*time.Second).Equal(*s.EndTime))
	require.NotNil(t, s.RunDurationMs)
	assert.Equal(t, int32(30000), *s.RunDurationMs)
	assert.Equal(t, int64(11), s.TotalTicks)
	require.NotNil(t, s.ConfigParams)

	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*s.ConfigParams), &params))
	assert.Equal(t, "3s", params["interval"])

	summaries, err := store.GetAllSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	got := summaries[0]
	assert.Equal(t, sessionID, got.SessionID)
	assert.Equal(t, int32(10), got.WindowSize)
	assert.InDelta(t, 56.2, got.LatestTemp, 1e-9)
	assert.InDelta(t, 50.3, got.MinTemp, 1e-9)
	assert.InDelta(t, 59.1, got.MaxTemp, 1e-9)
	assert.InDelta(t, 54.87, got.MeanTemp, 1e-9)
	require.NotNil(t, got.Slope)
	require.NotNil(t, got.Intercept)
	assert.InDelta(t, 0.25, *got.Slope, 1e-9)
	assert.InDelta(t, 53.7, *got.Intercept, 1e-9)
}

func TestJournalStore_SummaryWithoutTrend(t *testing.T) {
	store := newMemoryStore(t)

	sessionID, err := store.BeginSession(time.Now(), nil)
	require.NoError(t, err)

	require.NoError(t, store.RecordSummary(sessionID, schema.SessionSummary{
		SummaryTime: time.Now(),
		WindowSize:  1,
		LatestTemp:  52.0,
		Stats:       schema.WindowStats{Count: 1, Min: 52, Max: 52, Mean: 52},
	}))

	summaries, err := store.GetAllSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Nil(t, summaries[0].Slope, "slope is NULL without a trend")
	assert.Nil(t, summaries[0].Intercept)
}

func TestJournalStore_RecordSummaryReplaces(t *testing.T) {
	store := newMemoryStore(t)
	sessionID, err := store.BeginSession(time.Now(), nil)
	require.NoError(t, err)

	for _, temp := range []float64{51.0, 57.5} {
		require.NoError(t, store.RecordSummary(sessionID, schema.SessionSummary{
			SummaryTime: time.Now(), WindowSize: 3, LatestTemp: temp,
		}))
	}

	summaries, err := store.GetAllSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.InDelta(t, 57.5, summaries[0].LatestTemp, 1e-9)
}

func TestJournalStore_EndUnknownSession(t *testing.T) {
	store := newMemoryStore(t)
	err := store.EndSession(999, time.Now(), 1)
	assert.Error(t, err)
}

func TestJournalStore_GetStatus(t *testing.T) {
	store := newMemoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalSessions)
	assert.Equal(t, int64(0), status.TableSizes[sessionsTable])

	first := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	for i, start := range []time.Time{first, second} {
		id, err := store.BeginSession(start, nil)
		require.NoError(t, err)
		require.NoError(t, store.EndSession(id, start.Add(time.Minute), int64(10*(i+1))))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalSessions)
	assert.Equal(t, int64(2), status.LastSessionID)
	assert.True(t, second.Equal(status.LastSession))
	assert.True(t, first.Equal(status.OldestSession))
	assert.Equal(t, int64(30), status.TotalTicks)
	assert.Equal(t, int64(2), status.TableSizes[sessionsTable])
	assert.Equal(t, int64(0), status.TableSizes[summariesTable])
}

func TestJournalStore_FileBackedPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	store, err := NewJournalStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.BeginSession(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewJournalStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	sessions, err := reopened.GetAllSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}
