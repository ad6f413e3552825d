package iojournal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/tempdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalStoreManager_GetJournalStore(t *testing.T) {
	mgr := &JournalStoreManager{}
	assert.Nil(t, mgr.GetJournalStore())

	store := &MockJournalStore{}
	mgr.journal = store
	assert.Same(t, store, mgr.GetJournalStore())
}

func TestClearJournal_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	store, err := NewJournalStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.FileExists(t, dbPath)

	require.NoError(t, ClearJournal(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing again is a no-op
	assert.NoError(t, ClearJournal(schema.SQLiteBackend, dbPath, ""))
}

func TestClearJournal_Errors(t *testing.T) {
	assert.Error(t, ClearJournal(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearJournal(schema.NoneBackend, "", ""))
	assert.Error(t, ClearJournal(schema.DatabaseBackend("oracle"), "", ""))
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName(sessionsTable))
	assert.NoError(t, validateTableName(summariesTable))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("sessions; DROP TABLE x"))
	assert.Error(t, validateTableName("1sessions"))
}

func TestQuoteTableNameAndPlaceholders(t *testing.T) {
	assert.Equal(t, "`tempdash_sessions`", quoteTableName(sessionsTable, schema.MySQLBackend))
	assert.Equal(t, `"tempdash_sessions"`, quoteTableName(sessionsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"tempdash_sessions"`, quoteTableName(sessionsTable, schema.SQLiteBackend))

	assert.Equal(t, []string{"$1", "$2", "$3"}, placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, []string{"?", "?"}, placeholders(schema.MySQLBackend, 2))
}

func TestFormatAndParseTime(t *testing.T) {
	ts := time.Date(2024, 6, 15, 10, 30, 0, 123456789, time.FixedZone("X", 3600))
	formatted, ok := formatTime(ts, schema.SQLiteBackend).(string)
	require.True(t, ok)

	parsed, err := parseTime(formatted)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}

func TestPrintJournalStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintJournalStatus(&buf, schema.JournalStatus{Backend: "none"})
	assert.Contains(t, buf.String(), "Journal Backend: none")
	assert.Contains(t, buf.String(), "Connected: false")
	assert.NotContains(t, buf.String(), "Table Sizes")

	buf.Reset()
	PrintJournalStatus(&buf, schema.JournalStatus{
		Backend:       "sqlite",
		Connected:     true,
		TotalSessions: 2,
		LastSessionID: 2,
		TotalTicks:    40,
		TableSizes:    map[string]int64{summariesTable: 1, sessionsTable: 2},
	})
	out := buf.String()
	assert.Contains(t, out, "Total Sessions: 2")
	assert.Contains(t, out, "Total Ticks: 40")
	// Tables are listed in name order
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(summariesTable)), bytes.Index(buf.Bytes(), []byte(sessionsTable+":")))
}
