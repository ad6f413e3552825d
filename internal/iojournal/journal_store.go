package iojournal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for session journaling.
const (
	sessionsTable  = "tempdash_sessions"
	summariesTable = "tempdash_session_summaries"
)

// JournalStoreImpl implements the JournalStore interface.
type JournalStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.JournalStore = &JournalStoreImpl{} // Compile-time check

// NewJournalStore creates a new JournalStore with the specified backend.
func NewJournalStore(backend schema.DatabaseBackend, connStr string) (contract.JournalStore, error) {
	var db *sql.DB
	var err error
	driverName := driverFor(backend)

	switch backend {
	case schema.SQLiteBackend:
		dbPath := resolveSQLitePath(connStr)
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname?parseTime=true", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=... user=... password=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled journaling
		return &JournalStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	if err := createJournalTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create journal tables: %w", err)
	}

	return &JournalStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createJournalTables creates the journal tables when they do not exist yet.
func createJournalTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{sessionsTable, getCreateSessionsQuery(backend)},
		{summariesTable, getCreateSummariesQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateSessionsQuery returns the CREATE TABLE query for tempdash_sessions.
func getCreateSessionsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(sessionsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_ticks BIGINT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_ticks BIGINT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_ticks INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateSummariesQuery returns the CREATE TABLE query for tempdash_session_summaries.
func getCreateSummariesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(summariesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id BIGINT NOT NULL PRIMARY KEY,
				summary_time DATETIME(6) NOT NULL,
				window_size INT NOT NULL,
				latest_temp DOUBLE NOT NULL,
				min_temp DOUBLE NOT NULL,
				max_temp DOUBLE NOT NULL,
				mean_temp DOUBLE NOT NULL,
				slope DOUBLE,
				intercept DOUBLE
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id BIGINT NOT NULL PRIMARY KEY,
				summary_time TIMESTAMPTZ NOT NULL,
				window_size INT NOT NULL,
				latest_temp DOUBLE PRECISION NOT NULL,
				min_temp DOUBLE PRECISION NOT NULL,
				max_temp DOUBLE PRECISION NOT NULL,
				mean_temp DOUBLE PRECISION NOT NULL,
				slope DOUBLE PRECISION,
				intercept DOUBLE PRECISION
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id INTEGER NOT NULL PRIMARY KEY,
				summary_time TEXT NOT NULL,
				window_size INTEGER NOT NULL,
				latest_temp REAL NOT NULL,
				min_temp REAL NOT NULL,
				max_temp REAL NOT NULL,
				mean_temp REAL NOT NULL,
				slope REAL,
				intercept REAL
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store is a no-op.
func (js *JournalStoreImpl) disabled() bool {
	return js.backend == schema.NoneBackend || js.db == nil
}

// BeginSession creates a new session row and returns its unique ID.
func (js *JournalStoreImpl) BeginSession(startTime time.Time, configParams map[string]any) (int64, error) {
	if js.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(sessionsTable, js.backend)

	var sessionID int64
	switch js.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING session_id`, quotedTableName)
		err = js.db.QueryRow(query, startTime, string(configJSON)).Scan(&sessionID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = js.db.Exec(query, formatTime(startTime, js.backend), string(configJSON))
		if err == nil {
			sessionID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}

	return sessionID, nil
}

// RecordSummary stores the final window statistics of a session.
// Recording twice for the same session replaces the earlier summary.
func (js *JournalStoreImpl) RecordSummary(sessionID int64, summary schema.SessionSummary) error {
	if js.disabled() {
		return nil
	}

	var slope, intercept sql.NullFloat64
	if summary.Trend != nil {
		slope = sql.NullFloat64{Float64: summary.Trend.Slope, Valid: true}
		intercept = sql.NullFloat64{Float64: summary.Trend.Intercept, Valid: true}
	}

	quotedTableName := quoteTableName(summariesTable, js.backend)
	ph := placeholders(js.backend, 1)
	if _, err := js.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE session_id = %s`, quotedTableName, ph[0]), sessionID); err != nil {
		return fmt.Errorf("failed to replace session summary: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (session_id, summary_time, window_size, latest_temp,
		                min_temp, max_temp, mean_temp, slope, intercept)
		VALUES (%s)
	`, quotedTableName, strings.Join(placeholders(js.backend, 9), ", "))
	args := []any{
		sessionID, formatTime(summary.SummaryTime, js.backend), summary.WindowSize, summary.LatestTemp,
		summary.Stats.Min, summary.Stats.Max, summary.Stats.Mean, slope, intercept,
	}

	if _, err := js.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert session summary: %w", err)
	}

	return nil
}

// EndSession updates the session row with completion data.
func (js *JournalStoreImpl) EndSession(sessionID int64, endTime time.Time, totalTicks int64) error {
	if js.disabled() {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(sessionsTable, js.backend)
	ph := placeholders(js.backend, 4)

	row := js.db.QueryRow(fmt.Sprintf(`SELECT start_time FROM %s WHERE session_id = %s`, quotedTableName, ph[0]), sessionID)
	startTime, err := js.scanTime(row)
	if err != nil {
		return fmt.Errorf("failed to get start_time for session %d: %w", sessionID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_ticks = %s WHERE session_id = %s`,
		quotedTableName, ph[0], ph[1], ph[2], ph[3])
	if _, err := js.db.Exec(updateQuery, formatTime(endTime, js.backend), durationMs, totalTicks, sessionID); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// scanTime reads a single time column, handling the SQLite text encoding.
func (js *JournalStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if js.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return parseTime(s)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}

// Close closes the underlying connection.
func (js *JournalStoreImpl) Close() error {
	if js.db != nil {
		return js.db.Close()
	}
	return nil
}

// GetStatus returns status information about the journal store.
func (js *JournalStoreImpl) GetStatus() (schema.JournalStatus, error) {
	status := schema.JournalStatus{
		Backend:    string(js.backend),
		Connected:  js.db != nil,
		TableSizes: make(map[string]int64),
	}

	if js.disabled() {
		return status, nil
	}

	quotedSessions := quoteTableName(sessionsTable, js.backend)

	row := js.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedSessions))
	if err := row.Scan(&status.TotalSessions); err != nil {
		return status, fmt.Errorf("failed to get total sessions: %w", err)
	}

	if status.TotalSessions > 0 {
		row = js.db.QueryRow(fmt.Sprintf("SELECT session_id FROM %s ORDER BY session_id DESC LIMIT 1", quotedSessions))
		if err := row.Scan(&status.LastSessionID); err != nil {
			return status, fmt.Errorf("failed to get last session id: %w", err)
		}

		lastSession, err := js.scanTime(js.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY session_id DESC LIMIT 1", quotedSessions)))
		if err != nil {
			return status, fmt.Errorf("failed to get last session time: %w", err)
		}
		status.LastSession = lastSession

		oldestSession, err := js.scanTime(js.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY session_id ASC LIMIT 1", quotedSessions)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest session time: %w", err)
		}
		status.OldestSession = oldestSession

		row = js.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_ticks), 0) FROM %s", quotedSessions))
		if err := row.Scan(&status.TotalTicks); err != nil {
			return status, fmt.Errorf("failed to get total ticks: %w", err)
		}
	}

	for _, table := range []string{sessionsTable, summariesTable} {
		row = js.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, js.backend)))
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllSessions retrieves all session rows from the store.
func (js *JournalStoreImpl) GetAllSessions() ([]schema.SessionRecord, error) {
	if js.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT session_id, start_time, end_time, run_duration_ms, total_ticks, config_params FROM %s ORDER BY session_id",
		quoteTableName(sessionsTable, js.backend))

	rows, err := js.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SessionRecord

	for rows.Next() {
		var record schema.SessionRecord

		switch js.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.SessionID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.TotalTicks, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan session: %w", err)
			}
			if record.StartTime, err = parseTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.SessionID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.TotalTicks, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan session: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return results, nil
}

// GetAllSummaries retrieves all session summaries from the store.
func (js *JournalStoreImpl) GetAllSummaries() ([]schema.SessionSummaryRecord, error) {
	if js.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT session_id, summary_time, window_size, latest_temp,
    min_temp, max_temp, mean_temp, slope, intercept
    FROM %s ORDER BY session_id`, quoteTableName(summariesTable, js.backend))

	rows, err := js.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query session summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SessionSummaryRecord

	for rows.Next() {
		var record schema.SessionSummaryRecord
		var summaryTimeStr string
		var summaryTime any = &record.SummaryTime
		if js.backend == schema.SQLiteBackend {
			summaryTime = &summaryTimeStr
		}

		if err := rows.Scan(&record.SessionID, summaryTime, &record.WindowSize, &record.LatestTemp,
			&record.MinTemp, &record.MaxTemp, &record.MeanTemp, &record.Slope, &record.Intercept); err != nil {
			return nil, fmt.Errorf("failed to scan session summary: %w", err)
		}
		if js.backend == schema.SQLiteBackend {
			if record.SummaryTime, err = parseTime(summaryTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse summary_time: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session summaries: %w", err)
	}

	return results, nil
}
