// Package iojournal records dashboard sessions in a SQL journal.
package iojournal

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/schema"
)

// JournalStoreManager manages the JournalStore instance.
type JournalStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	journal      contract.JournalStore
}

var _ contract.JournalManager = &JournalStoreManager{} // Compile-time check

// GetJournalStore returns the JournalStore, or nil when journaling is disabled.
func (mgr *JournalStoreManager) GetJournalStore() contract.JournalStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.journal
}

// Global Manager instance for main logic.
var (
	Manager   = &JournalStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global journal manager.
// backend can be empty to disable journaling.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		if backend == "" {
			return
		}
		store, err := NewJournalStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize journal store: %w", err)
			return
		}
		Manager.Lock()
		Manager.journal = store
		Manager.Unlock()
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.journal != nil {
			_ = Manager.journal.Close()
		}
	})
}

// ClearJournal clears the journal for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the journal tables.
// For NoneBackend, it does nothing.
func ClearJournal(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		// Summaries first since they reference sessions
		for _, table := range []string{summariesTable, sessionsTable} {
			if err := clearSQLTable(driverFor(backend), connStr, table, backend); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported journal backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string, backend schema.DatabaseBackend) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
