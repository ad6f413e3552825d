package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/internal/iojournal"
	"github.com/huangsam/tempdash/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// journalBackendFromConfig reads and validates the journal backend settings.
// An empty backend is treated as NoneBackend.
func journalBackendFromConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backendStr := strings.ToLower(strings.TrimSpace(viper.GetString("journal-backend")))
	connStr := viper.GetString("journal-db-connect")

	backend := schema.NoneBackend
	if backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid journal backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// journalSetup loads minimal configuration needed for journal operations.
// This is used by commands that need journal access without full shared setup.
func journalSetup() error {
	backend, connStr, err := journalBackendFromConfig()
	if err != nil {
		return err
	}

	// Initialize stores with the loaded config
	if err := iojournal.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize journal: %w", err)
	}

	cfg.JournalBackend = backend
	cfg.JournalDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// journalSetupWrapper wraps journalSetup to provide PreRunE for journal commands.
func journalSetupWrapper(_ *cobra.Command, _ []string) error {
	return journalSetup()
}

// journalMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func journalMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := journalBackendFromConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetJournalDBFilePath()
	}

	cfg.JournalBackend = backend
	cfg.JournalDBConnect = connStr
	return nil
}

// sqliteJournalPath returns the SQLite file backing the journal.
func sqliteJournalPath() string {
	if cfg.JournalDBConnect != "" {
		return cfg.JournalDBConnect
	}
	return contract.GetJournalDBFilePath()
}

// journalCmd focused on session journal management.
//
// Note: Journal subcommands use minimal initialization (journalSetup) instead of
// the full sharedSetup used by the dashboard commands.
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage the session journal and its exports",
	Long: `Manage the journal of dashboard sessions.

When enabled with --journal-backend, every watch, serve, snapshot and mcp run
is recorded as a session, storing:
- Session metadata (start, end, duration, configuration, tick count)
- Aggregates of the final window (latest, min, max, mean, trend)

Individual readings are never stored.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show journal statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all journal data
  migrate - Run database schema migrations

Examples:
  # Record a session in the default SQLite journal
  tempdash snapshot --journal-backend sqlite

  # Check journal status
  tempdash journal status --journal-backend sqlite`,
}

// journalStatusCmd shows journal status.
var journalStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display journal statistics and connection details",
	Long: `Show detailed information about the session journal.

Displays:
- Backend type and connection status
- Total number of sessions stored
- Last and oldest session timestamps
- Total ticks across all sessions
- Database table sizes`,
	PreRunE: journalSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iojournal.Manager.GetJournalStore()
		if store == nil {
			fmt.Println("Journal is disabled. Set --journal-backend to enable it.")
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get journal status", err)
		}
		iojournal.PrintJournalStatus(os.Stdout, status)
	},
}

// journalClearCmd clears the journal data.
var journalClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all session journal data",
	Long: `Delete all stored sessions and their summaries.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  tempdash journal export --journal-backend sqlite --output-file backup
  tempdash journal clear --journal-backend sqlite`,
	PreRunE: journalMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iojournal.ClearJournal(cfg.JournalBackend, sqliteJournalPath(), cfg.JournalDBConnect); err != nil {
			contract.LogFatal("Failed to clear journal data", err)
		}
		fmt.Println("Journal data cleared successfully.")
	},
}

// journalExportCmd exports journal data to Parquet files.
var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session journal to Parquet for BI tools and analytics",
	Long: `Export all stored sessions and summaries to Parquet files.

Writes two files next to --output-file:
- <output-file>.sessions.parquet
- <output-file>.session_summaries.parquet

Requires: --output-file parameter

Examples:
  # Export all data
  tempdash journal export --journal-backend sqlite --output-file tempdash

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('tempdash.session_summaries.parquet')"`,
	PreRunE: journalSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iojournal.ExecuteJournalExport(os.Stdout, iojournal.Manager.GetJournalStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export journal data", err)
		}
	},
}

// journalMigrateCmd runs database migrations for the journal store.
var journalMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the session journal.

By default, migrates to the latest version. Use --target-version for specific versions.
MySQL connection strings need multiStatements=true.

Examples:
  # Migrate to latest version (default)
  tempdash journal migrate --journal-backend sqlite

  # Migrate to specific version
  tempdash journal migrate --journal-backend sqlite --target-version 1

  # Rollback all migrations
  tempdash journal migrate --journal-backend sqlite --target-version 0`,
	PreRunE: journalMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iojournal.MigrateJournal(os.Stdout, cfg.JournalBackend, cfg.JournalDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
