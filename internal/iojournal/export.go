package iojournal

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/internal/parquet"
)

// ExecuteJournalExport writes every journal session and summary to Parquet
// files named <outputFile>.sessions.parquet and <outputFile>.session_summaries.parquet.
func ExecuteJournalExport(w io.Writer, store contract.JournalStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("journal is not enabled. Set --journal-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get journal status: %w", err)
	}

	if status.TotalSessions == 0 {
		return errors.New("no journal data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total sessions: %d\n", status.TotalSessions)
	_, _ = fmt.Fprintf(w, "Total summaries: %d\n", status.TableSizes[summariesTable])

	sessions, err := store.GetAllSessions()
	if err != nil {
		return fmt.Errorf("failed to retrieve sessions: %w", err)
	}

	summaries, err := store.GetAllSummaries()
	if err != nil {
		return fmt.Errorf("failed to retrieve session summaries: %w", err)
	}

	parquetSessions := parquet.ConvertSessionRecords(sessions)
	parquetSummaries := parquet.ConvertSessionSummaryRecords(summaries)

	sessionsFile := outputFile + ".sessions.parquet"
	if err := parquet.WriteSessionRunsParquet(parquetSessions, sessionsFile); err != nil {
		return fmt.Errorf("failed to write sessions: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d sessions to: %s\n", len(parquetSessions), sessionsFile)

	summariesFile := outputFile + ".session_summaries.parquet"
	if err := parquet.WriteSessionSummariesParquet(parquetSummaries, summariesFile); err != nil {
		return fmt.Errorf("failed to write session summaries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d session summaries to: %s\n", len(parquetSummaries), summariesFile)

	return nil
}
