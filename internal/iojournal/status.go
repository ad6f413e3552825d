package iojournal

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/tempdash/schema"
)

// PrintJournalStatus prints journal status information.
func PrintJournalStatus(w io.Writer, status schema.JournalStatus) {
	_, _ = fmt.Fprintf(w, "Journal Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Sessions: %d\n", status.TotalSessions)
	if status.TotalSessions > 0 {
		_, _ = fmt.Fprintf(w, "Last Session ID: %d\n", status.LastSessionID)
		_, _ = fmt.Fprintf(w, "Last Session: %s\n", status.LastSession.Local().Format(schema.TimestampLayout))
		_, _ = fmt.Fprintf(w, "Oldest Session: %s\n", status.OldestSession.Local().Format(schema.TimestampLayout))
		_, _ = fmt.Fprintf(w, "Total Ticks: %d\n", status.TotalTicks)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
