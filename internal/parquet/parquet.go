// Package parquet provides data structures and functions for exporting tempdash
// journal data and reading windows to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/tempdash/schema"
	"github.com/parquet-go/parquet-go"
)

// SessionRun represents a single dashboard session with metadata.
// This struct maps to the tempdash_sessions database table.
type SessionRun struct {
	// SessionID is the unique identifier for this session
	SessionID int64 `parquet:"session_id,snappy"`

	// StartTime is when the session began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the session stopped (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the session duration in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalTicks is the number of ticks the scheduler ran
	TotalTicks int64 `parquet:"total_ticks,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// SessionSummary holds the aggregate statistics of a session's final window.
// This struct maps to the tempdash_session_summaries database table.
type SessionSummary struct {
	SessionID   int64     `parquet:"session_id,snappy"`
	SummaryTime time.Time `parquet:"summary_time,snappy"`
	WindowSize  int32     `parquet:"window_size,snappy"`
	LatestTemp  float64   `parquet:"latest_temp,snappy"`
	MinTemp     float64   `parquet:"min_temp,snappy"`
	MaxTemp     float64   `parquet:"max_temp,snappy"`
	MeanTemp    float64   `parquet:"mean_temp,snappy"`

	// Slope and Intercept are null when the window held fewer than two readings
	Slope     *float64 `parquet:"slope,optional,snappy"`
	Intercept *float64 `parquet:"intercept,optional,snappy"`
}

// Reading is one row of a reading window export.
type Reading struct {
	Temp      float64   `parquet:"temp,snappy"`
	Time      time.Time `parquet:"time,snappy"`
	Timestamp string    `parquet:"timestamp,snappy"`
}

// WriteSessionRunsParquet writes a slice of SessionRun structs to a Parquet file.
func WriteSessionRunsParquet(data []SessionRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteSessionSummariesParquet writes a slice of SessionSummary structs to a Parquet file.
func WriteSessionSummariesParquet(data []SessionSummary, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteReadingsParquet writes a slice of Reading structs to a Parquet file.
func WriteReadingsParquet(data []Reading, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteReadings writes readings as a Parquet stream to w.
func WriteReadings(w io.Writer, data []Reading) error {
	return write(w, data)
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// write encodes data with a schema inferred from T's struct tags.
func write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// MockFetchSessionRuns generates sample SessionRun data for demonstration.
func MockFetchSessionRuns() []SessionRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"capacity":10,"interval":"3s","seed":0}`

	startTime2 := now.Add(-10 * time.Minute)
	// Note: endTime2, durationMs2, configParams2 are nil to demonstrate nullable fields

	return []SessionRun{
		{
			SessionID:     1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			TotalTicks:    600,
			ConfigParams:  &configParams1,
		},
		{
			SessionID:  2,
			StartTime:  startTime2,
			TotalTicks: 0,
		},
	}
}

// MockFetchSessionSummaries generates sample SessionSummary data for demonstration.
func MockFetchSessionSummaries() []SessionSummary {
	now := time.Now()
	slope, intercept := 0.12, 54.3

	return []SessionSummary{
		{
			SessionID:   1,
			SummaryTime: now.Add(-1*time.Hour - 30*time.Minute),
			WindowSize:  10,
			LatestTemp:  56.1,
			MinTemp:     50.4,
			MaxTemp:     59.8,
			MeanTemp:    55.02,
			Slope:       &slope,
			Intercept:   &intercept,
		},
		{
			SessionID:   2,
			SummaryTime: now,
			WindowSize:  1,
			LatestTemp:  52.7,
			MinTemp:     52.7,
			MaxTemp:     52.7,
			MeanTemp:    52.7,
		},
	}
}

// ConvertSessionRecords converts schema.SessionRecord to SessionRun for Parquet export.
func ConvertSessionRecords(records []schema.SessionRecord) []SessionRun {
	result := make([]SessionRun, len(records))
	for i, record := range records {
		result[i] = SessionRun{
			SessionID:     record.SessionID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalTicks:    record.TotalTicks,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertSessionSummaryRecords converts schema.SessionSummaryRecord to SessionSummary for Parquet export.
func ConvertSessionSummaryRecords(records []schema.SessionSummaryRecord) []SessionSummary {
	result := make([]SessionSummary, len(records))
	for i, record := range records {
		result[i] = SessionSummary{
			SessionID:   record.SessionID,
			SummaryTime: record.SummaryTime,
			WindowSize:  record.WindowSize,
			LatestTemp:  record.LatestTemp,
			MinTemp:     record.MinTemp,
			MaxTemp:     record.MaxTemp,
			MeanTemp:    record.MeanTemp,
			Slope:       record.Slope,
			Intercept:   record.Intercept,
		}
	}
	return result
}

// ConvertReadings converts schema.Reading to Reading for Parquet export.
func ConvertReadings(readings []schema.Reading) []Reading {
	result := make([]Reading, len(readings))
	for i, r := range readings {
		result[i] = Reading{Temp: r.Temp, Time: r.Time, Timestamp: r.Timestamp}
	}
	return result
}
