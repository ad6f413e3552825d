package contract

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/tempdash/schema"
)

// Default values for configuration.
const (
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
	MaxCapacity     = 1000
	MinInterval     = 10 * time.Millisecond
)

// Config holds the runtime configuration for the dashboard.
// This struct remains the "final, validated" config.
type Config struct {
	Interval time.Duration
	Capacity int
	MinTemp  float64
	MaxTemp  float64
	Seed     int64 // 0 = unseeded
	Ticks    int   // 0 = run until interrupted

	Output      schema.OutputMode
	OutputFile  string
	ChartFile   string
	ChartFormat schema.ChartFormat
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	Addr     string
	LogLevel slog.Level

	JournalBackend   schema.DatabaseBackend
	JournalDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Interval         string  `mapstructure:"interval"`
	Capacity         int     `mapstructure:"capacity"`
	MinTemp          float64 `mapstructure:"min-temp"`
	MaxTemp          float64 `mapstructure:"max-temp"`
	Seed             int64   `mapstructure:"seed"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Width            int     `mapstructure:"width"`
	Color            string  `mapstructure:"color"`
	LogLevel         string  `mapstructure:"log-level"`
	JournalBackend   string  `mapstructure:"journal-backend"`
	JournalDBConnect string  `mapstructure:"journal-db-connect"`

	// --- Fields from watchCmd, serveCmd and snapshotCmd flags ---
	Ticks     int    `mapstructure:"ticks"`
	ChartFile string `mapstructure:"chart-file"`
	Addr      string `mapstructure:"addr"`
}

// ConfigParams returns the settings recorded alongside a journal session.
func (c *Config) ConfigParams() map[string]any {
	return map[string]any{
		"interval": c.Interval.String(),
		"capacity": c.Capacity,
		"min_temp": c.MinTemp,
		"max_temp": c.MaxTemp,
		"seed":     c.Seed,
		"ticks":    c.Ticks,
	}
}

// JournalEnabled reports whether sessions should be recorded.
func (c *Config) JournalEnabled() bool {
	return c.JournalBackend != "" && c.JournalBackend != schema.NoneBackend
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processReadingRange(cfg, input); err != nil {
		return err
	}
	if err := processChartFile(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("journal-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("journal-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the journal backend configuration.
// An empty backend disables the journal.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.JournalBackend = schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.JournalBackend)))
	if cfg.JournalBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.JournalBackend]; !ok {
		return fmt.Errorf("invalid journal backend '%s'. must be sqlite, mysql, postgresql, none", input.JournalBackend)
	}
	cfg.JournalDBConnect = input.JournalDBConnect
	return ValidateDatabaseConnectionString(cfg.JournalBackend, cfg.JournalDBConnect)
}

// validateSimpleInputs processes and validates the scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Seed = input.Seed

	cfg.Addr = strings.TrimSpace(input.Addr)
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Interval Validation ---
	interval := schema.DefaultInterval
	if input.Interval != "" {
		interval, err = time.ParseDuration(input.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval '%s': %w", input.Interval, err)
		}
	}
	if interval < MinInterval {
		return fmt.Errorf("interval must be at least %s (received %s)", MinInterval, interval)
	}
	cfg.Interval = interval

	// --- 2. Capacity Validation ---
	if input.Capacity <= 0 || input.Capacity > MaxCapacity {
		return fmt.Errorf("capacity must be greater than 0 and cannot exceed %d (received %d)", MaxCapacity, input.Capacity)
	}
	cfg.Capacity = input.Capacity

	// --- 3. Ticks Validation ---
	if input.Ticks < 0 {
		return fmt.Errorf("ticks cannot be negative (received %d)", input.Ticks)
	}
	cfg.Ticks = input.Ticks

	// --- 4. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 5. Log Level Validation ---
	level := input.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}

	return nil
}

// processReadingRange validates the generator bounds.
func processReadingRange(cfg *Config, input *ConfigRawInput) error {
	if input.MinTemp >= input.MaxTemp {
		return fmt.Errorf("min-temp (%.1f) must be below max-temp (%.1f)", input.MinTemp, input.MaxTemp)
	}
	cfg.MinTemp = input.MinTemp
	cfg.MaxTemp = input.MaxTemp
	return nil
}

// processChartFile derives the chart format from the chart file extension.
func processChartFile(cfg *Config, input *ConfigRawInput) error {
	cfg.ChartFile = strings.TrimSpace(input.ChartFile)
	if cfg.ChartFile == "" {
		cfg.ChartFormat = ""
		return nil
	}
	format, err := ChartFormatFromPath(cfg.ChartFile)
	if err != nil {
		return err
	}
	cfg.ChartFormat = format
	return nil
}

// ChartFormatFromPath maps a file extension to a chart format.
func ChartFormatFromPath(path string) (schema.ChartFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return schema.SVGChart, nil
	case ".png":
		return schema.PNGChart, nil
	default:
		return "", fmt.Errorf("unsupported chart file '%s'. must end in .svg or .png", path)
	}
}
