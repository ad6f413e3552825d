package contract

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/huangsam/tempdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Interval: "3s",
		Capacity: schema.DefaultCapacity,
		MinTemp:  schema.DefaultMinTemp,
		MaxTemp:  schema.DefaultMaxTemp,
		Output:   "text",
		Color:    "no",
		LogLevel: "info",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
		},
		{
			name:        "zero capacity",
			mutate:      func(in *ConfigRawInput) { in.Capacity = 0 },
			expectError: true,
		},
		{
			name:        "capacity above max",
			mutate:      func(in *ConfigRawInput) { in.Capacity = MaxCapacity + 1 },
			expectError: true,
		},
		{
			name:        "bad interval",
			mutate:      func(in *ConfigRawInput) { in.Interval = "soon" },
			expectError: true,
		},
		{
			name:        "interval too short",
			mutate:      func(in *ConfigRawInput) { in.Interval = "1ms" },
			expectError: true,
		},
		{
			name:        "inverted temperature range",
			mutate:      func(in *ConfigRawInput) { in.MinTemp, in.MaxTemp = 60, 50 },
			expectError: true,
		},
		{
			name:        "empty temperature range",
			mutate:      func(in *ConfigRawInput) { in.MinTemp, in.MaxTemp = 55, 55 },
			expectError: true,
		},
		{
			name:        "negative ticks",
			mutate:      func(in *ConfigRawInput) { in.Ticks = -1 },
			expectError: true,
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "parquet without file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name:   "parquet with file",
			mutate: func(in *ConfigRawInput) { in.Output, in.OutputFile = "parquet", "out.parquet" },
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "sometimes" },
			expectError: true,
		},
		{
			name:        "invalid log level",
			mutate:      func(in *ConfigRawInput) { in.LogLevel = "chatty" },
			expectError: true,
		},
		{
			name:        "invalid chart file",
			mutate:      func(in *ConfigRawInput) { in.ChartFile = "chart.gif" },
			expectError: true,
		},
		{
			name:        "invalid journal backend",
			mutate:      func(in *ConfigRawInput) { in.JournalBackend = "oracle" },
			expectError: true,
		},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput) { in.JournalBackend = "mysql" },
			expectError: true,
		},
		{
			name: "postgres with connection string",
			mutate: func(in *ConfigRawInput) {
				in.JournalBackend = "postgresql"
				in.JournalDBConnect = "host=localhost port=5432 dbname=tempdash user=u password=p"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidate_PopulatesConfig(t *testing.T) {
	input := validInput()
	input.Interval = "250ms"
	input.Capacity = 25
	input.Seed = 7
	input.Ticks = 4
	input.Output = "JSON"
	input.Color = "yes"
	input.LogLevel = "debug"
	input.ChartFile = "out/Chart.PNG"
	input.JournalBackend = "SQLite"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, 25, cfg.Capacity)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 4, cfg.Ticks)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, schema.PNGChart, cfg.ChartFormat)
	assert.Equal(t, schema.SQLiteBackend, cfg.JournalBackend)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.True(t, cfg.JournalEnabled())
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	input := validInput()
	input.Interval = ""
	input.Output = ""
	input.LogLevel = ""

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.DefaultInterval, cfg.Interval)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.JournalEnabled())
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/tempdash", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/tempdash", true},
		{"mysql missing db", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=tempdash", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=tempdash", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigParams(t *testing.T) {
	cfg := &Config{Interval: 3 * time.Second, Capacity: 10, MinTemp: 50, MaxTemp: 60, Seed: 3}
	params := cfg.ConfigParams()
	assert.Equal(t, "3s", params["interval"])
	assert.Equal(t, 10, params["capacity"])
	assert.Equal(t, int64(3), params["seed"])
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, false)

	logger.Debug("hidden")
	logger.Info("tick", "temp", 55.5)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "tick")
	assert.Contains(t, out, "temp=55.5")
}
