package schema

import "time"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the session journal.
	DatabaseBackend string

	// ChartFormat represents the image format of a rendered chart.
	ChartFormat string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All journal backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All chart formats supported.
const (
	SVGChart ChartFormat = "svg"
	PNGChart ChartFormat = "png"
)

// Reading defaults.
const (
	DefaultCapacity = 10
	DefaultInterval = 3 * time.Second
	DefaultMinTemp  = 50.0
	DefaultMaxTemp  = 60.0
)

// TimestampLayout is the fixed display pattern for reading timestamps.
const TimestampLayout = time.DateTime

// TempUnit is appended to every displayed temperature.
const TempUnit = "F"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid journal backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
