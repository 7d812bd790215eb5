package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for attempt storage.
	DatabaseBackend string

	// ColorRole represents how a series should be colored by a renderer.
	ColorRole string

	// ImportFormat represents the file format of an attempt import.
	ImportFormat string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All color roles supported.
const (
	PositiveRole ColorRole = "positive" // correct answers
	NegativeRole ColorRole = "negative" // incorrect answers
)

// All import formats supported.
const (
	CSVImport  ImportFormat = "csv"
	JSONImport ImportFormat = "json"
	YAMLImport ImportFormat = "yaml"
)

// Engine defaults.
const (
	DefaultPeriods     = 10  // bucket target when none is requested
	MaxPeriods         = 366 // upper bound accepted from user input
	DayGranularityMax  = 15  // ranges up to this many days get one bucket per day
	DefaultLookbackMon = 6   // months before the end used for an unbounded start
	WeeklyWindowDays   = 7
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidImportFormats maps file extensions to import formats.
var ValidImportFormats = map[string]ImportFormat{
	".csv":  CSVImport,
	".json": JSONImport,
	".yaml": YAMLImport,
	".yml":  YAMLImport,
}
