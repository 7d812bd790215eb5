package iostore

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names managed by the migrations.
const (
	attemptsTable   = "study_attempts"
	progressTable   = "study_progress"
	notebooksTable  = "study_notebooks"
	migrationsTable = "studytrack_schema_migrations"
)

// allTables lists the data tables, children first.
var allTables = []string{progressTable, notebooksTable, attemptsTable}

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// StoreImpl handles durable storage operations using various database backends.
type StoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var (
	_ contract.AttemptStore  = &StoreImpl{} // Compile-time check
	_ contract.NotebookStore = &StoreImpl{} // Compile-time check
)

// driverFor returns the database/sql driver name of a backend.
func driverFor(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "mysql"
	case schema.PostgreSQLBackend:
		return "pgx"
	default:
		return "sqlite"
	}
}

// openDB opens and pings the database of a backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	driverName := driverFor(backend)

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err := sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to open SQLite store at %q: %w", dbPath, err)
		}
		return db, nil

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		dsn, err := mysqlDSN(connStr)
		if err != nil {
			return nil, err
		}
		db, err := sql.Open(driverName, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to connect to mysql database. Check that the server is running and connection parameters are valid: %w", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err := sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to connect to postgresql database. Check that the server is running and connection parameters are valid: %w", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// mysqlDSN enables multi-statement execution, which the migration files rely on.
func mysqlDSN(connStr string) (string, error) {
	cfg, err := mysqldrv.ParseDSN(connStr)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL connection string: %w", err)
	}
	cfg.MultiStatements = true
	return cfg.FormatDSN(), nil
}

// NewStore initializes the store for a backend and migrates its schema to the latest version.
func NewStore(backend schema.DatabaseBackend, connStr string) (*StoreImpl, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled persistence
		return &StoreImpl{backend: backend, connStr: connStr}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if _, err := migrateDB(db, backend, -1); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &StoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverFor(backend),
		connStr:    connStr,
	}, nil
}

// Close closes the underlying database.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// disabled reports whether the store is a no-op.
func (s *StoreImpl) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// rebind rewrites ? placeholders into the backend's positional style.
func (s *StoreImpl) rebind(query string) string {
	return rebind(s.backend, query)
}

func rebind(backend schema.DatabaseBackend, query string) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// placeholders returns n comma-separated ? markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validateTableName guards identifiers that are interpolated into SQL.
func validateTableName(name string) error {
	if !tableNameRe.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// quoteTableName quotes a table name for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "`" + name + "`"
	default: // SQLite and PostgreSQL
		return `"` + name + `"`
	}
}

// toMillis and fromMillis convert between time.Time and the stored BIGINT column.
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
