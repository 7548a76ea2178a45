package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rnwolfe/agenda/internal/config"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB wraps the database connection. Queries are written with ? placeholders
// and rebound for the active driver.
type DB struct {
	conn   *sql.DB
	driver string
}

// Open opens (or creates) the agenda database described by sc. The sqlite
// driver defaults to the XDG data file; postgres requires a DSN.
func Open(sc config.StoreConfig) (*DB, error) {
	driver := sc.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	var (
		conn *sql.DB
		err  error
	)
	switch driver {
	case DriverSQLite:
		conn, err = openSQLite(sc.DSN)
	case DriverPostgres:
		if sc.DSN == "" {
			return nil, fmt.Errorf("store.dsn is required for the postgres driver")
		}
		conn, err = sql.Open("pgx", sc.DSN)
		if err == nil {
			err = conn.Ping()
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn, driver: driver}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if path == "" {
		paths := config.GetPaths()
		if err := paths.EnsureDirs(); err != nil {
			return nil, fmt.Errorf("creating data dirs: %w", err)
		}
		path = paths.DBFile
	}

	conn, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}
	return conn, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the raw sql.DB for direct queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Driver reports the active driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Rebind rewrites ? placeholders to $n for postgres. Queries never contain
// literal question marks.
func (db *DB) Rebind(query string) string {
	if db.driver != DriverPostgres {
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

// migrate runs all schema migrations. Statements are portable between
// SQLite and Postgres: timestamps are RFC 3339 text written by the caller.
func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS migrations (
			name TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT ''
		)`,
		// Generic record collections (daily pages, plannings, visions).
		`CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			owner TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			data TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entities_lookup ON entities(collection, owner, date)`,
		// Key-value store for misc state
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// GetKV returns the value stored under key, or "" when absent.
func (db *DB) GetKV(key string) (string, error) {
	var v sql.NullString
	err := db.conn.QueryRow(db.Rebind(`SELECT value FROM kv WHERE key = ?`), key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading kv %q: %w", key, err)
	}
	return v.String, nil
}

// SetKV upserts a key-value pair. updatedAt is an RFC 3339 timestamp.
func (db *DB) SetKV(key, value, updatedAt string) error {
	_, err := db.conn.Exec(db.Rebind(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		key, value, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("writing kv %q: %w", key, err)
	}
	return nil
}
