package sqlite

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/edublog/edublog/shared/db"
	_ "modernc.org/sqlite"
)

const (
	// defaultPath is the default path for the cache database
	defaultPath = "./edublog.db"
)

type SQLiteConfig struct {
	Path string
}

func NewSQLiteConfig() *SQLiteConfig {
	path := os.Getenv("EDUBLOG_DB_PATH")
	if path == "" {
		path = defaultPath
	}

	return &SQLiteConfig{
		Path: path,
	}
}

// SQLiteDB implements the db.Database interface for SQLite
type SQLiteDB struct {
	dbPath string
	db     *sql.DB
}

// NewSQLiteDB creates the SQLite instance backing the local cache.
// If cfg.Path is empty the EDUBLOG_DB_PATH environment variable is
// consulted, falling back to "./edublog.db".
func NewSQLiteDB(cfg *SQLiteConfig) db.Database {
	path := cfg.Path
	if path == "" {
		path = NewSQLiteConfig().Path
	}

	return &SQLiteDB{
		dbPath: path,
	}
}

// Connect opens a connection to the SQLite database and runs migrations
func (s *SQLiteDB) Connect() error {
	if s.db != nil {
		return fmt.Errorf("database already connected")
	}

	conn, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// The cache is shared by every session of the same origin, so WAL
	// and a busy timeout keep concurrent sessions from erroring out.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	s.db = conn

	if err := runMigrations(conn); err != nil {
		conn.Close()
		s.db = nil
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	return err
}

// DB returns the underlying *sql.DB instance
func (s *SQLiteDB) DB() *sql.DB {
	return s.db
}
