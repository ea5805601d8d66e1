package db

import (
	"database/sql"
)

// Database is the connection lifecycle contract for the cache's backing store.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
