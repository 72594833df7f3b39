package repository

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// driverNames maps configured backend names to registered database/sql drivers.
var driverNames = map[string]string{
	"sqlite":   "sqlite",
	"mysql":    "mysql",
	"postgres": "postgres",
}

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// NewDB opens and pings a connection pool for driver (sqlite, mysql or
// postgres).
func NewDB(driver, dsn string) (*sqlx.DB, error) {
	name, ok := driverNames[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", driver, err)
	}

	if name == "sqlite" {
		// One writer keeps read-modify-write sequences on a single connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
