package database

import (
	"database/sql"
	"database/sql/driver"
	"embed"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"brawlhalla-tracker/internal/config"
	"brawlhalla-tracker/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DB owns the connection pool to the backing store. The pool is replaced
// wholesale by Reconnect after a transient connection failure; the swap is
// deliberately unsynchronized with in-flight operations, so concurrent
// requests during a reconnect may each observe (and replace) a different
// pool instance. Accepted under expected load.
type DB struct {
	dsn        string
	logger     zerolog.Logger
	db         *sql.DB
	reconnects int
}

func New(cfg *config.Config, logger zerolog.Logger) (*DB, error) {
	return Open(cfg.DBPath, logger)
}

func Open(dsn string, logger zerolog.Logger) (*DB, error) {
	logger.Info().Str("dsn", dsn).Msg("connecting to database")

	db, err := openPool(dsn)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("failed to run migrations")
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database connection established")
	return &DB{dsn: dsn, logger: logger, db: db}, nil
}

// Conn returns the current pool. Callers must not retain it across a
// Reconnect; re-fetch per operation instead.
func (d *DB) Conn() *sql.DB {
	return d.db
}

// Reconnect discards the current pool and establishes a fresh one. The
// backing connection is observed to silently die under idle periods, so
// callers retry exactly once through this path.
func (d *DB) Reconnect() error {
	d.logger.Warn().Str("dsn", d.dsn).Msg("reconnecting to database")

	fresh, err := openPool(d.dsn)
	if err != nil {
		d.logger.Error().Err(err).Msg("reconnect failed")
		return fmt.Errorf("reconnect failed: %w", err)
	}
	if err := fresh.Ping(); err != nil {
		fresh.Close()
		d.logger.Error().Err(err).Msg("reconnect ping failed")
		return fmt.Errorf("reconnect failed: %w", err)
	}

	old := d.db
	d.db = fresh
	d.reconnects++
	if old != nil {
		old.Close()
	}

	d.logger.Info().Int("reconnects", d.reconnects).Msg("database reconnected")
	return nil
}

// Reconnects reports how many times the pool has been replaced.
func (d *DB) Reconnects() int {
	return d.reconnects
}

func (d *DB) Close() error {
	return d.db.Close()
}

// IsTransient reports whether err looks like a connection-level failure
// worth a single reconnect-and-retry, as opposed to a query or data error.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}

func openPool(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set %s: %w", pragma, err)
		}
	}

	return db, nil
}

func runMigrations(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Info().Msg("migrations completed successfully")
	return nil
}
