package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// ErrNoSchema is returned by New when the star schema tables are missing.
var ErrNoSchema = errors.New("star schema tables not found - run create-tables first")

// Config selects and reaches the destination database.
type Config struct {
	// Driver is DriverSQLite or DriverPostgres. "postgres" is accepted as an
	// alias for DriverPostgres.
	Driver string

	// DSN is a file path for SQLite, or a libpq-style connection string
	// ("host=127.0.0.1 dbname=sparkifydb user=student password=student") or
	// URL for PostgreSQL.
	DSN string

	// ConnectAttempts bounds how many times the first ping is tried.
	// Zero means once.
	ConnectAttempts uint

	// RetryDelay is the base delay between connection attempts.
	RetryDelay time.Duration
}

// Store is the destination star schema. It holds a single connection; all
// writes go through a Tx obtained from Begin.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// New opens the database, waits until it answers a ping, and checks that
// the schema exists.
func New(ctx context.Context, config Config) (*Store, error) {
	d, err := dialectFor(config.Driver)
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, d, config)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if !hasTables(ctx, db) {
		db.Close()
		return nil, ErrNoSchema
	}

	return &Store{db: db, dialect: d}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Driver returns the database/sql driver name in use.
func (s *Store) Driver() string {
	return s.dialect.driver
}

func openDB(ctx context.Context, d dialect, config Config) (*sql.DB, error) {
	db, err := sql.Open(d.driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	attempts := config.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}
	delay := config.RetryDelay
	if delay == 0 {
		delay = time.Second
	}

	err = retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// Begin starts the transaction one input file is loaded in.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}
