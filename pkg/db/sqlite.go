package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"

	_ "modernc.org/sqlite"
)

// DB holds a pair of SQLite connection pools: a single-connection write pool
// to serialize writers and a wider read-only pool for queries.
type DB struct {
	read  *sql.DB
	write *sql.DB
}

// connString constructs a SQLite connection string with the PRAGMA settings
// we rely on (WAL, busy timeout, foreign keys).
func connString(file string, readonly bool) string {
	params := make(url.Values)
	params.Add("_journal_mode", "WAL")
	params.Add("_busy_timeout", "5000")
	params.Add("_synchronous", "NORMAL")
	params.Add("_cache_size", "-20000") // 20MB cache
	params.Add("_foreign_keys", "true")

	if readonly {
		params.Add("mode", "ro")
	} else {
		params.Add("_txlock", "immediate")
		params.Add("mode", "rwc")
	}

	return "file:" + file + "?" + params.Encode()
}

func openPool(file string, readonly bool) (*sql.DB, error) {
	pool, err := sql.Open("sqlite", connString(file, readonly))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// PRAGMAs that can't be set via the connection string.
	for _, pragma := range []string{"temp_store=memory", "busy_timeout=10000"} {
		if _, err := pool.Exec("PRAGMA " + pragma + ";"); err != nil {
			pool.Close()
			return nil, fmt.Errorf("set PRAGMA %s: %w", pragma, err)
		}
	}

	if readonly {
		maxConns := max(4, runtime.NumCPU())
		pool.SetMaxOpenConns(maxConns)
		pool.SetMaxIdleConns(maxConns)
	} else {
		pool.SetMaxOpenConns(1)
		pool.SetMaxIdleConns(1)
	}

	return pool, nil
}

// Open creates the database file if needed and returns both pools. The write
// pool is opened first so the file exists before the read-only pool attaches.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	write, err := openPool(path, false)
	if err != nil {
		return nil, fmt.Errorf("open write pool: %w", err)
	}
	if err := write.Ping(); err != nil {
		write.Close()
		return nil, fmt.Errorf("open write pool: %w", err)
	}

	read, err := openPool(path, true)
	if err != nil {
		write.Close()
		return nil, fmt.Errorf("open read pool: %w", err)
	}

	return &DB{read: read, write: write}, nil
}

// Read returns the read-only pool.
func (d *DB) Read() *sql.DB { return d.read }

// Write returns the serialized read-write pool.
func (d *DB) Write() *sql.DB { return d.write }

// WithTx executes fn within an immediate transaction on the write pool, so
// the write lock is taken up front instead of upgraded mid-transaction.
func (d *DB) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.write.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Close closes both pools.
func (d *DB) Close() error {
	var errs []error
	if err := d.read.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close read pool: %w", err))
	}
	if err := d.write.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close write pool: %w", err))
	}
	return errors.Join(errs...)
}
