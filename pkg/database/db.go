package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAcquireTimeout is returned when no pooled connection became free
// within the acquire timeout.
var ErrAcquireTimeout = errors.New("timed out waiting for a database connection")

// DB runs each statement on a connection borrowed from the pool. Waiting
// for a free connection is bounded by the acquire timeout; the statement
// itself runs under the caller's context.
type DB struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

// NewDB wraps pool. A non-positive acquireTimeout waits on the caller's
// context alone.
func NewDB(pool *pgxpool.Pool, acquireTimeout time.Duration) *DB {
	return &DB{pool: pool, acquireTimeout: acquireTimeout}
}

func (db *DB) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if db.acquireTimeout <= 0 {
		return db.pool.Acquire(ctx)
	}

	acquireCtx, cancel := context.WithTimeout(ctx, db.acquireTimeout)
	defer cancel()

	conn, err := db.pool.Acquire(acquireCtx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrAcquireTimeout, db.acquireTimeout)
		}
		return nil, err
	}
	return conn, nil
}

func (db *DB) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	conn, err := db.acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer conn.Release()

	return conn.Exec(ctx, sql, arguments...)
}

// Query returns rows that give the connection back when they are closed or
// fully read.
func (db *DB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	conn, err := db.acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		conn.Release()
		return nil, err
	}
	return &releasingRows{Rows: rows, release: conn.Release}, nil
}

// QueryRow defers acquisition errors to Scan, like pgxpool does.
func (db *DB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	conn, err := db.acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return &releasingRow{row: conn.QueryRow(ctx, sql, args...), release: conn.Release}
}

// Ping checks one pooled connection.
func (db *DB) Ping(ctx context.Context) error {
	conn, err := db.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return conn.Ping(ctx)
}

type releasingRows struct {
	pgx.Rows
	once    sync.Once
	release func()
}

func (r *releasingRows) Close() {
	r.Rows.Close()
	r.once.Do(r.release)
}

func (r *releasingRows) Next() bool {
	if r.Rows.Next() {
		return true
	}
	r.Close()
	return false
}

type releasingRow struct {
	row     pgx.Row
	release func()
}

func (r *releasingRow) Scan(dest ...interface{}) error {
	defer r.release()
	return r.row.Scan(dest...)
}

type errRow struct {
	err error
}

func (e errRow) Scan(dest ...interface{}) error { return e.err }
