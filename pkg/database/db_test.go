package database

import (
	"context"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startStalledBackend accepts PostgreSQL connections, completes the startup
// handshake and then never answers a query.
func startStalledBackend(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveStalled(conn)
		}
	}()

	return ln.Addr().String()
}

func serveStalled(conn net.Conn) {
	defer conn.Close()

	backend := pgproto3.NewBackend(conn, conn)
	for {
		msg, err := backend.ReceiveStartupMessage()
		if err != nil {
			return
		}

		switch msg.(type) {
		case *pgproto3.SSLRequest, *pgproto3.GSSEncRequest:
			if _, err := conn.Write([]byte("N")); err != nil {
				return
			}
		case *pgproto3.StartupMessage:
			backend.Send(&pgproto3.AuthenticationOk{})
			backend.Send(&pgproto3.BackendKeyData{ProcessID: 1, SecretKey: 1})
			backend.Send(&pgproto3.ReadyForQuery{TxStatus: 'I'})
			if err := backend.Flush(); err != nil {
				return
			}
			_, _ = io.Copy(io.Discard, conn)
			return
		default:
			return
		}
	}
}

func newStalledDB(t *testing.T, acquireTimeout time.Duration) (*DB, *pgxpool.Pool) {
	t.Helper()

	cfg, err := ParseConfig(PoolConfig{
		DSN:            fmt.Sprintf("postgres://velodrive@%s/velodrive?sslmode=disable", startStalledBackend(t)),
		MaxConns:       1,
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewDB(pool, acquireTimeout), pool
}

func TestDB_FailsWhenPoolStaysExhausted(t *testing.T) {
	db, pool := newStalledDB(t, 200*time.Millisecond)

	holdCtx, releaseHold := context.WithCancel(context.Background())
	held := make(chan struct{})
	go func() {
		defer close(held)
		_, _ = db.Exec(holdCtx, "SELECT pg_sleep(60)")
	}()
	t.Cleanup(func() {
		releaseHold()
		<-held
	})

	require.Eventually(t, func() bool {
		return pool.Stat().AcquiredConns() == 1
	}, 3*time.Second, 10*time.Millisecond)

	start := time.Now()
	_, err := db.Exec(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrAcquireTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)

	_, err = db.Query(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrAcquireTimeout)

	var one int
	err = db.QueryRow(context.Background(), "SELECT 1").Scan(&one)
	assert.ErrorIs(t, err, ErrAcquireTimeout)

	assert.ErrorIs(t, db.Ping(context.Background()), ErrAcquireTimeout)
}

func TestDB_CallerCancellationIsNotReportedAsTimeout(t *testing.T) {
	db, pool := newStalledDB(t, time.Minute)

	holdCtx, releaseHold := context.WithCancel(context.Background())
	held := make(chan struct{})
	go func() {
		defer close(held)
		_, _ = db.Exec(holdCtx, "SELECT pg_sleep(60)")
	}()
	t.Cleanup(func() {
		releaseHold()
		<-held
	})

	require.Eventually(t, func() bool {
		return pool.Stat().AcquiredConns() == 1
	}, 3*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := db.Exec(ctx, "SELECT 1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAcquireTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
