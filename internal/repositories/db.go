package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the statement API the repositories use, implemented by
// *database.DB and *pgxpool.Pool. Each call borrows a pooled connection and
// returns it once the rows are closed or the row is scanned.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// pickupPointLabelSQL renders "postal code, city, street[, house]" for alias pp.
const pickupPointLabelSQL = `CONCAT(pp.postal_code, ', ', pp.city, ', ', pp.street, COALESCE(', ' || NULLIF(pp.house, ''), ''))`
