package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Schema  string
	Cleanup func()
}

const schemaDDL = `
CREATE TABLE roles (
	id   SERIAL PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL
);
CREATE TABLE users (
	id             SERIAL PRIMARY KEY,
	full_name      TEXT NOT NULL,
	login          TEXT NOT NULL UNIQUE,
	password_plain TEXT NOT NULL,
	role_id        INTEGER NOT NULL REFERENCES roles(id)
);
CREATE TABLE suppliers (id SERIAL PRIMARY KEY, name TEXT NOT NULL UNIQUE);
CREATE TABLE manufacturers (id SERIAL PRIMARY KEY, name TEXT NOT NULL UNIQUE);
CREATE TABLE product_categories (id SERIAL PRIMARY KEY, name TEXT NOT NULL UNIQUE);
CREATE TABLE products (
	article          TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	unit             TEXT NOT NULL,
	price            NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
	supplier_id      INTEGER NOT NULL REFERENCES suppliers(id),
	manufacturer_id  INTEGER NOT NULL REFERENCES manufacturers(id),
	category_id      INTEGER NOT NULL REFERENCES product_categories(id),
	discount_percent INTEGER NOT NULL DEFAULT 0,
	stock_qty        INTEGER NOT NULL DEFAULT 0,
	description      TEXT,
	photo            TEXT
);
CREATE TABLE pickup_points (
	id          INTEGER PRIMARY KEY,
	postal_code TEXT NOT NULL,
	city        TEXT NOT NULL,
	street      TEXT NOT NULL,
	house       TEXT
);
CREATE TABLE orders (
	id              INTEGER PRIMARY KEY,
	order_date      DATE NOT NULL,
	delivery_date   DATE NOT NULL,
	pickup_point_id INTEGER NOT NULL REFERENCES pickup_points(id),
	user_id         INTEGER NOT NULL REFERENCES users(id),
	pickup_code     TEXT NOT NULL,
	status          TEXT NOT NULL
);
CREATE TABLE order_items (
	order_id        INTEGER NOT NULL REFERENCES orders(id),
	product_article TEXT NOT NULL REFERENCES products(article),
	qty             INTEGER NOT NULL,
	PRIMARY KEY (order_id, product_article)
);
`

// SetupTestDB connects to TEST_DATABASE_URL and creates a fresh schema with
// the application tables. The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	schema := "velodrive_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		admin.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		admin.Close()
		t.Fatalf("Failed to parse test database config: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		admin.Close()
		t.Fatalf("Failed to connect to test schema: %v", err)
	}

	db := &TestDB{
		Pool:   pool,
		Schema: schema,
		Cleanup: func() {
			pool.Close()
			_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
			admin.Close()
		},
	}
	t.Cleanup(db.Cleanup)

	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
	return db
}

// SeedCatalog inserts a small catalog: three categories, two suppliers, two
// manufacturers, productCount products with repeating prices, two pickup
// points, one user per role and orderCount orders.
func SeedCatalog(t *testing.T, db *TestDB, productCount, orderCount int) {
	t.Helper()
	ctx := context.Background()

	exec := func(sql string, args ...interface{}) {
		t.Helper()
		if _, err := db.Pool.Exec(ctx, sql, args...); err != nil {
			t.Fatalf("Failed to seed test data: %v\n%s", err, sql)
		}
	}

	exec(`INSERT INTO roles (code, name) VALUES ('admin', 'Administrator'), ('manager', 'Manager'), ('client', 'Client')`)
	exec(`INSERT INTO users (full_name, login, password_plain, role_id)
		SELECT r.name || ' User', r.code || '@velodrive.test', 'pw', r.id FROM roles r ORDER BY r.id`)
	exec(`INSERT INTO suppliers (name) VALUES ('Velo Ltd'), ('Bike Parts')`)
	exec(`INSERT INTO manufacturers (name) VALUES ('Stels'), ('Forward')`)
	exec(`INSERT INTO product_categories (name) VALUES ('Bicycles'), ('Helmets'), ('Locks')`)
	exec(`INSERT INTO pickup_points (id, postal_code, city, street, house)
		VALUES (1, '420151', 'Lesnoy', 'Vishnevaya', '32'), (2, '125061', 'Lesnoy', 'Shkolnaya', '')`)

	for i := 1; i <= productCount; i++ {
		exec(`INSERT INTO products (article, name, unit, price, supplier_id, manufacturer_id, category_id,
				discount_percent, stock_qty, description)
			VALUES ($1, $2, 'pcs', $3, $4, $5, $6, $7, $8, $9)`,
			fmt.Sprintf("BK-%03d", i),
			fmt.Sprintf("Product %d", i%4),
			fmt.Sprintf("%d.50", 100*(i%3+1)),
			i%2+1, (i+1)%2+1, i%3+1,
			(i*7)%30, i%5,
			fmt.Sprintf("Item number %d", i),
		)
	}

	statuses := []string{"New", "Completed", "Shipped"}
	for i := 1; i <= orderCount; i++ {
		exec(`INSERT INTO orders (id, order_date, delivery_date, pickup_point_id, user_id, pickup_code, status)
			VALUES ($1, DATE '2025-01-01' + $2::int, DATE '2025-01-10' + $2::int, $3, 1, $4, $5)`,
			i, i%5, i%2+1, fmt.Sprintf("%03d", 900+i), statuses[i%len(statuses)])
	}
}
