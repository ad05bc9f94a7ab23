// Package sqlite provides SQLite-based storage for brand insights.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; this also keeps ":memory:" a single database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON"}
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// childTables lists the tables holding nested collections of an insights
// row, all keyed by insights_id.
var childTables = []string{
	"products",
	"policies",
	"faqs",
	"social_handles",
	"important_links",
	"contact_points",
	"extraction_errors",
}

func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS insights (
			id TEXT PRIMARY KEY,
			domain TEXT NOT NULL UNIQUE,
			brand_name TEXT NOT NULL DEFAULT '',
			brand_description TEXT NOT NULL DEFAULT '',
			brand_story TEXT NOT NULL DEFAULT '',
			total_products INTEGER NOT NULL DEFAULT 0,
			extraction_success INTEGER NOT NULL DEFAULT 0,
			extraction_timestamp TEXT NOT NULL,
			fingerprint TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS products (
			insights_id TEXT NOT NULL REFERENCES insights(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			is_hero INTEGER NOT NULL DEFAULT 0,
			external_id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			handle TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '',
			compare_at_price TEXT NOT NULL DEFAULT '',
			availability INTEGER NOT NULL DEFAULT 1,
			image_url TEXT NOT NULL DEFAULT '',
			product_url TEXT NOT NULL DEFAULT '',
			vendor TEXT NOT NULL DEFAULT '',
			product_type TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]'
		);

		CREATE TABLE IF NOT EXISTS policies (
			insights_id TEXT NOT NULL REFERENCES insights(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (insights_id, kind)
		);

		CREATE TABLE IF NOT EXISTS faqs (
			insights_id TEXT NOT NULL REFERENCES insights(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS social_handles (
			insights_id TEXT NOT NULL REFERENCES insights(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			platform TEXT NOT NULL,
			url TEXT NOT NULL,
			username TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS important_links (
			insights_id TEXT NOT NULL REFERENCES insights(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			category TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS contact_points (
			insights_id TEXT NOT NULL REFERENCES insights(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS extraction_errors (
			insights_id TEXT NOT NULL REFERENCES insights(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			message TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_products_insights_id ON products(insights_id);
		CREATE INDEX IF NOT EXISTS idx_faqs_insights_id ON faqs(insights_id);
		CREATE INDEX IF NOT EXISTS idx_social_handles_insights_id ON social_handles(insights_id);
		CREATE INDEX IF NOT EXISTS idx_important_links_insights_id ON important_links(insights_id);
		CREATE INDEX IF NOT EXISTS idx_contact_points_insights_id ON contact_points(insights_id);
		CREATE INDEX IF NOT EXISTS idx_extraction_errors_insights_id ON extraction_errors(insights_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
