package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS products (
	code       TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	reference  TEXT NOT NULL DEFAULT '',
	category   TEXT NOT NULL DEFAULT 'General',
	quantity   BIGINT NOT NULL DEFAULT 0,
	price      NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS products_category_idx ON products (category)`,
	// tables created before the columns were widened
	`ALTER TABLE products ALTER COLUMN quantity TYPE BIGINT, ALTER COLUMN price TYPE NUMERIC`,
}

func Connect(dbUrl string) (*sql.DB, error) {
	if dbUrl == "" {
		return nil, errors.New("database url is empty")
	}

	db, err := sql.Open("pgx", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates the product collection, empty, when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
