package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS livestock (
		id TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		tag_number TEXT NOT NULL,
		livestock_type TEXT NOT NULL,
		breed TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		date_of_birth DATE,
		weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
		health_status TEXT NOT NULL,
		purchase_date DATE,
		purchase_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		remarks TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (owner_user_id, tag_number)
	)`,
	`CREATE TABLE IF NOT EXISTS treatments (
		id TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		livestock_tag TEXT NOT NULL,
		treatment_name TEXT NOT NULL,
		diagnosis TEXT NOT NULL DEFAULT '',
		vet_name TEXT NOT NULL DEFAULT '',
		treatment_date DATE NOT NULL,
		next_treatment_date DATE,
		status TEXT NOT NULL,
		medicines JSONB NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS treatments_owner_idx ON treatments (owner_user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS treatment_progress (
		progress_key TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: ensure schema: %w", err)
		}
	}
	return nil
}
