package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"livestock-health/internal/domain/dosing"
)

// ProgressRepo guarda un documento JSON por clave dueño/tag (upsert).
type ProgressRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db, now: time.Now}
}

func (r *ProgressRepo) Get(ctx context.Context, tag string) (dosing.Progress, bool, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM treatment_progress WHERE progress_key = $1
	`, tag).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return dosing.Progress{}, false, nil
	}
	if err != nil {
		return dosing.Progress{}, false, err
	}

	var p dosing.Progress
	if err := json.Unmarshal(payload, &p); err != nil {
		return dosing.Progress{}, false, fmt.Errorf("%w: %s: %v", dosing.ErrCorruptProgress, tag, err)
	}
	return p, true, nil
}

func (r *ProgressRepo) Put(ctx context.Context, tag string, p dosing.Progress) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("postgres: encode progress: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO treatment_progress (progress_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (progress_key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`, tag, payload, r.now().UTC())
	return err
}
