package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"livestock-health/internal/domain/dosing"
	"livestock-health/internal/domain/treatments"
)

type TreatmentsRepo struct {
	db *sql.DB
}

func NewTreatmentsRepo(db *sql.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

const treatmentColumns = `
	id, owner_user_id, livestock_tag,
	treatment_name, diagnosis, vet_name,
	treatment_date, next_treatment_date,
	status, medicines, notes,
	created_at, updated_at`

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	meds, err := json.Marshal(t.Medicines)
	if err != nil {
		return fmt.Errorf("postgres: encode medicines: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO treatments (`+treatmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		t.ID,
		t.OwnerUserID,
		t.LivestockTag,
		t.TreatmentName,
		t.Diagnosis,
		t.VetName,
		dateValue(t.TreatmentDate),
		nullDate(t.NextTreatmentDate),
		string(t.Status),
		meds,
		t.Notes,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TreatmentsRepo) Update(ctx context.Context, t treatments.Treatment) error {
	meds, err := json.Marshal(t.Medicines)
	if err != nil {
		return fmt.Errorf("postgres: encode medicines: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE treatments
		SET
			treatment_name = $2,
			diagnosis = $3,
			vet_name = $4,
			treatment_date = $5,
			next_treatment_date = $6,
			status = $7,
			medicines = $8,
			notes = $9,
			updated_at = $10
		WHERE id = $1
	`,
		t.ID,
		t.TreatmentName,
		t.Diagnosis,
		t.VetName,
		dateValue(t.TreatmentDate),
		nullDate(t.NextTreatmentDate),
		string(t.Status),
		meds,
		t.Notes,
		t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return treatments.ErrNotFound
	}
	return nil
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return treatments.Treatment{}, treatments.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+treatmentColumns+` FROM treatments WHERE id = $1`, id)
	return scanTreatment(row)
}

func (r *TreatmentsRepo) ListByOwner(ctx context.Context, ownerUserID string, filter treatments.ListFilter) ([]treatments.Treatment, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	q := `SELECT ` + treatmentColumns + ` FROM treatments WHERE owner_user_id = $1`
	args := []any{ownerUserID}
	if filter.LivestockTag != "" {
		args = append(args, filter.LivestockTag)
		q += fmt.Sprintf(" AND livestock_tag = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.Treatment, 0)
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TreatmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return treatments.ErrNotFound
	}
	return nil
}

func scanTreatment(row rowScanner) (treatments.Treatment, error) {
	var t treatments.Treatment
	var start time.Time
	var next sql.NullTime
	var status string
	var meds []byte
	if err := row.Scan(
		&t.ID,
		&t.OwnerUserID,
		&t.LivestockTag,
		&t.TreatmentName,
		&t.Diagnosis,
		&t.VetName,
		&start,
		&next,
		&status,
		&meds,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return treatments.Treatment{}, treatments.ErrNotFound
		}
		return treatments.Treatment{}, err
	}

	// DATE llega como medianoche UTC
	t.TreatmentDate = dosing.DateOf(start, time.UTC)
	if next.Valid {
		t.NextTreatmentDate = dosing.DateOf(next.Time, time.UTC)
	}
	t.Status = treatments.Status(status)
	if err := json.Unmarshal(meds, &t.Medicines); err != nil {
		return treatments.Treatment{}, fmt.Errorf("postgres: decode medicines for %s: %w", t.ID, err)
	}
	return t, nil
}

func dateValue(d dosing.Date) string {
	return d.String()
}

func nullDate(d dosing.Date) sql.NullString {
	if d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
