package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"livestock-health/internal/domain/livestock"

	"github.com/jackc/pgx/v5/pgconn"
)

type LivestockRepo struct {
	db *sql.DB
}

func NewLivestockRepo(db *sql.DB) *LivestockRepo {
	return &LivestockRepo{db: db}
}

const livestockColumns = `
	id, owner_user_id,
	tag_number, livestock_type, breed, gender, color,
	date_of_birth, weight_kg, health_status,
	purchase_date, purchase_price, remarks,
	created_at, updated_at`

func (r *LivestockRepo) Create(ctx context.Context, a livestock.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO livestock (`+livestockColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		a.ID,
		a.OwnerUserID,
		a.TagNumber,
		a.LivestockType,
		a.Breed,
		string(a.Gender),
		a.Color,
		toNullDate(a.DateOfBirth),
		a.WeightKg,
		string(a.HealthStatus),
		toNullDate(a.PurchaseDate),
		a.PurchasePrice,
		a.Remarks,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return livestock.ErrDuplicateTag
	}
	return err
}

func (r *LivestockRepo) Update(ctx context.Context, a livestock.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE livestock
		SET
			livestock_type = $2,
			breed = $3,
			gender = $4,
			color = $5,
			date_of_birth = $6,
			weight_kg = $7,
			health_status = $8,
			remarks = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.LivestockType,
		a.Breed,
		string(a.Gender),
		a.Color,
		toNullDate(a.DateOfBirth),
		a.WeightKg,
		string(a.HealthStatus),
		a.Remarks,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return livestock.ErrNotFound
	}
	return nil
}

func (r *LivestockRepo) GetByID(ctx context.Context, id string) (livestock.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return livestock.Animal{}, livestock.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+livestockColumns+` FROM livestock WHERE id = $1`, id)
	return scanAnimal(row)
}

func (r *LivestockRepo) GetByTag(ctx context.Context, ownerUserID, tag string) (livestock.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+livestockColumns+`
		FROM livestock
		WHERE owner_user_id = $1 AND tag_number = $2
	`, ownerUserID, tag)
	return scanAnimal(row)
}

func (r *LivestockRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]livestock.Animal, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+livestockColumns+`
		FROM livestock
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]livestock.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *LivestockRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM livestock WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return livestock.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (livestock.Animal, error) {
	var a livestock.Animal
	var gender, health string
	var dob, purchased sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.OwnerUserID,
		&a.TagNumber,
		&a.LivestockType,
		&a.Breed,
		&gender,
		&a.Color,
		&dob,
		&a.WeightKg,
		&health,
		&purchased,
		&a.PurchasePrice,
		&a.Remarks,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return livestock.Animal{}, livestock.ErrNotFound
		}
		return livestock.Animal{}, err
	}
	a.Gender = livestock.Gender(gender)
	a.HealthStatus = livestock.HealthStatus(health)
	a.DateOfBirth = fromNullDate(dob)
	a.PurchaseDate = fromNullDate(purchased)
	return a, nil
}

// columnas DATE, las pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullDate(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
