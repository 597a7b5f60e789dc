package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite" // driver modernc para migrate
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	bucketLivestock  = "livestock"
	bucketTreatments = "treatments"
	bucketProgress   = "progress"
)

var errNoRecord = errors.New("sqlite: record not found")

// Store guarda cada registro como un blob JSON en la tabla records,
// identificado por (bucket, key). Pensado para un único nodo / modo local.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open crea el archivo si hace falta y aplica las migraciones embebidas.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "livestock-health.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	if err := runMigrations(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite serializa escrituras; una conexión evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &Store{db: db, path: path, now: time.Now}, nil
}

func runMigrations(path string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// Path devuelve la ruta del archivo de base de datos.
func (s *Store) Path() string { return s.path }

func (s *Store) put(ctx context.Context, bucket, key, owner string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", bucket, key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (bucket, key, owner, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (bucket, key) DO UPDATE
		SET owner = excluded.owner, payload = excluded.payload, updated_at = excluded.updated_at
	`, bucket, key, owner, payload, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *Store) insert(ctx context.Context, bucket, key, owner string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", bucket, key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (bucket, key, owner, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, bucket, key, owner, payload, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", bucket, key, err)
	}
	return nil
}

// get devuelve errNoRecord si no existe.
func (s *Store) get(ctx context.Context, bucket, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM records WHERE bucket = ? AND key = ?`, bucket, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("select %s/%s: %w", bucket, key, err)
	}
	return payload, nil
}

func (s *Store) listByOwner(ctx context.Context, bucket, owner string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM records WHERE bucket = ? AND owner = ?`, bucket, owner)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", bucket, err)
	}
	defer func() { _ = rows.Close() }()

	var out [][]byte
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", bucket, err)
		}
		out = append(out, payload)
	}
	return out, rows.Err()
}

// remove devuelve errNoRecord si no había nada que borrar.
func (s *Store) remove(ctx context.Context, bucket, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE bucket = ? AND key = ?`, bucket, key)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", bucket, key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errNoRecord
	}
	return nil
}
