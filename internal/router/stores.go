package router

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mem "livestock-health/internal/adapters/storage/memory"
	pg "livestock-health/internal/adapters/storage/postgres"
	s3store "livestock-health/internal/adapters/storage/s3"
	"livestock-health/internal/adapters/storage/sqlite"
	"livestock-health/internal/config"
	"livestock-health/internal/domain/dosing"
	"livestock-health/internal/domain/livestock"
	"livestock-health/internal/domain/treatments"
	"livestock-health/internal/platform/logger"
)

// Stores agrupa los repos que usa el router. Campos nil => in-memory.
type Stores struct {
	Livestock  livestock.Repository
	Treatments treatments.Repository
	Progress   dosing.ProgressRepository

	closers []func() error
}

// Close libera las conexiones abiertas por OpenStores.
func (s Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s Stores) withDefaults() Stores {
	if s.Livestock == nil {
		s.Livestock = mem.NewLivestockRepo()
	}
	if s.Treatments == nil {
		s.Treatments = mem.NewTreatmentsRepo()
	}
	if s.Progress == nil {
		s.Progress = mem.NewProgressRepo()
	}
	return s
}

// OpenStores arma los repos según cfg.Storage y cfg.Progress. cfg ya validada.
func OpenStores(ctx context.Context, cfg *config.Config, log logger.Logger) (Stores, error) {
	if log == nil {
		log = logger.Nop()
	}
	var (
		st Stores
		db *sql.DB
		sq *sqlite.Store
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		opened, err := pg.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			return Stores{}, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx, opened); err != nil {
			_ = opened.Close()
			return Stores{}, fmt.Errorf("ensure schema: %w", err)
		}
		db = opened
		st.closers = append(st.closers, db.Close)
		st.Livestock = pg.NewLivestockRepo(db)
		st.Treatments = pg.NewTreatmentsRepo(db)

	case config.DriverSQLite:
		opened, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return Stores{}, fmt.Errorf("open sqlite: %w", err)
		}
		sq = opened
		st.closers = append(st.closers, sq.Close)
		st.Livestock = sqlite.NewLivestockRepo(sq)
		st.Treatments = sqlite.NewTreatmentsRepo(sq)

	default:
		st.Livestock = mem.NewLivestockRepo()
		st.Treatments = mem.NewTreatmentsRepo()
	}

	switch cfg.ProgressDriver() {
	case config.DriverPostgres:
		st.Progress = pg.NewProgressRepo(db)
	case config.DriverSQLite:
		st.Progress = sqlite.NewProgressRepo(sq)
	case config.DriverS3:
		repo, err := s3store.New(ctx, s3store.Config{
			Region:    cfg.Progress.S3.Region,
			Bucket:    cfg.Progress.S3.Bucket,
			Endpoint:  cfg.Progress.S3.Endpoint,
			PathStyle: cfg.Progress.S3.PathStyle,
			Prefix:    cfg.Progress.S3.Prefix,

			AccessKeyID:     cfg.Progress.S3.AccessKeyID,
			SecretAccessKey: cfg.Progress.S3.SecretAccessKey,
		})
		if err != nil {
			_ = st.Close()
			return Stores{}, fmt.Errorf("open s3 progress store: %w", err)
		}
		st.Progress = repo
	default:
		st.Progress = mem.NewProgressRepo()
	}

	log.Info("storage ready", map[string]any{
		"storage":  cfg.Storage.Driver,
		"progress": cfg.ProgressDriver(),
	})
	return st, nil
}
