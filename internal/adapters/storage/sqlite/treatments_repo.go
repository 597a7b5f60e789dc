package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"livestock-health/internal/domain/treatments"
)

type TreatmentsRepo struct {
	s *Store
}

func NewTreatmentsRepo(s *Store) *TreatmentsRepo {
	return &TreatmentsRepo{s: s}
}

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	return r.s.insert(ctx, bucketTreatments, t.ID, t.OwnerUserID, t)
}

func (r *TreatmentsRepo) Update(ctx context.Context, t treatments.Treatment) error {
	if _, err := r.GetByID(ctx, t.ID); err != nil {
		return err
	}
	return r.s.put(ctx, bucketTreatments, t.ID, t.OwnerUserID, t)
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	payload, err := r.s.get(ctx, bucketTreatments, id)
	if errors.Is(err, errNoRecord) {
		return treatments.Treatment{}, treatments.ErrNotFound
	}
	if err != nil {
		return treatments.Treatment{}, err
	}
	var t treatments.Treatment
	if err := json.Unmarshal(payload, &t); err != nil {
		return treatments.Treatment{}, fmt.Errorf("decode treatment %s: %w", id, err)
	}
	return t, nil
}

func (r *TreatmentsRepo) ListByOwner(ctx context.Context, ownerUserID string, filter treatments.ListFilter) ([]treatments.Treatment, error) {
	payloads, err := r.s.listByOwner(ctx, bucketTreatments, ownerUserID)
	if err != nil {
		return nil, err
	}
	out := make([]treatments.Treatment, 0, len(payloads))
	for _, p := range payloads {
		var t treatments.Treatment
		if err := json.Unmarshal(p, &t); err != nil {
			return nil, fmt.Errorf("decode treatment: %w", err)
		}
		if filter.LivestockTag != "" && t.LivestockTag != filter.LivestockTag {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *TreatmentsRepo) Delete(ctx context.Context, id string) error {
	err := r.s.remove(ctx, bucketTreatments, id)
	if errors.Is(err, errNoRecord) {
		return treatments.ErrNotFound
	}
	return err
}
