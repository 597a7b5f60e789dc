package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"livestock-health/internal/domain/dosing"
	"livestock-health/internal/domain/treatments"
)

type treatmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]treatments.Treatment
}

func NewTreatmentsRepo() treatments.Repository {
	return &treatmentsRepo{
		byID: make(map[string]treatments.Treatment),
	}
}

func (r *treatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("treatment id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("treatment already exists")
	}
	r.byID[t.ID] = cloneTreatment(t)
	return nil
}

func (r *treatmentsRepo) Update(ctx context.Context, t treatments.Treatment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; !exists {
		return treatments.ErrNotFound
	}
	r.byID[t.ID] = cloneTreatment(t)
	return nil
}

func (r *treatmentsRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return treatments.Treatment{}, treatments.ErrNotFound
	}
	return cloneTreatment(t), nil
}

func (r *treatmentsRepo) ListByOwner(ctx context.Context, ownerUserID string, filter treatments.ListFilter) ([]treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]treatments.Treatment, 0)
	for _, t := range r.byID {
		if t.OwnerUserID != ownerUserID {
			continue
		}
		if filter.LivestockTag != "" && t.LivestockTag != filter.LivestockTag {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, cloneTreatment(t))
	}

	// Más recientes primero, como la lista de tratamientos
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *treatmentsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return treatments.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// cloneTreatment evita compartir el slice de medicamentos con el caller.
func cloneTreatment(t treatments.Treatment) treatments.Treatment {
	meds := make([]dosing.Medicine, len(t.Medicines))
	for i, m := range t.Medicines {
		m.ExactTimes = append([]string(nil), m.ExactTimes...)
		meds[i] = m
	}
	t.Medicines = meds
	return t
}
