package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"livestock-health/internal/domain/livestock"
)

type livestockRepo struct {
	mu   sync.RWMutex
	byID map[string]livestock.Animal
}

func NewLivestockRepo() livestock.Repository {
	return &livestockRepo{
		byID: make(map[string]livestock.Animal),
	}
}

func (r *livestockRepo) Create(ctx context.Context, a livestock.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	for _, other := range r.byID {
		if other.OwnerUserID == a.OwnerUserID && other.TagNumber == a.TagNumber {
			return livestock.ErrDuplicateTag
		}
	}
	r.byID[a.ID] = a
	return nil
}

func (r *livestockRepo) Update(ctx context.Context, a livestock.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return livestock.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *livestockRepo) GetByID(ctx context.Context, id string) (livestock.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return livestock.Animal{}, livestock.ErrNotFound
	}
	return a, nil
}

func (r *livestockRepo) GetByTag(ctx context.Context, ownerUserID, tag string) (livestock.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.OwnerUserID == ownerUserID && a.TagNumber == tag {
			return a, nil
		}
	}
	return livestock.Animal{}, livestock.ErrNotFound
}

func (r *livestockRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]livestock.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]livestock.Animal, 0)
	for _, a := range r.byID {
		if a.OwnerUserID == ownerUserID {
			out = append(out, a)
		}
	}

	// Orden estable por created_at asc
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *livestockRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return livestock.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
