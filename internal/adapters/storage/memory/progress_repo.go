package memory

import (
	"context"
	"sync"

	"livestock-health/internal/domain/dosing"
)

// ProgressRepo guarda el progreso de dosis por clave dueño/tag.
type ProgressRepo struct {
	mu    sync.RWMutex
	byTag map[string]dosing.Progress
}

func NewProgressRepo() *ProgressRepo {
	return &ProgressRepo{
		byTag: make(map[string]dosing.Progress),
	}
}

func (r *ProgressRepo) Get(ctx context.Context, tag string) (dosing.Progress, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byTag[tag]
	if !ok {
		return dosing.Progress{}, false, nil
	}
	return p.Clone(), true, nil
}

func (r *ProgressRepo) Put(ctx context.Context, tag string, p dosing.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byTag[tag] = p.Clone()
	return nil
}
