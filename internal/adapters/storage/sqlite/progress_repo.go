package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"livestock-health/internal/domain/dosing"
)

type ProgressRepo struct {
	s *Store
}

func NewProgressRepo(s *Store) *ProgressRepo {
	return &ProgressRepo{s: s}
}

func (r *ProgressRepo) Get(ctx context.Context, tag string) (dosing.Progress, bool, error) {
	payload, err := r.s.get(ctx, bucketProgress, tag)
	if errors.Is(err, errNoRecord) {
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
	return r.s.put(ctx, bucketProgress, tag, "", p)
}
