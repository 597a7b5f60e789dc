package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"livestock-health/internal/domain/livestock"
)

type LivestockRepo struct {
	s *Store
}

func NewLivestockRepo(s *Store) *LivestockRepo {
	return &LivestockRepo{s: s}
}

func (r *LivestockRepo) Create(ctx context.Context, a livestock.Animal) error {
	if _, err := r.GetByTag(ctx, a.OwnerUserID, a.TagNumber); err == nil {
		return livestock.ErrDuplicateTag
	} else if !errors.Is(err, livestock.ErrNotFound) {
		return err
	}
	return r.s.insert(ctx, bucketLivestock, a.ID, a.OwnerUserID, a)
}

func (r *LivestockRepo) Update(ctx context.Context, a livestock.Animal) error {
	if _, err := r.GetByID(ctx, a.ID); err != nil {
		return err
	}
	return r.s.put(ctx, bucketLivestock, a.ID, a.OwnerUserID, a)
}

func (r *LivestockRepo) GetByID(ctx context.Context, id string) (livestock.Animal, error) {
	payload, err := r.s.get(ctx, bucketLivestock, id)
	if errors.Is(err, errNoRecord) {
		return livestock.Animal{}, livestock.ErrNotFound
	}
	if err != nil {
		return livestock.Animal{}, err
	}
	var a livestock.Animal
	if err := json.Unmarshal(payload, &a); err != nil {
		return livestock.Animal{}, fmt.Errorf("decode animal %s: %w", id, err)
	}
	return a, nil
}

func (r *LivestockRepo) GetByTag(ctx context.Context, ownerUserID, tag string) (livestock.Animal, error) {
	items, err := r.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return livestock.Animal{}, err
	}
	for _, a := range items {
		if a.TagNumber == tag {
			return a, nil
		}
	}
	return livestock.Animal{}, livestock.ErrNotFound
}

func (r *LivestockRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]livestock.Animal, error) {
	payloads, err := r.s.listByOwner(ctx, bucketLivestock, ownerUserID)
	if err != nil {
		return nil, err
	}
	out := make([]livestock.Animal, 0, len(payloads))
	for _, p := range payloads {
		var a livestock.Animal
		if err := json.Unmarshal(p, &a); err != nil {
			return nil, fmt.Errorf("decode animal: %w", err)
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *LivestockRepo) Delete(ctx context.Context, id string) error {
	err := r.s.remove(ctx, bucketLivestock, id)
	if errors.Is(err, errNoRecord) {
		return livestock.ErrNotFound
	}
	return err
}
