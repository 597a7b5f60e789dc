package treatments

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	Create(ctx context.Context, t Treatment) error
	Update(ctx context.Context, t Treatment) error
	GetByID(ctx context.Context, id string) (Treatment, error)
	ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Treatment, error)
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	LivestockTag string
	Status       Status
}
