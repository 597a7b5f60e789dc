package livestock

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateTag = errors.New("tag number already registered")
)

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	GetByTag(ctx context.Context, ownerUserID, tag string) (Animal, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Animal, error)
	Delete(ctx context.Context, id string) error
}
