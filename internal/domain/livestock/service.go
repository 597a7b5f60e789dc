package livestock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	TagNumber     string
	LivestockType string
	Breed         string
	Gender        Gender
	Color         string
	DateOfBirth   *time.Time
	WeightKg      float64
	HealthStatus  HealthStatus
	PurchaseDate  *time.Time
	PurchasePrice float64
	Remarks       string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Animal{}, ErrInvalidInput
	}
	tag := strings.TrimSpace(in.TagNumber)
	if tag == "" || strings.TrimSpace(in.LivestockType) == "" {
		return Animal{}, ErrInvalidInput
	}
	if in.WeightKg < 0 || in.PurchasePrice < 0 {
		return Animal{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByTag(ctx, ownerUserID, tag); err == nil {
		return Animal{}, ErrDuplicateTag
	} else if !errors.Is(err, ErrNotFound) {
		return Animal{}, err
	}

	health := in.HealthStatus
	if health == "" {
		health = HealthHealthy
	}

	now := s.now()
	a := Animal{
		ID:            uuid.NewString(),
		OwnerUserID:   ownerUserID,
		TagNumber:     tag,
		LivestockType: strings.TrimSpace(in.LivestockType),
		Breed:         strings.TrimSpace(in.Breed),
		Gender:        in.Gender,
		Color:         strings.TrimSpace(in.Color),
		DateOfBirth:   in.DateOfBirth,
		WeightKg:      in.WeightKg,
		HealthStatus:  health,
		PurchaseDate:  in.PurchaseDate,
		PurchasePrice: in.PurchasePrice,
		Remarks:       strings.TrimSpace(in.Remarks),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByTag(ctx context.Context, ownerUserID, tag string) (Animal, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByTag(ctx, ownerUserID, tag)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Animal, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// UpdateInput usa punteros para PATCH: nil = no tocar.
// TagNumber no se edita (es la clave de tratamientos y progreso).
type UpdateInput struct {
	LivestockType *string
	Breed         *string
	Gender        *Gender
	Color         *string
	DateOfBirth   *time.Time
	WeightKg      *float64
	HealthStatus  *HealthStatus
	Remarks       *string
}

func (s *Service) Update(ctx context.Context, id, actorUserID string, in UpdateInput) (Animal, error) {
	current, err := s.owned(ctx, id, actorUserID)
	if err != nil {
		return Animal{}, err
	}

	if in.LivestockType != nil {
		v := strings.TrimSpace(*in.LivestockType)
		if v == "" {
			return Animal{}, ErrInvalidInput
		}
		current.LivestockType = v
	}
	if in.Breed != nil {
		current.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		current.Gender = *in.Gender
	}
	if in.Color != nil {
		current.Color = strings.TrimSpace(*in.Color)
	}
	if in.DateOfBirth != nil {
		current.DateOfBirth = in.DateOfBirth
	}
	if in.WeightKg != nil {
		if *in.WeightKg < 0 {
			return Animal{}, ErrInvalidInput
		}
		current.WeightKg = *in.WeightKg
	}
	if in.HealthStatus != nil {
		current.HealthStatus = *in.HealthStatus
	}
	if in.Remarks != nil {
		current.Remarks = strings.TrimSpace(*in.Remarks)
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Animal{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id, actorUserID string) error {
	if _, err := s.owned(ctx, id, actorUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) owned(ctx context.Context, id, actorUserID string) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if a.OwnerUserID != actorUserID {
		return Animal{}, ErrForbidden
	}
	return a, nil
}
