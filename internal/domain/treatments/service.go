package treatments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"livestock-health/internal/domain/dosing"
	"livestock-health/internal/domain/livestock"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
	ErrUnknownAnimal = errors.New("livestock tag not registered")
)

// LivestockLookup resuelve un tag del dueño; livestock.Service lo implementa.
type LivestockLookup interface {
	GetByTag(ctx context.Context, ownerUserID, tag string) (livestock.Animal, error)
}

type Service struct {
	repo    Repository
	animals LivestockLookup
	now     func() time.Time
	loc     *time.Location
}

func NewService(repo Repository, animals LivestockLookup) *Service {
	return &Service{
		repo:    repo,
		animals: animals,
		now:     time.Now,
		loc:     time.Local,
	}
}

// SetClock reemplaza el reloj usado para "hoy" y los timestamps.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// SetLocation fija la zona horaria usada para "hoy".
func (s *Service) SetLocation(loc *time.Location) {
	if loc != nil {
		s.loc = loc
	}
}

type CreateInput struct {
	LivestockTag      string
	TreatmentName     string
	Diagnosis         string
	VetName           string
	TreatmentDate     dosing.Date
	NextTreatmentDate dosing.Date
	Status            Status
	Medicines         []dosing.Medicine
	Notes             string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Treatment, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Treatment{}, ErrInvalidInput
	}
	tag := strings.TrimSpace(in.LivestockTag)
	if tag == "" || strings.TrimSpace(in.TreatmentName) == "" || in.TreatmentDate.IsZero() {
		return Treatment{}, ErrInvalidInput
	}
	if !in.NextTreatmentDate.IsZero() && in.NextTreatmentDate.Before(in.TreatmentDate) {
		return Treatment{}, fmt.Errorf("%w: next treatment date before treatment date", ErrInvalidInput)
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return Treatment{}, err
	}
	meds, err := validateMedicines(in.Medicines)
	if err != nil {
		return Treatment{}, err
	}
	if err := s.checkAnimal(ctx, ownerUserID, tag); err != nil {
		return Treatment{}, err
	}

	now := s.now()
	t := Treatment{
		ID:                uuid.NewString(),
		OwnerUserID:       ownerUserID,
		LivestockTag:      tag,
		TreatmentName:     strings.TrimSpace(in.TreatmentName),
		Diagnosis:         strings.TrimSpace(in.Diagnosis),
		VetName:           strings.TrimSpace(in.VetName),
		TreatmentDate:     in.TreatmentDate,
		NextTreatmentDate: in.NextTreatmentDate,
		Status:            status,
		Medicines:         meds,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Treatment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Treatment, error) {
	filter.LivestockTag = strings.TrimSpace(filter.LivestockTag)
	return s.repo.ListByOwner(ctx, ownerUserID, filter)
}

// Update reemplaza el tratamiento completo (PUT). El tag no cambia: el
// progreso de dosis está indexado por tag.
func (s *Service) Update(ctx context.Context, id, actorUserID string, in CreateInput) (Treatment, error) {
	current, err := s.owned(ctx, id, actorUserID)
	if err != nil {
		return Treatment{}, err
	}
	if tag := strings.TrimSpace(in.LivestockTag); tag != "" && tag != current.LivestockTag {
		return Treatment{}, fmt.Errorf("%w: livestock tag cannot change", ErrInvalidInput)
	}
	if strings.TrimSpace(in.TreatmentName) == "" || in.TreatmentDate.IsZero() {
		return Treatment{}, ErrInvalidInput
	}
	if !in.NextTreatmentDate.IsZero() && in.NextTreatmentDate.Before(in.TreatmentDate) {
		return Treatment{}, fmt.Errorf("%w: next treatment date before treatment date", ErrInvalidInput)
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return Treatment{}, err
	}
	meds, err := validateMedicines(in.Medicines)
	if err != nil {
		return Treatment{}, err
	}

	current.TreatmentName = strings.TrimSpace(in.TreatmentName)
	current.Diagnosis = strings.TrimSpace(in.Diagnosis)
	current.VetName = strings.TrimSpace(in.VetName)
	current.TreatmentDate = in.TreatmentDate
	current.NextTreatmentDate = in.NextTreatmentDate
	current.Status = status
	current.Medicines = meds
	current.Notes = strings.TrimSpace(in.Notes)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Treatment{}, err
	}
	return current, nil
}

// Delete borra el tratamiento; el progreso de dosis del tag se conserva.
func (s *Service) Delete(ctx context.Context, id, actorUserID string) error {
	if _, err := s.owned(ctx, id, actorUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Deadlines devuelve los seguimientos del dueño clasificados respecto de hoy.
func (s *Service) Deadlines(ctx context.Context, ownerUserID string) ([]Deadline, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID, ListFilter{})
	if err != nil {
		return nil, err
	}
	return BuildDeadlines(items, dosing.DateOf(s.now(), s.loc)), nil
}

// Readable indica si actor puede ver el tratamiento.
func Readable(t Treatment, actorUserID string, canReadAll bool) bool {
	return t.OwnerUserID == actorUserID || canReadAll
}

func (s *Service) owned(ctx context.Context, id, actorUserID string) (Treatment, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Treatment{}, err
	}
	if t.OwnerUserID != actorUserID {
		return Treatment{}, ErrForbidden
	}
	return t, nil
}

func (s *Service) checkAnimal(ctx context.Context, ownerUserID, tag string) error {
	if s.animals == nil {
		return nil
	}
	if _, err := s.animals.GetByTag(ctx, ownerUserID, tag); err != nil {
		if errors.Is(err, livestock.ErrNotFound) {
			return ErrUnknownAnimal
		}
		return err
	}
	return nil
}

func normalizeStatus(st Status) (Status, error) {
	switch st {
	case "":
		return StatusInProgress, nil
	case StatusInProgress, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, st)
}

func validateMedicines(in []dosing.Medicine) ([]dosing.Medicine, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: at least one medicine required", ErrInvalidInput)
	}
	out := make([]dosing.Medicine, 0, len(in))
	for _, m := range in {
		m.Name = strings.TrimSpace(m.Name)
		m.Dosage = strings.TrimSpace(m.Dosage)
		if m.ScheduleType == "" {
			m.ScheduleType = dosing.ScheduleInterval
		}
		if err := dosing.ValidateMedicine(m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		m.ExactTimes = append([]string(nil), m.ExactTimes...)
		out = append(out, m)
	}
	return out, nil
}
