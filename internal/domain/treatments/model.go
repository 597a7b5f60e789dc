package treatments

import (
	"time"

	"livestock-health/internal/domain/dosing"
)

type Treatment struct {
	ID          string
	OwnerUserID string

	LivestockTag  string
	TreatmentName string
	Diagnosis     string
	VetName       string

	TreatmentDate     dosing.Date
	NextTreatmentDate dosing.Date // zero = sin seguimiento

	Status    Status
	Medicines []dosing.Medicine
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Schedule es lo único que el scheduler lee del tratamiento.
func (t Treatment) Schedule() dosing.Schedule {
	return dosing.Schedule{
		OwnerUserID:  t.OwnerUserID,
		LivestockTag: t.LivestockTag,
		StartDate:    t.TreatmentDate,
		Medicines:    append([]dosing.Medicine(nil), t.Medicines...),
	}
}

// Deadline es un tratamiento con seguimiento clasificado respecto de hoy.
type Deadline struct {
	Treatment Treatment
	Bucket    DeadlineBucket
	DaysLeft  int // negativo = vencido
	Label     string
}
