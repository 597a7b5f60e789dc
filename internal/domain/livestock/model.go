package livestock

import "time"

// Gender del animal.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// HealthStatus tal como lo registra el productor.
type HealthStatus string

const (
	HealthHealthy        HealthStatus = "Healthy"
	HealthUnderTreatment HealthStatus = "Under Treatment"
	HealthCritical       HealthStatus = "Critical"
)

// Animal es un registro de ganado. TagNumber es único por dueño y es la
// clave con la que se cruzan tratamientos y progreso de dosis.
type Animal struct {
	ID          string
	OwnerUserID string

	TagNumber     string
	LivestockType string // cow, goat, buffalo...
	Breed         string
	Gender        Gender
	Color         string

	DateOfBirth *time.Time
	WeightKg    float64

	HealthStatus HealthStatus

	PurchaseDate  *time.Time
	PurchasePrice float64

	Remarks string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeYears calcula años cumplidos a la fecha now.
func AgeYears(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
