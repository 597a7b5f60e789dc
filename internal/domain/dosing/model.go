package dosing

import "fmt"

type ScheduleType string

const (
	ScheduleInterval ScheduleType = "interval"
	ScheduleExact    ScheduleType = "exact"
)

// Medicine es un medicamento dentro de un tratamiento.
type Medicine struct {
	Name   string `json:"name" yaml:"name"`
	Dosage string `json:"dosage" yaml:"dosage"`

	Frequency int `json:"frequency" yaml:"frequency"` // dosis por día
	Duration  int `json:"duration" yaml:"duration"`   // días desde el inicio del tratamiento

	ScheduleType  ScheduleType `json:"scheduleType" yaml:"scheduleType"`
	StartTime     string       `json:"startTime,omitempty" yaml:"startTime"`
	IntervalHours float64      `json:"intervalHours,omitempty" yaml:"intervalHours"`
	ExactTimes    []string     `json:"exactTimes,omitempty" yaml:"exactTimes"`
}

// Schedule es la vista de solo lectura de un tratamiento que necesita el scheduler.
type Schedule struct {
	OwnerUserID  string
	LivestockTag string
	StartDate    Date
	Medicines    []Medicine
}

// ProgressKey identifica el registro de progreso: el tag solo es único por dueño.
func (s Schedule) ProgressKey() string {
	if s.OwnerUserID == "" {
		return s.LivestockTag
	}
	return s.OwnerUserID + "/" + s.LivestockTag
}

// Duration usa la duración del primer medicamento para todo el tratamiento.
func (s Schedule) Duration() int {
	if len(s.Medicines) == 0 {
		return 0
	}
	return s.Medicines[0].Duration
}

// Window devuelve [inicio, inicio+duración], ambos inclusive.
func (s Schedule) Window() (Date, Date) {
	return s.StartDate, s.StartDate.AddDays(s.Duration())
}

func (s Schedule) InWindow(d Date) bool {
	start, end := s.Window()
	return !d.Before(start) && !d.After(end)
}

// TreatmentDay es el día 1-based del tratamiento para d.
func (s Schedule) TreatmentDay(d Date) int {
	return d.DaysSince(s.StartDate) + 1
}

// Dose es una administración programada de un medicamento en una fecha.
type Dose struct {
	ID            string `json:"id"`
	MedicineIndex int    `json:"medicineIndex"`
	MedicineName  string `json:"medicineName"`
	Dosage        string `json:"dosage,omitempty"`
	Time          string `json:"time"`
	Date          Date   `json:"date"`
	Taken         bool   `json:"taken"`
}

// DoseID es estable por (medicamento, índice de dosis, fecha); no depende
// del nombre para evitar colisiones entre medicamentos repetidos.
func DoseID(medicineIndex, doseIndex int, d Date) string {
	return fmt.Sprintf("m%d-d%d-%s", medicineIndex, doseIndex, d)
}

// CustomTimes: fecha -> medicamento -> horas HH:MM fijadas por el operador.
type CustomTimes map[string]map[string][]string

func (c CustomTimes) For(d Date, medicine string) []string {
	if c == nil {
		return nil
	}
	return c[d.String()][medicine]
}

func (c CustomTimes) clone() CustomTimes {
	if c == nil {
		return nil
	}
	out := make(CustomTimes, len(c))
	for date, byMed := range c {
		inner := make(map[string][]string, len(byMed))
		for name, times := range byMed {
			inner[name] = append([]string(nil), times...)
		}
		out[date] = inner
	}
	return out
}

// Progress es el registro persistido por livestock tag.
type Progress struct {
	CurrentDate  Date        `json:"currentDate"`
	Doses        []Dose      `json:"doses"`
	TreatmentDay int         `json:"treatmentDay"`
	CustomTimes  CustomTimes `json:"customTimes,omitempty"`
}

// Clone devuelve una copia profunda (los repos no deben compartir slices/maps).
func (p Progress) Clone() Progress {
	out := p
	out.Doses = append([]Dose(nil), p.Doses...)
	out.CustomTimes = p.CustomTimes.clone()
	return out
}

func (p *Progress) takenFor(d Date) map[string]bool {
	if p == nil || p.CurrentDate != d {
		return nil
	}
	out := make(map[string]bool, len(p.Doses))
	for _, dose := range p.Doses {
		if dose.Taken {
			out[dose.ID] = true
		}
	}
	return out
}

type State string

const (
	StateOutsideWindow     State = "outside-window"
	StateNoDoses           State = "no-doses" // en ventana pero sin horarios resolubles
	StateAwaitingDoses     State = "awaiting-doses"
	StateAllTaken          State = "all-taken"
	StateAdvanceAvailable  State = "advance-available"
	StateTreatmentFinished State = "treatment-finished"
)

// DayView es lo que una vista renderiza para una fecha.
type DayView struct {
	Date         Date   `json:"date"`
	TreatmentDay int    `json:"treatmentDay"`
	Duration     int    `json:"duration"`
	Doses        []Dose `json:"doses"`
	Next         *Dose  `json:"next,omitempty"`
	State        State  `json:"state"`
}
