package dosing

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ResolveDoses deriva las dosis de una fecha. Solo reutiliza el flag taken
// del progreso si progress.CurrentDate == date.
func ResolveDoses(s Schedule, date Date, progress *Progress) []Dose {
	out := make([]Dose, 0)
	if !s.InWindow(date) {
		return out
	}

	taken := progress.takenFor(date)
	var custom CustomTimes
	if progress != nil {
		custom = progress.CustomTimes
	}

	for i, med := range s.Medicines {
		for j, t := range medicineTimes(med, custom.For(date, med.Name)) {
			id := DoseID(i, j, date)
			out = append(out, Dose{
				ID:            id,
				MedicineIndex: i,
				MedicineName:  med.Name,
				Dosage:        med.Dosage,
				Time:          t,
				Date:          date,
				Taken:         taken[id],
			})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Time < out[b].Time
	})
	return out
}

func medicineTimes(med Medicine, custom []string) []string {
	if len(custom) > 0 {
		return append([]string(nil), custom...)
	}

	switch med.ScheduleType {
	case ScheduleExact:
		n := med.Frequency
		if n > len(med.ExactTimes) {
			n = len(med.ExactTimes)
		}
		if n < 0 {
			n = 0
		}
		return append([]string(nil), med.ExactTimes[:n]...)
	default:
		start, err := ParseTimeOfDay(med.StartTime)
		if err != nil {
			return nil
		}
		out := make([]string, 0, med.Frequency)
		current := start
		for i := 0; i < med.Frequency; i++ {
			if i > 0 {
				current = current.AddHours(med.IntervalHours)
			}
			out = append(out, current.String())
		}
		return out
	}
}

// MarkTaken marca una dosis como tomada. Un id desconocido no cambia nada.
func MarkTaken(doses []Dose, id string) ([]Dose, bool) {
	out := append([]Dose(nil), doses...)
	found := false
	for i := range out {
		if out[i].ID == id {
			out[i].Taken = true
			found = true
		}
	}
	return out, found
}

// NextDue: si la fecha vista no es hoy, la primera dosis pendiente; si es hoy,
// la primera pendiente estrictamente posterior a now.
func NextDue(doses []Dose, viewed Date, now time.Time, loc *time.Location) (Dose, bool) {
	isToday := viewed == DateOf(now, loc)
	for _, d := range doses {
		if d.Taken {
			continue
		}
		if !isToday {
			return d, true
		}
		tod, err := ParseTimeOfDay(d.Time)
		if err != nil {
			continue
		}
		if viewed.At(tod, loc).After(now) {
			return d, true
		}
	}
	return Dose{}, false
}

func AllTaken(doses []Dose) bool {
	if len(doses) == 0 {
		return false
	}
	for _, d := range doses {
		if !d.Taken {
			return false
		}
	}
	return true
}

// CanAdvance exige que quede un día dentro de la ventana y que no sea el último día.
func CanAdvance(s Schedule, date Date) bool {
	_, end := s.Window()
	if date.AddDays(1).After(end) {
		return false
	}
	return s.TreatmentDay(date) < s.Duration()
}

func StateOf(s Schedule, date Date, doses []Dose) State {
	if !s.InWindow(date) {
		return StateOutsideWindow
	}
	// sin dosis no hay nada que esperar ni que avanzar
	if len(doses) == 0 {
		return StateNoDoses
	}
	if !AllTaken(doses) {
		return StateAwaitingDoses
	}
	if CanAdvance(s, date) {
		return StateAdvanceAvailable
	}
	if s.TreatmentDay(date) >= s.Duration() {
		return StateTreatmentFinished
	}
	return StateAllTaken
}

// ValidateNextDayTimes exige exactamente Frequency horas HH:MM por medicamento
// y devuelve las horas normalizadas.
func ValidateNextDayTimes(s Schedule, times map[string][]string) (map[string][]string, error) {
	out := make(map[string][]string, len(s.Medicines))
	for _, med := range s.Medicines {
		filled := make([]string, 0, len(times[med.Name]))
		for _, t := range times[med.Name] {
			if strings.TrimSpace(t) != "" {
				filled = append(filled, t)
			}
		}
		if len(filled) != med.Frequency {
			return nil, &TimeCountError{Medicine: med.Name, Required: med.Frequency, Got: len(filled)}
		}

		normalized := make([]string, 0, len(filled))
		for _, t := range filled {
			tod, err := ParseTimeOfDay(t)
			if err != nil {
				return nil, &InvalidTimeError{Medicine: med.Name, Value: t}
			}
			normalized = append(normalized, tod.String())
		}
		out[med.Name] = normalized
	}
	return out, nil
}

// ValidateMedicine valida las reglas mínimas para que el scheduler pueda resolver dosis.
func ValidateMedicine(m Medicine) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: medicine name required", ErrInvalidSchedule)
	}
	if m.Frequency < 1 {
		return fmt.Errorf("%w: %s frequency must be >= 1", ErrInvalidSchedule, m.Name)
	}
	if m.Duration < 1 {
		return fmt.Errorf("%w: %s duration must be >= 1", ErrInvalidSchedule, m.Name)
	}

	switch m.ScheduleType {
	case ScheduleInterval:
		if _, err := ParseTimeOfDay(m.StartTime); err != nil {
			return fmt.Errorf("%w: %s start time: %v", ErrInvalidSchedule, m.Name, err)
		}
		if m.IntervalHours <= 0 {
			return fmt.Errorf("%w: %s interval hours must be > 0", ErrInvalidSchedule, m.Name)
		}
	case ScheduleExact:
		if len(m.ExactTimes) < m.Frequency {
			return fmt.Errorf("%w: %s needs %d exact times", ErrInvalidSchedule, m.Name, m.Frequency)
		}
		for _, t := range m.ExactTimes[:m.Frequency] {
			if _, err := ParseTimeOfDay(t); err != nil {
				return fmt.Errorf("%w: %s exact time: %v", ErrInvalidSchedule, m.Name, err)
			}
		}
	default:
		return fmt.Errorf("%w: %s unknown schedule type %q", ErrInvalidSchedule, m.Name, m.ScheduleType)
	}
	return nil
}
