package dosing

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time of day")
)

// Date es una fecha de calendario sin hora ni zona (YYYY-MM-DD).
// El valor cero representa "sin fecha".
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

// DateOf devuelve el día de calendario de t visto en loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return Date{year: y, month: m, day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t, time.UTC), nil
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// AddDays suma días de calendario (la aritmética normaliza fin de mes/año).
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight(time.UTC).AddDate(0, 0, n), time.UTC)
}

// DaysSince devuelve la diferencia en días enteros d - other.
func (d Date) DaysSince(other Date) int {
	return int(d.midnight(time.UTC).Sub(other.midnight(time.UTC)).Hours() / 24)
}

func (d Date) Before(other Date) bool { return d.DaysSince(other) < 0 }
func (d Date) After(other Date) bool  { return d.DaysSince(other) > 0 }

// Equal permite comparar con go-cmp sin exponer los campos.
func (d Date) Equal(other Date) bool {
	return d == other
}

// At combina la fecha con una hora del día en loc.
func (d Date) At(t TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.year, d.month, d.day, t.Hour(), t.Minute(), 0, 0, loc)
}

func (d Date) midnight(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay son minutos desde medianoche, en [0, 1440).
type TimeOfDay int

const minutesPerDay = 24 * 60

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// AddHours suma horas de reloj. Pasar de medianoche solo avanza la hora
// (no cambia la fecha de la dosis).
func (t TimeOfDay) AddHours(h float64) TimeOfDay {
	m := (int(t) + int(math.Round(h*60))) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return TimeOfDay(m)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
