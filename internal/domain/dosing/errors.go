package dosing

import (
	"errors"
	"fmt"
)

var (
	ErrNotAllTaken      = errors.New("not all doses for the day are taken")
	ErrNoDaysRemaining  = errors.New("no treatment days remaining")
	ErrInvalidTimeCount = errors.New("invalid number of times")
	ErrCorruptProgress  = errors.New("corrupt progress record")
	ErrInvalidSchedule  = errors.New("invalid schedule")
)

// TimeCountError: el operador mandó una cantidad de horas distinta a la frecuencia.
type TimeCountError struct {
	Medicine string
	Required int
	Got      int
}

func (e *TimeCountError) Error() string {
	return fmt.Sprintf("please set exactly %d time(s) for %s (got %d)", e.Required, e.Medicine, e.Got)
}

func (e *TimeCountError) Unwrap() error { return ErrInvalidTimeCount }

// InvalidTimeError: una hora que no es HH:MM.
type InvalidTimeError struct {
	Medicine string
	Value    string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time %q for %s, expected HH:MM", e.Value, e.Medicine)
}

func (e *InvalidTimeError) Unwrap() error { return ErrInvalidTime }
