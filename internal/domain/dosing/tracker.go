package dosing

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrTrackerClosed = errors.New("tracker closed")

// Tracker es el estado de una vista montada: la fecha vista, el DayView
// actual y como mucho un countdown activo hacia la próxima dosis.
//
// onTick puede leer View; no debe llamar MarkTaken, AdvanceDay ni ViewDate.
type Tracker struct {
	s        *Scheduler
	schedule Schedule
	onTick   func(Tick)

	ops sync.Mutex // serializa MarkTaken, AdvanceDay y ViewDate

	mu        sync.Mutex // protege view, countdown y closed
	view      DayView
	countdown *Countdown
	closed    bool
}

// Open monta un Tracker para la fecha. onTick puede ser nil (sin countdown).
func (s *Scheduler) Open(ctx context.Context, sched Schedule, date Date, onTick func(Tick)) (*Tracker, error) {
	v, err := s.Day(ctx, sched, date)
	if err != nil {
		return nil, err
	}
	t := &Tracker{s: s, schedule: sched, onTick: onTick}
	t.apply(v)
	return t, nil
}

func (t *Tracker) View() DayView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

func (t *Tracker) ViewDate(ctx context.Context, date Date) (DayView, error) {
	return t.do(func(Date) (DayView, error) {
		return t.s.Day(ctx, t.schedule, date)
	})
}

func (t *Tracker) MarkTaken(ctx context.Context, doseID string) (DayView, error) {
	return t.do(func(viewed Date) (DayView, error) {
		return t.s.MarkTaken(ctx, t.schedule, viewed, doseID)
	})
}

func (t *Tracker) AdvanceDay(ctx context.Context, times map[string][]string) (DayView, error) {
	return t.do(func(viewed Date) (DayView, error) {
		return t.s.AdvanceDay(ctx, t.schedule, viewed, times)
	})
}

// Close cancela el countdown. Lo ya persistido no se toca.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	old := t.countdown
	t.countdown = nil
	t.mu.Unlock()

	old.Stop()
}

func (t *Tracker) do(fn func(viewed Date) (DayView, error)) (DayView, error) {
	t.ops.Lock()
	defer t.ops.Unlock()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return DayView{}, ErrTrackerClosed
	}
	viewed := t.view.Date
	t.mu.Unlock()

	v, err := fn(viewed)
	if err != nil {
		return t.View(), err
	}
	t.apply(v)
	return v, nil
}

// apply reemplaza la vista y el countdown. Stop espera a la goroutine del
// countdown, así que se llama sin t.mu: onTick puede estar leyendo View.
// Solo hay countdown si la fecha vista es hoy y la próxima dosis es futura.
func (t *Tracker) apply(v DayView) {
	t.mu.Lock()
	t.view = v
	old := t.countdown
	t.countdown = nil
	t.mu.Unlock()

	old.Stop()

	target, ok := t.countdownTarget(v)
	if !ok {
		return
	}
	c := StartCountdown(v.Next.ID, target, t.s.tick, t.s.now, t.onTick)

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		c.Stop()
		return
	}
	t.countdown = c
	t.mu.Unlock()
}

func (t *Tracker) countdownTarget(v DayView) (time.Time, bool) {
	if t.onTick == nil || v.Next == nil || v.Date != t.s.Today() {
		return time.Time{}, false
	}
	tod, err := ParseTimeOfDay(v.Next.Time)
	if err != nil {
		return time.Time{}, false
	}
	target := v.Date.At(tod, t.s.loc)
	if !target.After(t.s.now()) {
		return time.Time{}, false
	}
	return target, true
}
