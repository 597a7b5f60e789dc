package dosing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"livestock-health/internal/platform/logger"
)

// ProgressRepository persiste un Progress por clave (Schedule.ProgressKey).
// Get devuelve found=false si no hay registro; ErrCorruptProgress si el payload no se pudo leer.
type ProgressRepository interface {
	Get(ctx context.Context, key string) (Progress, bool, error)
	Put(ctx context.Context, key string, p Progress) error
}

// Metrics recibe los eventos del scheduler (prometheus en prod).
type Metrics interface {
	DoseTaken()
	DayAdvanced()
	AdvanceRejected(reason string)
}

type noopMetrics struct{}

func (noopMetrics) DoseTaken()             {}
func (noopMetrics) DayAdvanced()           {}
func (noopMetrics) AdvanceRejected(string) {}

const DefaultTick = time.Second

type Scheduler struct {
	repo    ProgressRepository
	log     logger.Logger
	metrics Metrics
	now     func() time.Time
	loc     *time.Location
	tick    time.Duration

	// un lock por clave: load + Put de un mismo registro no se intercalan
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

type Option func(*Scheduler)

func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(s *Scheduler) {
		if m != nil {
			s.metrics = m
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation fija la zona horaria en la que se interpretan las horas HH:MM.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithTick(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.tick = d
		}
	}
}

func NewScheduler(repo ProgressRepository, opts ...Option) *Scheduler {
	s := &Scheduler{
		repo:    repo,
		log:     logger.Nop(),
		metrics: noopMetrics{},
		now:     time.Now,
		loc:     time.Local,
		tick:    DefaultTick,
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today es la fecha actual en la zona del scheduler.
func (s *Scheduler) Today() Date {
	return DateOf(s.now(), s.loc)
}

// Day resuelve la vista de una fecha. La primera vez que se ve un tratamiento
// sin progreso guardado se crea el registro.
func (s *Scheduler) Day(ctx context.Context, sched Schedule, date Date) (DayView, error) {
	unlock := s.lockKey(sched.ProgressKey())
	defer unlock()

	progress, err := s.load(ctx, sched)
	if err != nil {
		return DayView{}, err
	}

	doses := ResolveDoses(sched, date, progress)

	if progress == nil && sched.InWindow(date) {
		fresh := Progress{
			CurrentDate:  date,
			Doses:        doses,
			TreatmentDay: sched.TreatmentDay(date),
		}
		if err := s.repo.Put(ctx, sched.ProgressKey(), fresh); err != nil {
			return DayView{}, err
		}
	}

	return s.view(sched, date, doses), nil
}

// MarkTaken marca la dosis y persiste con una sola escritura.
func (s *Scheduler) MarkTaken(ctx context.Context, sched Schedule, date Date, doseID string) (DayView, error) {
	unlock := s.lockKey(sched.ProgressKey())
	defer unlock()

	progress, err := s.load(ctx, sched)
	if err != nil {
		return DayView{}, err
	}

	doses := ResolveDoses(sched, date, progress)
	for _, d := range doses {
		if d.ID == doseID && d.Taken {
			return s.view(sched, date, doses), nil
		}
	}

	updated, found := MarkTaken(doses, doseID)
	if !found {
		s.log.Debug("dose not found", map[string]any{
			"livestock_tag": sched.LivestockTag,
			"dose_id":       doseID,
			"date":          date.String(),
		})
		return s.view(sched, date, doses), nil
	}

	record := Progress{
		CurrentDate:  date,
		Doses:        updated,
		TreatmentDay: treatmentDayOf(sched, date, progress),
	}
	if progress != nil {
		record.CustomTimes = progress.CustomTimes.clone()
	}

	if err := s.repo.Put(ctx, sched.ProgressKey(), record); err != nil {
		return DayView{}, err
	}
	s.metrics.DoseTaken()
	s.log.Info("dose marked taken", map[string]any{
		"livestock_tag": sched.LivestockTag,
		"dose_id":       doseID,
		"date":          date.String(),
	})

	return s.view(sched, date, updated), nil
}

// AdvanceDay pasa al día siguiente con las horas fijadas por el operador.
// No cambia nada si alguna validación falla.
func (s *Scheduler) AdvanceDay(ctx context.Context, sched Schedule, date Date, times map[string][]string) (DayView, error) {
	unlock := s.lockKey(sched.ProgressKey())
	defer unlock()

	progress, err := s.load(ctx, sched)
	if err != nil {
		return DayView{}, err
	}

	doses := ResolveDoses(sched, date, progress)
	if !AllTaken(doses) {
		s.metrics.AdvanceRejected("not_all_taken")
		return DayView{}, ErrNotAllTaken
	}
	if !CanAdvance(sched, date) {
		s.metrics.AdvanceRejected("no_days_remaining")
		return DayView{}, ErrNoDaysRemaining
	}

	normalized, err := ValidateNextDayTimes(sched, times)
	if err != nil {
		s.metrics.AdvanceRejected(rejectReason(err))
		return DayView{}, err
	}

	next := date.AddDays(1)

	custom := CustomTimes{}
	if progress != nil && progress.CustomTimes != nil {
		custom = progress.CustomTimes.clone()
	}
	custom[next.String()] = normalized

	record := Progress{
		CurrentDate:  next,
		Doses:        []Dose{},
		TreatmentDay: treatmentDayOf(sched, date, progress) + 1,
		CustomTimes:  custom,
	}
	if err := s.repo.Put(ctx, sched.ProgressKey(), record); err != nil {
		return DayView{}, err
	}

	s.metrics.DayAdvanced()
	s.log.Info("treatment day advanced", map[string]any{
		"livestock_tag": sched.LivestockTag,
		"from":          date.String(),
		"to":            next.String(),
		"treatment_day": record.TreatmentDay,
	})

	return s.view(sched, next, ResolveDoses(sched, next, &record)), nil
}

// lockKey serializa las operaciones sobre un mismo registro.
func (s *Scheduler) lockKey(key string) func() {
	s.locksMu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.locksMu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *Scheduler) load(ctx context.Context, sched Schedule) (*Progress, error) {
	if strings.TrimSpace(sched.LivestockTag) == "" {
		return nil, ErrInvalidSchedule
	}
	p, found, err := s.repo.Get(ctx, sched.ProgressKey())
	if err != nil {
		if errors.Is(err, ErrCorruptProgress) {
			// registro ilegible = sin progreso
			s.log.Warn("discarding unreadable progress", map[string]any{
				"progress_key": sched.ProgressKey(),
				"error":        err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

func (s *Scheduler) view(sched Schedule, date Date, doses []Dose) DayView {
	v := DayView{
		Date:         date,
		TreatmentDay: sched.TreatmentDay(date),
		Duration:     sched.Duration(),
		Doses:        doses,
		State:        StateOf(sched, date, doses),
	}
	if next, ok := NextDue(doses, date, s.now(), s.loc); ok {
		v.Next = &next
	}
	return v
}

// treatmentDayOf conserva el contador guardado si el registro es de esa fecha.
func treatmentDayOf(sched Schedule, date Date, progress *Progress) int {
	if progress != nil && progress.CurrentDate == date && progress.TreatmentDay > 0 {
		return progress.TreatmentDay
	}
	return sched.TreatmentDay(date)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTimeCount):
		return "invalid_time_count"
	case errors.Is(err, ErrInvalidTime):
		return "invalid_time"
	default:
		return "other"
	}
}
