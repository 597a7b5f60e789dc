package treatments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"livestock-health/internal/domain/dosing"

	"github.com/go-chi/chi/v5"
)

// advanceRequest lleva las horas del día siguiente por medicamento.
type advanceRequest struct {
	Times map[string][]string `json:"times"`
}

// getScheduleHandler godoc
// @Summary Dosis del día
// @Description Resuelve las dosis de la fecha (por defecto hoy) con su estado de toma, la próxima dosis y si se puede avanzar de día. La primera consulta dentro de la ventana crea el registro de progreso.
// @Tags schedule
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param treatmentID path string true "ID del tratamiento"
// @Param date query string false "Fecha YYYY-MM-DD"
// @Success 200 {object} dosing.DayView
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "treatment not found"
// @Router /treatments/{treatmentID}/schedule [get]
func getScheduleHandler(svc *Service, sched *dosing.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, date, ok := loadScheduleTarget(w, r, svc, sched)
		if !ok {
			return
		}

		v, err := sched.Day(r.Context(), t.Schedule(), date)
		if err != nil {
			writeScheduleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// markTakenHandler godoc
// @Summary Marcar dosis tomada
// @Description Marca la dosis como tomada. Idempotente: repetir no cambia nada.
// @Tags schedule
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param treatmentID path string true "ID del tratamiento"
// @Param doseID path string true "ID de la dosis"
// @Param date query string false "Fecha YYYY-MM-DD"
// @Success 200 {object} dosing.DayView
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "treatment not found"
// @Router /treatments/{treatmentID}/schedule/doses/{doseID}/taken [post]
func markTakenHandler(svc *Service, sched *dosing.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, date, ok := loadScheduleTarget(w, r, svc, sched)
		if !ok {
			return
		}

		v, err := sched.MarkTaken(r.Context(), t.Schedule(), date, chi.URLParam(r, "doseID"))
		if err != nil {
			writeScheduleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// advanceDayHandler godoc
// @Summary Avanzar al día siguiente
// @Description Requiere todas las dosis del día tomadas y días restantes. Las horas enviadas se guardan para el día siguiente; la cantidad por medicamento debe coincidir con su frecuencia.
// @Tags schedule
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param treatmentID path string true "ID del tratamiento"
// @Param date query string false "Fecha YYYY-MM-DD"
// @Param payload body advanceRequest true "Horas HH:MM por nombre de medicamento"
// @Success 200 {object} dosing.DayView
// @Failure 400 {string} string "invalid json / date must be YYYY-MM-DD"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "treatment not found"
// @Failure 409 {string} string "not all doses taken / no treatment days remaining"
// @Failure 422 {string} string "please set exactly N time(s) for MEDICINE"
// @Router /treatments/{treatmentID}/schedule/advance [post]
func advanceDayHandler(svc *Service, sched *dosing.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, date, ok := loadScheduleTarget(w, r, svc, sched)
		if !ok {
			return
		}

		var req advanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := sched.AdvanceDay(r.Context(), t.Schedule(), date, req.Times)
		if err != nil {
			writeScheduleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// countdownHandler godoc
// @Summary Cuenta regresiva a la próxima dosis
// @Description Stream Server-Sent Events. Envía un evento `view` con el DayView y luego eventos `tick` cada segundo hasta que la dosis vence ("Due now!"). Solo hay ticks si la fecha es hoy. El timer se cancela al cerrar la conexión.
// @Tags schedule
// @Produce text/event-stream
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param treatmentID path string true "ID del tratamiento"
// @Param date query string false "Fecha YYYY-MM-DD"
// @Success 200 {string} string "event stream"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "treatment not found"
// @Router /treatments/{treatmentID}/schedule/countdown [get]
func countdownHandler(svc *Service, sched *dosing.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, date, ok := loadScheduleTarget(w, r, svc, sched)
		if !ok {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		ticks := make(chan dosing.Tick)
		onTick := func(tk dosing.Tick) {
			select {
			case ticks <- tk:
			case <-ctx.Done():
			}
		}

		tracker, err := sched.Open(ctx, t.Schedule(), date, onTick)
		if err != nil {
			cancel()
			writeScheduleError(w, err)
			return
		}
		// cancel corre antes que Close: Close espera al countdown y onTick
		// solo se desbloquea con ctx cancelado.
		defer tracker.Close()
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		if err := writeEvent(w, "view", tracker.View()); err != nil {
			return
		}
		flusher.Flush()

		for {
			select {
			case <-ctx.Done():
				return
			case tk := <-ticks:
				if err := writeEvent(w, "tick", tk); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b)
	return err
}

// loadScheduleTarget resuelve tratamiento accesible + fecha (?date=, default hoy).
func loadScheduleTarget(w http.ResponseWriter, r *http.Request, svc *Service, sched *dosing.Scheduler) (Treatment, dosing.Date, bool) {
	t, ok := loadReadable(w, r, svc)
	if !ok {
		return Treatment{}, dosing.Date{}, false
	}

	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return t, sched.Today(), true
	}
	date, err := dosing.ParseDate(raw)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return Treatment{}, dosing.Date{}, false
	}
	return t, date, true
}

func writeScheduleError(w http.ResponseWriter, err error) {
	var countErr *dosing.TimeCountError
	switch {
	case errors.As(err, &countErr):
		http.Error(w, countErr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, dosing.ErrInvalidTime):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, dosing.ErrNotAllTaken), errors.Is(err, dosing.ErrNoDaysRemaining):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, dosing.ErrInvalidSchedule), errors.Is(err, dosing.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
