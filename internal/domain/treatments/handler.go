package treatments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"livestock-health/internal/domain/dosing"
	"livestock-health/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, sched *dosing.Scheduler) {
	r.Route("/treatments", func(tr chi.Router) {
		tr.Post("/", createTreatmentHandler(svc))
		tr.Get("/", listTreatmentsHandler(svc))

		// Seguimientos vencidos / próximos del usuario
		tr.Get("/deadlines", deadlinesHandler(svc))

		tr.Get("/{treatmentID}", getTreatmentHandler(svc))
		tr.Put("/{treatmentID}", updateTreatmentHandler(svc))
		tr.Delete("/{treatmentID}", deleteTreatmentHandler(svc))

		// Plan de dosis diario
		tr.Route("/{treatmentID}/schedule", func(sr chi.Router) {
			sr.Get("/", getScheduleHandler(svc, sched))
			sr.Post("/doses/{doseID}/taken", markTakenHandler(svc, sched))
			sr.Post("/advance", advanceDayHandler(svc, sched))
			sr.Get("/countdown", countdownHandler(svc, sched))
		})
	})
}

type medicineRequest struct {
	Name          string              `json:"name"`
	Dosage        string              `json:"dosage"`
	Frequency     int                 `json:"frequency"`
	Duration      int                 `json:"duration"`
	ScheduleType  dosing.ScheduleType `json:"schedule_type" enums:"interval,exact"`
	StartTime     string              `json:"start_time"`     // HH:MM, solo interval
	IntervalHours float64             `json:"interval_hours"` // solo interval
	ExactTimes    []string            `json:"exact_times"`    // HH:MM, solo exact
}

// treatmentRequest es el cuerpo para crear o reemplazar un tratamiento.
type treatmentRequest struct {
	LivestockTag      string            `json:"livestock_tag"`
	TreatmentName     string            `json:"treatment_name"`
	Diagnosis         string            `json:"diagnosis"`
	VetName           string            `json:"vet_name"`
	TreatmentDate     string            `json:"treatment_date"`      // YYYY-MM-DD
	NextTreatmentDate string            `json:"next_treatment_date"` // YYYY-MM-DD opcional
	Status            Status            `json:"status" enums:"In Progress,Completed"`
	Medicines         []medicineRequest `json:"medicines"`
	Notes             string            `json:"notes"`
}

// treatmentResponse representa un tratamiento devuelto por la API.
type treatmentResponse struct {
	ID                string            `json:"id"`
	OwnerUserID       string            `json:"owner_user_id"`
	LivestockTag      string            `json:"livestock_tag"`
	TreatmentName     string            `json:"treatment_name"`
	Diagnosis         string            `json:"diagnosis"`
	VetName           string            `json:"vet_name"`
	TreatmentDate     string            `json:"treatment_date"`
	NextTreatmentDate string            `json:"next_treatment_date,omitempty"`
	Status            Status            `json:"status"`
	Medicines         []medicineRequest `json:"medicines"`
	Notes             string            `json:"notes"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type deadlineResponse struct {
	Treatment treatmentResponse `json:"treatment"`
	Bucket    DeadlineBucket    `json:"bucket" enums:"overdue,due_soon,on_track"`
	DaysLeft  int               `json:"days_left"`
	Label     string            `json:"label"`
}

// createTreatmentHandler godoc
// @Summary Registrar tratamiento
// @Description Registra un tratamiento para un animal del usuario. El livestock_tag debe existir. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags treatments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body treatmentRequest true "Datos del tratamiento; fechas YYYY-MM-DD, horas HH:MM"
// @Success 201 {object} treatmentResponse
// @Failure 400 {string} string "invalid json / fechas inválidas / medicamentos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {string} string "livestock tag not registered"
// @Router /treatments [post]
func createTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, ok := decodeTreatment(w, r)
		if !ok {
			return
		}

		t, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toTreatmentResponse(t))
	}
}

// listTreatmentsHandler godoc
// @Summary Listar tratamientos
// @Description Lista los tratamientos del usuario, opcionalmente filtrados por tag y estado.
// @Tags treatments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param tag query string false "Filtrar por livestock tag"
// @Param status query string false "In Progress | Completed"
// @Success 200 {array} treatmentResponse
// @Failure 401 {string} string "unauthorized"
// @Router /treatments [get]
func listTreatmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		items, err := svc.ListByOwner(r.Context(), claims.UserID, ListFilter{
			LivestockTag: q.Get("tag"),
			Status:       Status(q.Get("status")),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]treatmentResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTreatmentResponse(t))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// deadlinesHandler godoc
// @Summary Monitorear seguimientos
// @Description Clasifica los seguimientos (next_treatment_date) en vencidos, próximos (7 días) y al día.
// @Tags treatments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} deadlineResponse
// @Failure 401 {string} string "unauthorized"
// @Router /treatments/deadlines [get]
func deadlinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Deadlines(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]deadlineResponse, 0, len(items))
		for _, d := range items {
			out = append(out, deadlineResponse{
				Treatment: toTreatmentResponse(d.Treatment),
				Bucket:    d.Bucket,
				DaysLeft:  d.DaysLeft,
				Label:     d.Label,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getTreatmentHandler godoc
// @Summary Obtener tratamiento
// @Description El dueño o un usuario con rol vet/admin.
// @Tags treatments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param treatmentID path string true "ID del tratamiento"
// @Success 200 {object} treatmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "treatment not found"
// @Router /treatments/{treatmentID} [get]
func getTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := loadReadable(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toTreatmentResponse(t))
	}
}

// updateTreatmentHandler godoc
// @Summary Reemplazar tratamiento
// @Description Reemplaza los datos del tratamiento. Solo el dueño. El livestock_tag no puede cambiar.
// @Tags treatments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param treatmentID path string true "ID del tratamiento"
// @Param payload body treatmentRequest true "Datos del tratamiento"
// @Success 200 {object} treatmentResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "treatment not found"
// @Router /treatments/{treatmentID} [put]
func updateTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, ok := decodeTreatment(w, r)
		if !ok {
			return
		}

		t, err := svc.Update(r.Context(), chi.URLParam(r, "treatmentID"), claims.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTreatmentResponse(t))
	}
}

// deleteTreatmentHandler godoc
// @Summary Eliminar tratamiento
// @Description Elimina el tratamiento. El progreso de dosis del animal se conserva.
// @Tags treatments
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param treatmentID path string true "ID del tratamiento"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "treatment not found"
// @Router /treatments/{treatmentID} [delete]
func deleteTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "treatmentID"), claims.UserID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// loadReadable resuelve claims + treatmentID y escribe el error si corresponde.
func loadReadable(w http.ResponseWriter, r *http.Request, svc *Service) (Treatment, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Treatment{}, false
	}

	t, err := svc.GetByID(r.Context(), chi.URLParam(r, "treatmentID"))
	if err != nil {
		writeServiceError(w, err)
		return Treatment{}, false
	}
	if !Readable(t, claims.UserID, claims.CanReadAll()) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return Treatment{}, false
	}
	return t, true
}

func decodeTreatment(w http.ResponseWriter, r *http.Request) (CreateInput, bool) {
	var req treatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return CreateInput{}, false
	}

	start, err := dosing.ParseDate(req.TreatmentDate)
	if err != nil {
		http.Error(w, "treatment_date must be YYYY-MM-DD", http.StatusBadRequest)
		return CreateInput{}, false
	}
	var next dosing.Date
	if strings.TrimSpace(req.NextTreatmentDate) != "" {
		next, err = dosing.ParseDate(req.NextTreatmentDate)
		if err != nil {
			http.Error(w, "next_treatment_date must be YYYY-MM-DD", http.StatusBadRequest)
			return CreateInput{}, false
		}
	}

	meds := make([]dosing.Medicine, 0, len(req.Medicines))
	for _, m := range req.Medicines {
		meds = append(meds, dosing.Medicine{
			Name:          m.Name,
			Dosage:        m.Dosage,
			Frequency:     m.Frequency,
			Duration:      m.Duration,
			ScheduleType:  m.ScheduleType,
			StartTime:     m.StartTime,
			IntervalHours: m.IntervalHours,
			ExactTimes:    m.ExactTimes,
		})
	}

	return CreateInput{
		LivestockTag:      req.LivestockTag,
		TreatmentName:     req.TreatmentName,
		Diagnosis:         req.Diagnosis,
		VetName:           req.VetName,
		TreatmentDate:     start,
		NextTreatmentDate: next,
		Status:            req.Status,
		Medicines:         meds,
		Notes:             req.Notes,
	}, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "treatment not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrUnknownAnimal):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toTreatmentResponse(t Treatment) treatmentResponse {
	meds := make([]medicineRequest, 0, len(t.Medicines))
	for _, m := range t.Medicines {
		meds = append(meds, medicineRequest{
			Name:          m.Name,
			Dosage:        m.Dosage,
			Frequency:     m.Frequency,
			Duration:      m.Duration,
			ScheduleType:  m.ScheduleType,
			StartTime:     m.StartTime,
			IntervalHours: m.IntervalHours,
			ExactTimes:    m.ExactTimes,
		})
	}
	resp := treatmentResponse{
		ID:            t.ID,
		OwnerUserID:   t.OwnerUserID,
		LivestockTag:  t.LivestockTag,
		TreatmentName: t.TreatmentName,
		Diagnosis:     t.Diagnosis,
		VetName:       t.VetName,
		TreatmentDate: t.TreatmentDate.String(),
		Status:        t.Status,
		Medicines:     meds,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if !t.NextTreatmentDate.IsZero() {
		resp.NextTreatmentDate = t.NextTreatmentDate.String()
	}
	return resp
}

// writeJSON duplicado por módulo (ver livestock).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
