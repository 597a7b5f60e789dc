package livestock

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"livestock-health/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/livestock", func(lr chi.Router) {
		lr.Post("/", createAnimalHandler(svc))
		lr.Get("/", listAnimalsHandler(svc))

		lr.Get("/{animalID}", getAnimalHandler(svc))
		lr.Patch("/{animalID}", updateAnimalHandler(svc))
		lr.Delete("/{animalID}", deleteAnimalHandler(svc))
	})
}

// createAnimalRequest es el cuerpo para registrar un animal.
type createAnimalRequest struct {
	TagNumber     string       `json:"tag_number"`
	LivestockType string       `json:"livestock_type"`
	Breed         string       `json:"breed"`
	Gender        Gender       `json:"gender" enums:"Male,Female"`
	Color         string       `json:"color"`
	DateOfBirth   string       `json:"date_of_birth"` // YYYY-MM-DD opcional
	WeightKg      float64      `json:"weight_kg"`
	HealthStatus  HealthStatus `json:"health_status" enums:"Healthy,Under Treatment,Critical"`
	PurchaseDate  string       `json:"purchase_date"` // YYYY-MM-DD opcional
	PurchasePrice float64      `json:"purchase_price"`
	Remarks       string       `json:"remarks"`
}

// animalResponse representa un animal devuelto por la API.
type animalResponse struct {
	ID            string       `json:"id"`
	OwnerUserID   string       `json:"owner_user_id"`
	TagNumber     string       `json:"tag_number"`
	LivestockType string       `json:"livestock_type"`
	Breed         string       `json:"breed"`
	Gender        Gender       `json:"gender"`
	Color         string       `json:"color"`
	DateOfBirth   *time.Time   `json:"date_of_birth,omitempty"`
	AgeYears      *int         `json:"age_years,omitempty"`
	WeightKg      float64      `json:"weight_kg"`
	HealthStatus  HealthStatus `json:"health_status"`
	PurchaseDate  *time.Time   `json:"purchase_date,omitempty"`
	PurchasePrice float64      `json:"purchase_price"`
	Remarks       string       `json:"remarks"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type updateAnimalRequest struct {
	// Punteros para PATCH: nil = no tocar.
	LivestockType *string       `json:"livestock_type"`
	Breed         *string       `json:"breed"`
	Gender        *Gender       `json:"gender"`
	Color         *string       `json:"color"`
	DateOfBirth   *string       `json:"date_of_birth"` // YYYY-MM-DD
	WeightKg      *float64      `json:"weight_kg"`
	HealthStatus  *HealthStatus `json:"health_status"`
	Remarks       *string       `json:"remarks"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Registra un animal del usuario autenticado. El tag_number es único por dueño. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags livestock
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / fechas inválidas / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "tag number already registered"
// @Router /livestock [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		dob, err := parseOptionalDate(req.DateOfBirth)
		if err != nil {
			http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		purchased, err := parseOptionalDate(req.PurchaseDate)
		if err != nil {
			http.Error(w, "purchase_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if !validGender(req.Gender) || !validHealth(req.HealthStatus) {
			http.Error(w, ErrInvalidInput.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			TagNumber:     req.TagNumber,
			LivestockType: req.LivestockType,
			Breed:         req.Breed,
			Gender:        req.Gender,
			Color:         req.Color,
			DateOfBirth:   dob,
			WeightKg:      req.WeightKg,
			HealthStatus:  req.HealthStatus,
			PurchaseDate:  purchased,
			PurchasePrice: req.PurchasePrice,
			Remarks:       req.Remarks,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a, time.Now()))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Devuelve los animales del usuario autenticado.
// @Tags livestock
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Router /livestock [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a, now))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getAnimalHandler godoc
// @Summary Obtener animal
// @Tags livestock
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /livestock/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		// Veterinarios y admins pueden consultar animales ajenos.
		if a.OwnerUserID != claims.UserID && !claims.CanReadAll() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a, time.Now()))
	}
}

// updateAnimalHandler godoc
// @Summary Actualizar animal
// @Description Actualiza parcialmente un animal. Solo el dueño puede editarlo. El tag_number no es editable.
// @Tags livestock
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a modificar"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /livestock/{animalID} [patch]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAnimalRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var dob *time.Time
		if req.DateOfBirth != nil {
			t, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			dob = &t
		}
		if (req.Gender != nil && !validGender(*req.Gender)) || (req.HealthStatus != nil && !validHealth(*req.HealthStatus)) {
			http.Error(w, ErrInvalidInput.Error(), http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), claims.UserID, UpdateInput{
			LivestockType: req.LivestockType,
			Breed:         req.Breed,
			Gender:        req.Gender,
			Color:         req.Color,
			DateOfBirth:   dob,
			WeightKg:      req.WeightKg,
			HealthStatus:  req.HealthStatus,
			Remarks:       req.Remarks,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(updated, time.Now()))
	}
}

// deleteAnimalHandler godoc
// @Summary Eliminar animal
// @Tags livestock
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /livestock/{animalID} [delete]
func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "animalID"), claims.UserID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrDuplicateTag):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validGender(g Gender) bool {
	return g == "" || g == GenderMale || g == GenderFemale
}

func validHealth(h HealthStatus) bool {
	switch h {
	case "", HealthHealthy, HealthUnderTreatment, HealthCritical:
		return true
	}
	return false
}

func toAnimalResponse(a Animal, now time.Time) animalResponse {
	resp := animalResponse{
		ID:            a.ID,
		OwnerUserID:   a.OwnerUserID,
		TagNumber:     a.TagNumber,
		LivestockType: a.LivestockType,
		Breed:         a.Breed,
		Gender:        a.Gender,
		Color:         a.Color,
		DateOfBirth:   a.DateOfBirth,
		WeightKg:      a.WeightKg,
		HealthStatus:  a.HealthStatus,
		PurchaseDate:  a.PurchaseDate,
		PurchasePrice: a.PurchasePrice,
		Remarks:       a.Remarks,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.DateOfBirth != nil {
		age := AgeYears(*a.DateOfBirth, now)
		resp.AgeYears = &age
	}
	return resp
}

// writeJSON duplicado por módulo, igual que en treatments.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
