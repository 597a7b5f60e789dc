package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DosingCounters(t *testing.T) {
	r := New()

	r.DoseTaken()
	r.DoseTaken()
	r.DayAdvanced()
	r.AdvanceRejected("not_all_taken")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.dosesTaken))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.daysAdvanced))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.advanceRejected.WithLabelValues("not_all_taken")))
}

func TestRegistry_MiddlewareUsesRoutePattern(t *testing.T) {
	reg := New()

	router := chi.NewRouter()
	router.Use(reg.Middleware)
	router.Get("/treatments/{treatmentID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Handle("/metrics", reg.Handler())

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/treatments/"+id, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	got := testutil.ToFloat64(reg.httpRequests.WithLabelValues("/treatments/{treatmentID}", "GET", "204"))
	assert.Equal(t, 2.0, got)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "livestock_health_http_requests_total"))
}
