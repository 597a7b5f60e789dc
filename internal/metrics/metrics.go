package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "livestock_health"

// Registry agrupa los collectors del servicio. Implementa dosing.Metrics.
type Registry struct {
	reg *prometheus.Registry

	dosesTaken      prometheus.Counter
	daysAdvanced    prometheus.Counter
	advanceRejected *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		dosesTaken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doses_taken_total",
			Help:      "Doses marked as taken.",
		}),
		daysAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "treatment_days_advanced_total",
			Help:      "Treatment days advanced by an operator.",
		}),
		advanceRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "treatment_day_advance_rejected_total",
			Help:      "Rejected day advances by reason.",
		}, []string{"reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.dosesTaken,
		r.daysAdvanced,
		r.advanceRejected,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

func (r *Registry) DoseTaken()   { r.dosesTaken.Inc() }
func (r *Registry) DayAdvanced() { r.daysAdvanced.Inc() }

func (r *Registry) AdvanceRejected(reason string) {
	r.advanceRejected.WithLabelValues(reason).Inc()
}

// Handler expone /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer para tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Middleware cuenta requests por patrón de ruta de chi (no por path crudo,
// para no explotar la cardinalidad con IDs).
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rc := chi.RouteContext(req.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.httpRequests.WithLabelValues(route, req.Method, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(route, req.Method).Observe(time.Since(start).Seconds())
	})
}
