package router

import (
	"net/http"
	"time"

	"livestock-health/internal/docs"
	"livestock-health/internal/domain/dosing"
	"livestock-health/internal/domain/livestock"
	"livestock-health/internal/domain/treatments"
	"livestock-health/internal/metrics"
	"livestock-health/internal/middleware"
	"livestock-health/internal/platform/logger"
	"livestock-health/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: repos ya abiertos (OpenStores). Vacío => in-memory.
	Stores Stores

	Logger  logger.Logger
	Metrics *metrics.Registry

	// Reloj y zona para decidir "hoy"; nil => time.Now / time.Local.
	Clock         func() time.Time
	Location      *time.Location
	CountdownTick time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Metrics
	if reg == nil {
		reg = metrics.New()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	stores := opts.Stores.withDefaults()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.EchoRequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(reg.Middleware)
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", reg.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))

	schedOpts := []dosing.Option{
		dosing.WithLogger(log.With(map[string]any{"component": "scheduler"})),
		dosing.WithMetrics(reg),
		dosing.WithLocation(loc),
		dosing.WithTick(opts.CountdownTick),
	}
	if opts.Clock != nil {
		schedOpts = append(schedOpts, dosing.WithClock(opts.Clock))
	}

	// Services por módulo
	livestockSvc := livestock.NewService(stores.Livestock)
	treatmentsSvc := treatments.NewService(stores.Treatments, livestockSvc)
	treatmentsSvc.SetLocation(loc)
	treatmentsSvc.SetClock(opts.Clock)
	scheduler := dosing.NewScheduler(stores.Progress, schedOpts...)

	// Rutas por módulo
	livestock.RegisterRoutes(r, livestockSvc)
	treatments.RegisterRoutes(r, treatmentsSvc, scheduler)

	return r
}
