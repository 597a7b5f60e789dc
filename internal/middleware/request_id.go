package middleware

import (
	"net/http"
	"time"

	"livestock-health/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader se devuelve en la respuesta; chimw.RequestID ya lo lee de la request.
const RequestIDHeader = "X-Request-ID"

// EchoRequestID copia el id generado por chimw.RequestID a la respuesta.
// Debe ir después de chimw.RequestID.
func EchoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger loguea una línea por request al terminar.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
			}
			if status >= http.StatusInternalServerError {
				log.Error("http request", fields)
				return
			}
			log.Info("http request", fields)
		})
	}
}
