package middleware

import (
	"net/http"
	"runtime/debug"

	"livestock-health/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover reemplaza a chimw.Recoverer para que el panic quede en el log
// estructurado con el request id.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", map[string]any{
					"panic":      rec,
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": chimw.GetReqID(r.Context()),
					"stack":      string(debug.Stack()),
				})
				http.Error(w, "internal error", http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
