package middleware

import (
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/inventory-sheets/internal/logger"
)

// Recoverer turns a panic into the JSON error envelope with status 200, the
// same shape every other failure of the action endpoint has.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					if logg != nil {
						ctx := logg.WithFields(r.Context(), map[string]any{"panic": fmt.Sprint(rec)})
						logg.Error(ctx, "panic.recovered", err)
					}
					WriteError(w, http.StatusOK, fmt.Sprint(rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
