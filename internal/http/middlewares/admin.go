package middlewares

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dropDatabas3/socialpost/internal/http/errors"
)

// RequireAdminKey valida el header X-Admin-API-Key contra la key configurada.
// Si no hay key configurada, el acceso admin queda deshabilitado por completo.
func RequireAdminKey(apiKey string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				errors.WriteError(w, errors.ErrForbidden.WithDetail("admin access disabled"))
				return
			}
			got := strings.TrimSpace(r.Header.Get("X-Admin-API-Key"))
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
				errors.WriteError(w, errors.ErrUnauthorized.WithDetail("invalid admin api key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
