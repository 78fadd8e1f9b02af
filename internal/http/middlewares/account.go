package middlewares

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dropDatabas3/socialpost/internal/http/errors"
)

const sessionCookieName = "sp_session"

// WithSession asegura que el request tenga una cookie de sesión y expone su
// valor en el contexto. El handshake OAuth2 necesita la misma sesión entre el
// connect y el callback para validar el state.
func WithSession() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(sessionCookieName); err == nil {
				sid = strings.TrimSpace(c.Value)
			}
			if sid == "" {
				var b [16]byte
				_, _ = rand.Read(b[:])
				sid = hex.EncodeToString(b[:])
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(setSessionID(r.Context(), sid)))
		})
	}
}

// WithAccount extrae la identidad de la cuenta local del header X-Account-ID.
// La autenticación de primera parte vive en el gateway upstream: acá solo se
// propaga la identidad ya verificada.
func WithAccount() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := strings.TrimSpace(r.Header.Get("X-Account-ID")); id != "" {
				r = r.WithContext(setAccountID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAccount exige una cuenta local identificada.
func RequireAccount() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetAccountID(r.Context()) == "" {
				errors.WriteError(w, errors.ErrUnauthorized.WithDetail("account identity required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
