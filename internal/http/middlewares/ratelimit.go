package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/dropDatabas3/socialpost/internal/http/errors"
	"github.com/dropDatabas3/socialpost/internal/observability/logger"
	"github.com/dropDatabas3/socialpost/internal/rate"
)

// IPRateKey extrae la IP del cliente para usarla como clave de rate limit.
// Respeta X-Forwarded-For (primer hop) cuando hay proxy adelante.
func IPRateKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// WithRateLimit aplica un limiter por clave de request. Si el limiter
// falla (redis caído, por ejemplo) la request pasa: preferimos degradar
// la protección antes que cortar logins válidos.
func WithRateLimit(l rate.Limiter, keyFn func(*http.Request) string) Middleware {
	if keyFn == nil {
		keyFn = IPRateKey
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := l.Allow(r.Context(), keyFn(r))
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter unavailable, allowing request",
					logger.Path(r.URL.Path),
					logger.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			if !res.Allowed {
				secs := int64(res.RetryAfter.Seconds())
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
				errors.WriteError(w, errors.ErrTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
