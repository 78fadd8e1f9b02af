// Package router arma el mux HTTP del servicio: rutas públicas del flujo
// social sobre net/http (path params de Go 1.22) y rutas admin sobre chi.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger es implementado por los backends que saben verificar conectividad.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps agrupa todo lo que el router necesita.
type Deps struct {
	Social SocialRouterDeps
	Admin  AdminRouterDeps
	Store  Pinger // opcional: healthz degrada a "ok" sin store
}

// New construye el mux completo del servicio.
func New(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	RegisterSocialRoutes(mux, deps.Social)
	RegisterAdminRoutes(mux, deps.Admin)

	mux.HandleFunc("GET /healthz", healthz(deps.Store))
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func healthz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"status": "ok"}

		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["store"] = err.Error()
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
