package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/socialpost/internal/http/handlers"
	mw "github.com/dropDatabas3/socialpost/internal/http/middlewares"
)

// AdminRouterDeps contiene las dependencias para las rutas admin.
type AdminRouterDeps struct {
	Records *handlers.AdminRecordsHandler
	APIKey  string
}

// RegisterAdminRoutes monta el router chi de administración sobre el mux.
func RegisterAdminRoutes(mux *http.ServeMux, deps AdminRouterDeps) {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return mw.Chain(next,
			mw.WithRecover(),
			mw.WithRequestID(),
			mw.WithSecurityHeaders(),
			mw.WithNoStore(),
			mw.RequireAdminKey(deps.APIKey),
			mw.WithLogging(),
		)
	})

	deps.Records.Register(r)

	mux.Handle("/v1/admin/", r)
}
