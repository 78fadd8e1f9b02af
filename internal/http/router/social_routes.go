package router

import (
	"net/http"

	ctrl "github.com/dropDatabas3/socialpost/internal/http/controllers/social"
	mw "github.com/dropDatabas3/socialpost/internal/http/middlewares"
	"github.com/dropDatabas3/socialpost/internal/rate"
)

// SocialRouterDeps contiene las dependencias para el router social.
type SocialRouterDeps struct {
	Controllers *ctrl.Controllers
	// Limiter acota los inicios de handshake por IP. Nil desactiva el límite.
	Limiter rate.Limiter
}

// RegisterSocialRoutes registra las rutas públicas del flujo social.
func RegisterSocialRoutes(mux *http.ServeMux, deps SocialRouterDeps) {
	c := deps.Controllers

	connectMW := []mw.Middleware{mw.RequireAccount()}
	if deps.Limiter != nil {
		connectMW = append(connectMW, mw.WithRateLimit(deps.Limiter, mw.IPRateKey))
	}

	// GET /v1/social/{implementer}/connect - inicia el handshake OAuth2
	mux.Handle("GET /v1/social/{implementer}/connect",
		socialHandler(c.Connect.Connect, connectMW...))

	// GET /v1/social/{implementer}/callback - retorno del provider.
	// Sin RequireAccount: el provider redirige al browser sin el header de
	// identidad; la cuenta quedó guardada en la sesión al iniciar el connect.
	mux.Handle("GET /v1/social/{implementer}/callback",
		socialHandler(c.Callback.Callback))

	// GET /v1/social/{implementer}/accounts - records de la cuenta actual
	mux.Handle("GET /v1/social/{implementer}/accounts",
		socialHandler(c.Accounts.List, mw.RequireAccount()))

	// DELETE /v1/social/accounts/{id} - eliminar un record propio
	mux.Handle("DELETE /v1/social/accounts/{id}",
		socialHandler(c.Accounts.Delete, mw.RequireAccount()))

	// PUT /v1/social/accounts/{id}/token - reemplazar el token de un record propio
	mux.Handle("PUT /v1/social/accounts/{id}/token",
		socialHandler(c.Accounts.UpdateToken, mw.RequireAccount()))
}

// socialHandler crea el middleware chain para endpoints del flujo social.
func socialHandler(hf http.HandlerFunc, extra ...mw.Middleware) http.Handler {
	chain := []mw.Middleware{
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithSecurityHeaders(),
		mw.WithNoStore(),
		mw.WithSession(),
		mw.WithAccount(),
	}
	chain = append(chain, extra...)

	// Logging al final
	chain = append(chain, mw.WithLogging())

	return mw.ChainFunc(hf, chain...)
}
