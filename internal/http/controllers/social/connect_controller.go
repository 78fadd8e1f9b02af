package social

import (
	"net/http"
	"strings"

	httperrors "github.com/dropDatabas3/socialpost/internal/http/errors"
	"github.com/dropDatabas3/socialpost/internal/http/middlewares"
	svc "github.com/dropDatabas3/socialpost/internal/http/services/social"
	"github.com/dropDatabas3/socialpost/internal/observability/logger"
)

// ConnectController starts the OAuth2 handshake against a network.
type ConnectController struct {
	handshake svc.HandshakeService
	manageURL string
}

// NewConnectController creates a new ConnectController.
func NewConnectController(handshake svc.HandshakeService, manageURL string) *ConnectController {
	return &ConnectController{handshake: handshake, manageURL: manageURL}
}

// Connect handles GET /v1/social/{implementer}/connect
func (c *ConnectController) Connect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ConnectController.Connect"))

	implementer := strings.TrimSpace(r.PathValue("implementer"))
	if implementer == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("missing implementer"))
		return
	}

	res, err := c.handshake.Begin(ctx, svc.BeginRequest{
		ImplementerID: implementer,
		SessionID:     middlewares.GetSessionID(ctx),
		AccountID:     middlewares.GetAccountID(ctx),
	})
	if err != nil {
		// Misma UX que el callback: el detalle queda en los logs y el
		// usuario vuelve a la página de gestión con un mensaje genérico.
		log.Error("handshake begin failed", logger.Err(err))
		redirectWithMessage(w, r, c.manageURL, svc.MsgAuthFailed)
		return
	}

	http.Redirect(w, r, res.RedirectURL, http.StatusFound)
}
