package social

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	httperrors "github.com/dropDatabas3/socialpost/internal/http/errors"
	"github.com/dropDatabas3/socialpost/internal/http/middlewares"
	svc "github.com/dropDatabas3/socialpost/internal/http/services/social"
	"github.com/dropDatabas3/socialpost/internal/observability/logger"
)

// CallbackController consumes the provider redirect back to us.
type CallbackController struct {
	handshake svc.HandshakeService
	manageURL string
}

// NewCallbackController creates a new CallbackController.
func NewCallbackController(handshake svc.HandshakeService, manageURL string) *CallbackController {
	return &CallbackController{handshake: handshake, manageURL: manageURL}
}

// Callback handles GET /v1/social/{implementer}/callback
//
// Whatever happens, the user ends up on the account management page; failure
// detail stays in the logs and only a generic message travels in the redirect.
func (c *CallbackController) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CallbackController.Callback"))

	implementer := strings.TrimSpace(r.PathValue("implementer"))
	if implementer == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("missing implementer"))
		return
	}

	q := r.URL.Query()
	res, err := c.handshake.Complete(ctx, svc.CompleteRequest{
		ImplementerID: implementer,
		SessionID:     middlewares.GetSessionID(ctx),
		AccountID:     middlewares.GetAccountID(ctx),
		Code:          strings.TrimSpace(q.Get("code")),
		State:         strings.TrimSpace(q.Get("state")),
		ErrorParam:    strings.TrimSpace(q.Get("error")),
	})
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrProviderDenied):
			redirectWithMessage(w, r, c.manageURL, svc.MsgProviderDenied)
		case errors.Is(err, svc.ErrStateMismatch):
			redirectWithMessage(w, r, c.manageURL, svc.MsgStateMismatch)
		default:
			log.Error("handshake completion failed", logger.Err(err))
			redirectWithMessage(w, r, c.manageURL, svc.MsgAuthFailed)
		}
		return
	}

	msg := "Your " + implementer + " account has been added."
	if !res.NewRecord {
		msg = "Your " + implementer + " account was already added."
	}
	redirectWithMessage(w, r, c.manageURL, msg)
}

// redirectWithMessage manda al usuario de vuelta a la página de gestión con
// el mensaje como query param.
func redirectWithMessage(w http.ResponseWriter, r *http.Request, manageURL, msg string) {
	u, err := url.Parse(manageURL)
	if err != nil || manageURL == "" {
		// Sin página de gestión configurada: responder el mensaje plano.
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(msg))
		return
	}
	q := u.Query()
	q.Set("message", msg)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusFound)
}
