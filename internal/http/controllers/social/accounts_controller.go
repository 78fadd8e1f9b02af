package social

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dropDatabas3/socialpost/internal/domain/repository"
	httperrors "github.com/dropDatabas3/socialpost/internal/http/errors"
	"github.com/dropDatabas3/socialpost/internal/http/middlewares"
	svc "github.com/dropDatabas3/socialpost/internal/http/services/social"
	"github.com/dropDatabas3/socialpost/internal/observability/logger"
)

// AccountsController exposes the social account records of the current user.
type AccountsController struct {
	records svc.RecordsService
}

// NewAccountsController creates a new AccountsController.
func NewAccountsController(records svc.RecordsService) *AccountsController {
	return &AccountsController{records: records}
}

// recordView is the wire representation of a record. The token never leaves
// the service through this surface, not even encrypted.
type recordView struct {
	ID             string `json:"id"`
	ImplementerID  string `json:"implementer_id"`
	ProviderUserID string `json:"provider_user_id"`
	Name           string `json:"name,omitempty"`
	LinkURI        string `json:"link_uri,omitempty"`
	LinkTitle      string `json:"link_title,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func toView(rec repository.SocialAccount) recordView {
	return recordView{
		ID:             rec.ID,
		ImplementerID:  rec.ImplementerID,
		ProviderUserID: rec.ProviderUserID,
		Name:           rec.Name,
		LinkURI:        rec.LinkURI,
		LinkTitle:      rec.LinkTitle,
		CreatedAt:      rec.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /v1/social/{implementer}/accounts
func (c *AccountsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	implementer := strings.TrimSpace(r.PathValue("implementer"))
	if implementer == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("missing implementer"))
		return
	}

	recs, err := c.records.List(ctx, implementer, middlewares.GetAccountID(ctx))
	if err != nil {
		logger.From(ctx).Error("list records failed",
			logger.Layer("controller"), logger.Op("AccountsController.List"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}

	views := make([]recordView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, toView(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": views})
}

// Delete handles DELETE /v1/social/accounts/{id}
func (c *AccountsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, ok := c.ownedRecord(w, r)
	if !ok {
		return
	}

	if err := c.records.Delete(ctx, rec.ID); err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrNotFound)
			return
		}
		httperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateToken handles PUT /v1/social/accounts/{id}/token
func (c *AccountsController) UpdateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, ok := c.ownedRecord(w, r)
	if !ok {
		return
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if body.Token == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("token is required"))
		return
	}

	if err := c.records.UpdateToken(ctx, rec.ID, body.Token); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownedRecord carga el record del path y verifica que pertenezca a la cuenta
// del request. Un id ajeno responde 404, no 403: no revelamos existencia.
func (c *AccountsController) ownedRecord(w http.ResponseWriter, r *http.Request) (*repository.SocialAccount, bool) {
	ctx := r.Context()

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("missing record id"))
		return nil, false
	}

	rec, err := c.records.Get(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrNotFound)
			return nil, false
		}
		httperrors.WriteError(w, err)
		return nil, false
	}
	if rec.AccountID != middlewares.GetAccountID(ctx) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
		return nil, false
	}
	return rec, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
