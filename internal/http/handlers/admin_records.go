// Package handlers contiene handlers administrativos montados vía chi.
// Son la superficie de servicio-a-servicio: otros sistemas internos (por
// ejemplo el autoposting) consultan records y tokens por acá.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/socialpost/internal/domain/repository"
	httperrors "github.com/dropDatabas3/socialpost/internal/http/errors"
	svc "github.com/dropDatabas3/socialpost/internal/http/services/social"
	"github.com/dropDatabas3/socialpost/internal/observability/logger"
)

type AdminRecordsHandler struct {
	records svc.RecordsService
}

func NewAdminRecordsHandler(records svc.RecordsService) *AdminRecordsHandler {
	return &AdminRecordsHandler{records: records}
}

// Register monta las rutas admin sobre el router chi.
func (h *AdminRecordsHandler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Get("/v1/admin/records/{id}", h.get)
		r.Get("/v1/admin/records/{id}/token", h.token)
		r.Delete("/v1/admin/records/{id}", h.delete)
		r.Put("/v1/admin/records/{id}/token", h.updateToken)
		r.Get("/v1/admin/accounts/{accountID}/records", h.listByAccount)
		r.Get("/v1/admin/resolve/{implementer}/{providerUserID}", h.resolve)
	})
}

type adminRecordView struct {
	ID             string `json:"id"`
	AccountID      string `json:"account_id"`
	ImplementerID  string `json:"implementer_id"`
	ProviderUserID string `json:"provider_user_id"`
	Name           string `json:"name,omitempty"`
	AdditionalData string `json:"additional_data,omitempty"`
	LinkURI        string `json:"link_uri,omitempty"`
	LinkTitle      string `json:"link_title,omitempty"`
}

func toAdminView(rec *repository.SocialAccount) adminRecordView {
	return adminRecordView{
		ID:             rec.ID,
		AccountID:      rec.AccountID,
		ImplementerID:  rec.ImplementerID,
		ProviderUserID: rec.ProviderUserID,
		Name:           rec.Name,
		AdditionalData: rec.AdditionalData,
		LinkURI:        rec.LinkURI,
		LinkTitle:      rec.LinkTitle,
	}
}

func (h *AdminRecordsHandler) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAdminView(rec))
}

// token responde el token desencriptado. Es el único endpoint que expone
// plaintext y vive exclusivamente detrás de la admin key.
func (h *AdminRecordsHandler) token(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	plain, err := h.records.Token(r.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrNotFound)
			return
		}
		logger.From(r.Context()).Error("admin token fetch failed",
			logger.Layer("handler"), logger.Op("AdminRecordsHandler.token"),
			logger.RecordID(id), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": plain})
}

func (h *AdminRecordsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.records.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRepoErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminRecordsHandler) updateToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if strings.TrimSpace(body.Token) == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("token is required"))
		return
	}
	if err := h.records.UpdateToken(r.Context(), chi.URLParam(r, "id"), body.Token); err != nil {
		writeRepoErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminRecordsHandler) listByAccount(w http.ResponseWriter, r *http.Request) {
	implementer := strings.TrimSpace(r.URL.Query().Get("implementer"))
	if implementer == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("implementer query param is required"))
		return
	}
	recs, err := h.records.List(r.Context(), implementer, chi.URLParam(r, "accountID"))
	if err != nil {
		writeRepoErr(w, err)
		return
	}
	views := make([]adminRecordView, 0, len(recs))
	for i := range recs {
		views = append(views, toAdminView(&recs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": views})
}

func (h *AdminRecordsHandler) resolve(w http.ResponseWriter, r *http.Request) {
	rec, err := h.records.Resolve(r.Context(), chi.URLParam(r, "implementer"), chi.URLParam(r, "providerUserID"))
	if err != nil {
		writeRepoErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAdminView(rec))
}

func writeRepoErr(w http.ResponseWriter, err error) {
	switch {
	case repository.IsNotFound(err):
		httperrors.WriteError(w, httperrors.ErrNotFound)
	case repository.IsConflict(err):
		httperrors.WriteError(w, httperrors.ErrConflict)
	case errors.Is(err, repository.ErrInvalidInput):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
	case repository.IsPersistence(err):
		// El detalle del backend queda en los logs, no en la respuesta.
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	default:
		httperrors.WriteError(w, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
