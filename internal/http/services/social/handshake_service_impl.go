package social

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dropDatabas3/socialpost/internal/audit"
	"github.com/dropDatabas3/socialpost/internal/metrics"
	"github.com/dropDatabas3/socialpost/internal/observability/logger"
	"github.com/dropDatabas3/socialpost/internal/provider"
)

// HandshakeDeps contains dependencies for the handshake service.
type HandshakeDeps struct {
	Registry *provider.Registry
	Sessions DataHandler
	Records  RecordsService
}

// handshakeService implements HandshakeService.
type handshakeService struct {
	registry *provider.Registry
	sessions DataHandler
	records  RecordsService
}

// NewHandshakeService creates a new HandshakeService.
func NewHandshakeService(d HandshakeDeps) HandshakeService {
	return &handshakeService{
		registry: d.Registry,
		sessions: d.Sessions,
		records:  d.Records,
	}
}

func (s *handshakeService) Begin(ctx context.Context, req BeginRequest) (*BeginResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("social.handshake"),
		logger.Implementer(req.ImplementerID),
	)

	client, ok := s.registry.CreateInstance(req.ImplementerID)
	if !ok {
		log.Warn("begin rejected", logger.Phase(PhaseIdle), logger.Err(ErrProviderUnavailable))
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, req.ImplementerID)
	}

	// The account rides the session alongside the state: the provider
	// redirects the bare browser back to us, without the identity header.
	state := provider.NewState()
	s.sessions.Set(req.SessionID, req.ImplementerID, sessionKeyState, state)
	s.sessions.Set(req.SessionID, req.ImplementerID, sessionKeyAccount, req.AccountID)
	s.sessions.SetSessionKeysToNullify(req.SessionID, req.ImplementerID, []string{sessionKeyState, sessionKeyAccount})

	metrics.HandshakesStarted.WithLabelValues(req.ImplementerID).Inc()
	audit.Log(ctx, audit.EventHandshakeStarted, map[string]any{
		"implementer": req.ImplementerID,
		"account_id":  req.AccountID,
	})
	log.Info("handshake started", logger.Phase(PhaseAwaitingProviderRedirect), logger.AccountID(req.AccountID))

	return &BeginResult{RedirectURL: client.AuthorizationURL(state)}, nil
}

func (s *handshakeService) Complete(ctx context.Context, req CompleteRequest) (*CompleteResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("social.handshake"),
		logger.Implementer(req.ImplementerID),
	)

	client, ok := s.registry.CreateInstance(req.ImplementerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, req.ImplementerID)
	}

	// The provider reported an error (user denied, app misconfigured...).
	// Checked before state validation: the session keys stay untouched so an
	// unrelated concurrent handshake is not disturbed.
	if req.ErrorParam != "" {
		metrics.HandshakesCompleted.WithLabelValues(req.ImplementerID, "denied").Inc()
		audit.Log(ctx, audit.EventHandshakeFailed, map[string]any{
			"implementer": req.ImplementerID,
			"reason":      "provider_error",
		})
		log.Warn("provider returned error",
			logger.Phase(PhaseFailed),
			logger.String("provider_error", req.ErrorParam),
		)
		return nil, fmt.Errorf("%w: %s", ErrProviderDenied, req.ErrorParam)
	}

	// Exact-match state validation against the session-stored nonce.
	stored, ok := s.sessions.Get(req.SessionID, req.ImplementerID, sessionKeyState)
	if !ok || stored == "" || req.State == "" || stored != req.State {
		s.sessions.NullifySessionKeys(req.SessionID, req.ImplementerID)
		metrics.HandshakesCompleted.WithLabelValues(req.ImplementerID, "state_mismatch").Inc()
		audit.Log(ctx, audit.EventHandshakeFailed, map[string]any{
			"implementer": req.ImplementerID,
			"reason":      "state_mismatch",
		})
		log.Warn("state validation failed", logger.Phase(PhaseFailed))
		return nil, ErrStateMismatch
	}
	// State is single-use, and the account bound at connect time goes with it.
	accountID := req.AccountID
	if accountID == "" {
		if v, ok := s.sessions.Get(req.SessionID, req.ImplementerID, sessionKeyAccount); ok && v != "" {
			accountID = v
		}
	}
	s.sessions.Delete(req.SessionID, req.ImplementerID, sessionKeyState)
	s.sessions.Delete(req.SessionID, req.ImplementerID, sessionKeyAccount)
	log.Debug("state validated", logger.Phase(PhaseAwaitingCallback))

	start := time.Now()
	tok, err := client.ExchangeCode(ctx, req.Code)
	metrics.ProviderExchangeLatency.WithLabelValues(req.ImplementerID).
		Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.HandshakesCompleted.WithLabelValues(req.ImplementerID, "exchange_failed").Inc()
		log.Error("code exchange failed", logger.Phase(PhaseFailed), logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	profile, err := client.FetchProfile(ctx, tok)
	if err != nil {
		metrics.HandshakesCompleted.WithLabelValues(req.ImplementerID, "profile_failed").Inc()
		log.Error("profile fetch failed", logger.Phase(PhaseFailed), logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	// The full token (access, refresh, expiry) travels as one opaque blob.
	plainToken, err := json.Marshal(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	var linkTitle string
	if profile.ProfileURL != "" {
		linkTitle = profile.Name
	}
	rec, created, err := s.records.Register(ctx, RegisterRequest{
		ImplementerID:  req.ImplementerID,
		AccountID:      accountID,
		ProviderUserID: profile.ID,
		Name:           profile.Name,
		Token:          string(plainToken),
		LinkURI:        profile.ProfileURL,
		LinkTitle:      linkTitle,
	})
	if err != nil {
		metrics.HandshakesCompleted.WithLabelValues(req.ImplementerID, "registration_failed").Inc()
		log.Error("record registration failed", logger.Phase(PhaseFailed), logger.Err(err))
		return nil, err
	}

	metrics.HandshakesCompleted.WithLabelValues(req.ImplementerID, "authenticated").Inc()
	audit.Log(ctx, audit.EventHandshakeCompleted, map[string]any{
		"implementer":      req.ImplementerID,
		"account_id":       accountID,
		"provider_user_id": profile.ID,
		"record_id":        rec.ID,
		"new_record":       created,
	})
	log.Info("handshake completed",
		logger.Phase(PhaseAuthenticated),
		logger.ProviderUserID(profile.ID),
		logger.RecordID(rec.ID),
		logger.Bool("new_record", created),
	)

	return &CompleteResult{Record: rec, Profile: profile, NewRecord: created}, nil
}
