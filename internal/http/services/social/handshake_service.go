package social

import (
	"context"

	"github.com/dropDatabas3/socialpost/internal/domain/repository"
	"github.com/dropDatabas3/socialpost/internal/provider"
)

// Handshake phases, surfaced in logs to make a stuck flow diagnosable.
const (
	PhaseIdle                     = "idle"
	PhaseAwaitingProviderRedirect = "awaiting_provider_redirect"
	PhaseAwaitingCallback         = "awaiting_callback"
	PhaseAuthenticated            = "authenticated"
	PhaseFailed                   = "failed"
)

// HandshakeService drives the OAuth2 authorization-code flow against a
// social network and, on success, registers the resulting identity as a
// social account record.
type HandshakeService interface {
	// Begin starts a handshake: mints a state nonce, stores it in the
	// session and returns the provider authorization URL to redirect to.
	Begin(ctx context.Context, req BeginRequest) (*BeginResult, error)

	// Complete consumes the provider callback: validates state, redeems the
	// code, fetches the profile and registers the record.
	Complete(ctx context.Context, req CompleteRequest) (*CompleteResult, error)
}

// BeginRequest identifies who starts the handshake and against which network.
type BeginRequest struct {
	ImplementerID string
	SessionID     string
	AccountID     string
}

// BeginResult carries the provider authorization URL.
type BeginResult struct {
	RedirectURL string
}

// CompleteRequest carries the provider callback parameters.
type CompleteRequest struct {
	ImplementerID string
	SessionID     string
	AccountID     string
	Code          string
	State         string
	ErrorParam    string // provider "error" query parameter, if any
}

// CompleteResult is the outcome of a finished handshake.
type CompleteResult struct {
	Record    *repository.SocialAccount
	Profile   *provider.Profile
	NewRecord bool
}
