// Package provider defines the pluggable social network clients used by the
// OAuth2 handshake. Each implementer (facebook, github, linkedin, ...) wraps
// an oauth2.Config plus whatever profile API the network exposes.
package provider

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// Profile is the normalized view of the authenticated user at the provider.
// ID is the provider-side user id and is the half of the mapping key the
// record store enforces uniqueness on.
type Profile struct {
	ID         string
	Name       string
	Email      string
	PictureURL string
	ProfileURL string // link to the user's profile page, may be empty
}

// Client is implemented by each social network integration.
type Client interface {
	// ID returns the implementer id ("facebook", "github", ...).
	ID() string

	// AuthorizationURL builds the provider authorization URL carrying state.
	AuthorizationURL(state string) string

	// ExchangeCode redeems the authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)

	// FetchProfile loads the provider profile using the access token.
	FetchProfile(ctx context.Context, tok *oauth2.Token) (*Profile, error)
}

// Config holds the per-implementer OAuth2 app credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// NewState generates a fresh random state nonce for one handshake.
// 32 bytes of entropy, URL-safe.
func NewState() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("provider: rand failed: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// WithHTTPClient injects a bounded http.Client so provider calls cannot hang.
func WithHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: 10 * time.Second})
}

// Registry maps implementer ids to their configured clients.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]Client)}
}

// Register adds or replaces a client under its implementer id.
func (r *Registry) Register(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID()] = c
}

// CreateInstance returns the client for an implementer id.
func (r *Registry) CreateInstance(implementerID string) (Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[implementerID]
	return c, ok
}

// IDs lists the registered implementer ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
