// Package linkedin implements the LinkedIn social network client.
// LinkedIn's v2 API splits the localized name into first/last fields.
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	oli "golang.org/x/oauth2/linkedin"

	"github.com/dropDatabas3/socialpost/internal/provider"
)

const meEndpoint = "https://api.linkedin.com/v2/me"

type Client struct {
	cfg *oauth2.Config
}

// New creates a LinkedIn client from app credentials.
func New(c provider.Config) *Client {
	scopes := c.Scopes
	if len(scopes) == 0 {
		scopes = []string{"r_liteprofile"}
	}
	return &Client{cfg: &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       scopes,
		Endpoint:     oli.Endpoint,
	}}
}

func (l *Client) ID() string { return "linkedin" }

func (l *Client) AuthorizationURL(state string) string {
	return l.cfg.AuthCodeURL(state)
}

func (l *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := l.cfg.Exchange(provider.WithHTTPClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("linkedin: exchange code: %w", err)
	}
	return tok, nil
}

type liteProfile struct {
	ID        string `json:"id"`
	FirstName string `json:"localizedFirstName"`
	LastName  string `json:"localizedLastName"`
}

func (l *Client) FetchProfile(ctx context.Context, tok *oauth2.Token) (*provider.Profile, error) {
	hc := l.cfg.Client(provider.WithHTTPClient(ctx), tok)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, meEndpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("linkedin: fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin: api error: status %d", resp.StatusCode)
	}

	var p liteProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("linkedin: decode profile: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("linkedin: profile without id")
	}

	return &provider.Profile{
		ID:         p.ID,
		Name:       strings.TrimSpace(p.FirstName + " " + p.LastName),
		ProfileURL: "https://www.linkedin.com/in/" + p.ID,
	}, nil
}
