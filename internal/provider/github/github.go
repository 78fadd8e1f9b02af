// Package github implements the GitHub social network client.
// GitHub uses plain OAuth 2.0 without ID tokens, so user information
// comes from a separate API call.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	oghub "golang.org/x/oauth2/github"

	"github.com/dropDatabas3/socialpost/internal/provider"
)

const userEndpoint = "https://api.github.com/user"

type Client struct {
	cfg *oauth2.Config
}

// New creates a GitHub client from app credentials.
func New(c provider.Config) *Client {
	scopes := c.Scopes
	if len(scopes) == 0 {
		scopes = []string{"read:user"}
	}
	return &Client{cfg: &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       scopes,
		Endpoint:     oghub.Endpoint,
	}}
}

func (g *Client) ID() string { return "github" }

func (g *Client) AuthorizationURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := g.cfg.Exchange(provider.WithHTTPClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("github: exchange code: %w", err)
	}
	return tok, nil
}

// userInfo is the subset of the GitHub /user response we care about.
type userInfo struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

func (g *Client) FetchProfile(ctx context.Context, tok *oauth2.Token) (*provider.Profile, error) {
	hc := g.cfg.Client(provider.WithHTTPClient(ctx), tok)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userEndpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: api error: status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("github: decode profile: %w", err)
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}
	return &provider.Profile{
		ID:         strconv.FormatInt(info.ID, 10),
		Name:       name,
		Email:      info.Email,
		PictureURL: info.AvatarURL,
		ProfileURL: info.HTMLURL,
	}, nil
}
