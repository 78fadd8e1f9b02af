// Package facebook implements the Facebook social network client on top of
// the Graph API. The profile link field requires an app permission review,
// so ProfileURL may come back empty.
package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	ofb "golang.org/x/oauth2/facebook"

	"github.com/dropDatabas3/socialpost/internal/provider"
)

const graphEndpoint = "https://graph.facebook.com/v7.0/me"

type Client struct {
	cfg *oauth2.Config
}

// New creates a Facebook client from app credentials.
func New(c provider.Config) *Client {
	scopes := c.Scopes
	if len(scopes) == 0 {
		scopes = []string{"public_profile"}
	}
	return &Client{cfg: &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       scopes,
		Endpoint:     ofb.Endpoint,
	}}
}

func (f *Client) ID() string { return "facebook" }

func (f *Client) AuthorizationURL(state string) string {
	return f.cfg.AuthCodeURL(state)
}

func (f *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := f.cfg.Exchange(provider.WithHTTPClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("facebook: exchange code: %w", err)
	}
	return tok, nil
}

type graphUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Link    string `json:"link"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

func (f *Client) FetchProfile(ctx context.Context, tok *oauth2.Token) (*provider.Profile, error) {
	hc := f.cfg.Client(provider.WithHTTPClient(ctx), tok)

	u, _ := url.Parse(graphEndpoint)
	q := u.Query()
	q.Set("fields", "id,name,email,link,picture")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("facebook: fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facebook: graph api error: status %d", resp.StatusCode)
	}

	var gu graphUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return nil, fmt.Errorf("facebook: decode profile: %w", err)
	}
	if gu.ID == "" {
		return nil, fmt.Errorf("facebook: profile without id")
	}

	return &provider.Profile{
		ID:         gu.ID,
		Name:       gu.Name,
		Email:      gu.Email,
		PictureURL: gu.Picture.Data.URL,
		ProfileURL: gu.Link,
	}, nil
}
