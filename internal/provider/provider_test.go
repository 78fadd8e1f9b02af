package provider

import (
	"context"
	"testing"

	"golang.org/x/oauth2"
)

type fakeClient struct{ id string }

func (f *fakeClient) ID() string                        { return f.id }
func (f *fakeClient) AuthorizationURL(state string) string { return "https://example.test/auth?state=" + state }
func (f *fakeClient) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "tok"}, nil
}
func (f *fakeClient) FetchProfile(ctx context.Context, tok *oauth2.Token) (*Profile, error) {
	return &Profile{ID: "pu-1"}, nil
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(&fakeClient{id: "facebook"})
	r.Register(&fakeClient{id: "github"})

	if _, ok := r.CreateInstance("twitter"); ok {
		t.Fatal("unexpected client for unregistered implementer")
	}
	c, ok := r.CreateInstance("github")
	if !ok || c.ID() != "github" {
		t.Fatalf("expected github client, got %v ok=%v", c, ok)
	}

	ids := r.IDs()
	if len(ids) != 2 || ids[0] != "facebook" || ids[1] != "github" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestNewState_FreshAndURLSafe(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s := NewState()
		if len(s) < 40 {
			t.Fatalf("state too short: %q", s)
		}
		for _, r := range s {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			default:
				t.Fatalf("state contains non URL-safe rune %q", r)
			}
		}
		if seen[s] {
			t.Fatalf("state repeated: %q", s)
		}
		seen[s] = true
	}
}
