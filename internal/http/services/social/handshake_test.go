package social

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	cmem "github.com/dropDatabas3/socialpost/internal/cache/memory"
	"github.com/dropDatabas3/socialpost/internal/domain/repository"
	"github.com/dropDatabas3/socialpost/internal/provider"
	"github.com/dropDatabas3/socialpost/internal/security/secretbox"
	memstore "github.com/dropDatabas3/socialpost/internal/store/adapters/memory"
)

// fakeClient simulates a provider without network access.
type fakeClient struct {
	id          string
	exchangeErr error
	profileErr  error
	profile     provider.Profile
}

func (f *fakeClient) ID() string { return f.id }
func (f *fakeClient) AuthorizationURL(state string) string {
	return "https://provider.test/auth?state=" + state
}
func (f *fakeClient) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &oauth2.Token{AccessToken: "tok-" + code}, nil
}
func (f *fakeClient) FetchProfile(ctx context.Context, tok *oauth2.Token) (*provider.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := f.profile
	return &p, nil
}

func newHandshakeFixture(t *testing.T, client provider.Client) (HandshakeService, RecordsService, DataHandler) {
	t.Helper()

	codec, err := secretbox.New("fixture-installation-secret")
	if err != nil {
		t.Fatal(err)
	}
	store := memstore.New()
	store.SeedAccount(repository.Account{ID: "42", Email: "alice@example.test"})

	records := NewRecordsService(RecordsDeps{
		Records:  store.SocialAccounts(),
		Accounts: store.Accounts(),
		Codec:    codec,
	})
	registry := provider.NewRegistry()
	registry.Register(client)
	sessions := NewDataHandler(cmem.New(time.Minute), time.Minute)

	hs := NewHandshakeService(HandshakeDeps{
		Registry: registry,
		Sessions: sessions,
		Records:  records,
	})
	return hs, records, sessions
}

func TestHandshake_FullFlow(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		id:      "facebook",
		profile: provider.Profile{ID: "pu-1", Name: "Alice", ProfileURL: "https://provider.test/alice"},
	}
	hs, records, _ := newHandshakeFixture(t, client)
	ctx := context.Background()

	begin, err := hs.Begin(ctx, BeginRequest{ImplementerID: "facebook", SessionID: "sid", AccountID: "42"})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	_, state, ok := strings.Cut(begin.RedirectURL, "state=")
	if !ok || state == "" {
		t.Fatalf("redirect URL without state: %q", begin.RedirectURL)
	}

	res, err := hs.Complete(ctx, CompleteRequest{
		ImplementerID: "facebook",
		SessionID:     "sid",
		AccountID:     "42",
		Code:          "abc",
		State:         state,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !res.NewRecord {
		t.Fatal("expected a new record")
	}
	if res.Record.AccountID != "42" || res.Record.ProviderUserID != "pu-1" {
		t.Fatalf("unexpected record: %+v", res.Record)
	}
	if res.Record.LinkURI != "https://provider.test/alice" || res.Record.LinkTitle != "Alice" {
		t.Fatalf("profile link not carried over: %+v", res.Record)
	}

	// The stored token must decrypt back to the serialized provider token.
	plain, err := records.Token(ctx, res.Record.ID)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if !strings.Contains(plain, "tok-abc") {
		t.Fatalf("decrypted token does not contain access token: %q", plain)
	}
	if res.Record.Token == plain {
		t.Fatal("repository stored the token in plaintext")
	}
}

func TestHandshake_StateMismatchNullifiesSession(t *testing.T) {
	t.Parallel()

	client := &fakeClient{id: "facebook", profile: provider.Profile{ID: "pu-1"}}
	hs, _, sessions := newHandshakeFixture(t, client)
	ctx := context.Background()

	if _, err := hs.Begin(ctx, BeginRequest{ImplementerID: "facebook", SessionID: "sid", AccountID: "42"}); err != nil {
		t.Fatal(err)
	}

	_, err := hs.Complete(ctx, CompleteRequest{
		ImplementerID: "facebook",
		SessionID:     "sid",
		AccountID:     "42",
		Code:          "abc",
		State:         "forged-state",
	})
	if !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("expected ErrStateMismatch, got %v", err)
	}

	// The stored state nonce was nullified: replaying the real flow fails too.
	if v, ok := sessions.Get("sid", "facebook", sessionKeyState); ok && v != "" {
		t.Fatalf("state survived nullification: %q", v)
	}
}

func TestHandshake_ProviderErrorKeepsSessionKeys(t *testing.T) {
	t.Parallel()

	client := &fakeClient{id: "facebook", profile: provider.Profile{ID: "pu-1"}}
	hs, _, sessions := newHandshakeFixture(t, client)
	ctx := context.Background()

	begin, err := hs.Begin(ctx, BeginRequest{ImplementerID: "facebook", SessionID: "sid", AccountID: "42"})
	if err != nil {
		t.Fatal(err)
	}
	_, state, _ := strings.Cut(begin.RedirectURL, "state=")

	_, err = hs.Complete(ctx, CompleteRequest{
		ImplementerID: "facebook",
		SessionID:     "sid",
		AccountID:     "42",
		ErrorParam:    "access_denied",
	})
	if !errors.Is(err, ErrProviderDenied) {
		t.Fatalf("expected ErrProviderDenied, got %v", err)
	}

	// The denial is reported before state validation, so the nonce survives
	// and the user can retry the same handshake.
	if v, ok := sessions.Get("sid", "facebook", sessionKeyState); !ok || v != state {
		t.Fatalf("session state lost after provider error: %q ok=%v", v, ok)
	}
}

func TestHandshake_ExchangeFailure(t *testing.T) {
	t.Parallel()

	client := &fakeClient{id: "facebook", exchangeErr: errors.New("boom")}
	hs, _, _ := newHandshakeFixture(t, client)
	ctx := context.Background()

	begin, err := hs.Begin(ctx, BeginRequest{ImplementerID: "facebook", SessionID: "sid", AccountID: "42"})
	if err != nil {
		t.Fatal(err)
	}
	_, state, _ := strings.Cut(begin.RedirectURL, "state=")

	_, err = hs.Complete(ctx, CompleteRequest{
		ImplementerID: "facebook",
		SessionID:     "sid",
		AccountID:     "42",
		Code:          "abc",
		State:         state,
	})
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestHandshake_UnknownImplementer(t *testing.T) {
	t.Parallel()

	client := &fakeClient{id: "facebook"}
	hs, _, _ := newHandshakeFixture(t, client)

	if _, err := hs.Begin(context.Background(), BeginRequest{ImplementerID: "myspace", SessionID: "sid"}); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestHandshake_CallbackWithoutAccountHeader(t *testing.T) {
	t.Parallel()

	client := &fakeClient{id: "facebook", profile: provider.Profile{ID: "pu-1", Name: "Alice"}}
	hs, _, _ := newHandshakeFixture(t, client)
	ctx := context.Background()

	begin, err := hs.Begin(ctx, BeginRequest{ImplementerID: "facebook", SessionID: "sid", AccountID: "42"})
	if err != nil {
		t.Fatal(err)
	}
	_, state, _ := strings.Cut(begin.RedirectURL, "state=")

	// The provider redirect arrives via the bare browser, without the
	// identity header: the account must come from the session seeded at connect.
	res, err := hs.Complete(ctx, CompleteRequest{
		ImplementerID: "facebook",
		SessionID:     "sid",
		Code:          "abc",
		State:         state,
	})
	if err != nil {
		t.Fatalf("complete without account header: %v", err)
	}
	if res.Record.AccountID != "42" {
		t.Fatalf("record bound to wrong account: %q", res.Record.AccountID)
	}
}

func TestHandshake_SecondLoginReusesRecord(t *testing.T) {
	t.Parallel()

	client := &fakeClient{id: "facebook", profile: provider.Profile{ID: "pu-1", Name: "Alice"}}
	hs, _, _ := newHandshakeFixture(t, client)
	ctx := context.Background()

	run := func() *CompleteResult {
		begin, err := hs.Begin(ctx, BeginRequest{ImplementerID: "facebook", SessionID: "sid", AccountID: "42"})
		if err != nil {
			t.Fatal(err)
		}
		_, state, _ := strings.Cut(begin.RedirectURL, "state=")
		res, err := hs.Complete(ctx, CompleteRequest{
			ImplementerID: "facebook", SessionID: "sid", AccountID: "42",
			Code: "abc", State: state,
		})
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	first := run()
	second := run()
	if !first.NewRecord {
		t.Fatal("first login should create the record")
	}
	if second.NewRecord {
		t.Fatal("second login must reuse the existing record")
	}
	if first.Record.ID != second.Record.ID {
		t.Fatalf("record identity changed: %s vs %s", first.Record.ID, second.Record.ID)
	}
}
