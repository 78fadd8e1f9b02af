package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/socialpost/internal/domain/repository"
	"github.com/dropDatabas3/socialpost/internal/security/secretbox"
	memstore "github.com/dropDatabas3/socialpost/internal/store/adapters/memory"
)

func newRecordsFixture(t *testing.T) RecordsService {
	t.Helper()
	codec, err := secretbox.New("fixture-installation-secret")
	require.NoError(t, err)

	store := memstore.New()
	store.SeedAccount(repository.Account{ID: "42", Email: "alice@example.test"})

	return NewRecordsService(RecordsDeps{
		Records:  store.SocialAccounts(),
		Accounts: store.Accounts(),
		Codec:    codec,
	})
}

func TestRecords_RegisterResolveToken(t *testing.T) {
	t.Parallel()

	svc := newRecordsFixture(t)
	ctx := context.Background()

	rec, created, err := svc.Register(ctx, RegisterRequest{
		ImplementerID:  "facebook",
		AccountID:      "42",
		ProviderUserID: "pu-1",
		Name:           "Alice",
		Token:          "tok-abc",
	})
	require.NoError(t, err)
	require.True(t, created)
	require.NotEmpty(t, rec.ID)
	require.NotEqual(t, "tok-abc", rec.Token, "token must be stored encrypted")

	resolved, err := svc.Resolve(ctx, "facebook", "pu-1")
	require.NoError(t, err)
	require.Equal(t, "42", resolved.AccountID)

	plain, err := svc.Token(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "tok-abc", plain)
}

func TestRecords_DuplicateRegisterKeepsOriginal(t *testing.T) {
	t.Parallel()

	svc := newRecordsFixture(t)
	ctx := context.Background()

	first, created, err := svc.Register(ctx, RegisterRequest{
		ImplementerID: "facebook", AccountID: "42", ProviderUserID: "pu-1", Token: "tok-abc",
	})
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.Register(ctx, RegisterRequest{
		ImplementerID: "facebook", AccountID: "42", ProviderUserID: "pu-1", Token: "tok-other",
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)

	plain, err := svc.Token(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "tok-abc", plain, "duplicate registration must not overwrite the token")
}

func TestRecords_RegisterUnknownAccount(t *testing.T) {
	t.Parallel()

	svc := newRecordsFixture(t)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		ImplementerID: "facebook", AccountID: "999", ProviderUserID: "pu-1", Token: "tok",
	})
	require.ErrorIs(t, err, ErrUnknownAccount)
}

func TestRecords_UpdateToken(t *testing.T) {
	t.Parallel()

	svc := newRecordsFixture(t)
	ctx := context.Background()

	rec, _, err := svc.Register(ctx, RegisterRequest{
		ImplementerID: "facebook", AccountID: "42", ProviderUserID: "pu-1", Token: "tok-old",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateToken(ctx, rec.ID, "tok-new"))

	plain, err := svc.Token(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "tok-new", plain)

	require.ErrorIs(t, svc.UpdateToken(ctx, "missing", "x"), repository.ErrNotFound)
}

func TestRecords_DeleteThenResolveFails(t *testing.T) {
	t.Parallel()

	svc := newRecordsFixture(t)
	ctx := context.Background()

	rec, _, err := svc.Register(ctx, RegisterRequest{
		ImplementerID: "facebook", AccountID: "42", ProviderUserID: "pu-1", Token: "tok",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))

	_, err = svc.Resolve(ctx, "facebook", "pu-1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecords_ListByAccount(t *testing.T) {
	t.Parallel()

	svc := newRecordsFixture(t)
	ctx := context.Background()

	for _, pu := range []string{"pu-1", "pu-2"} {
		_, _, err := svc.Register(ctx, RegisterRequest{
			ImplementerID: "facebook", AccountID: "42", ProviderUserID: pu, Token: "tok",
		})
		require.NoError(t, err)
	}

	recs, err := svc.List(ctx, "facebook", "42")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "pu-1", recs[0].ProviderUserID)
	require.Equal(t, "pu-2", recs[1].ProviderUserID)
}
