package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/socialpost/internal/domain/repository"
)

func TestCreate_EnforcesUniqueMapping(t *testing.T) {
	t.Parallel()

	s := New()
	repo := s.SocialAccounts()
	ctx := context.Background()

	first, err := repo.Create(ctx, repository.CreateSocialAccountInput{
		AccountID:      "42",
		ImplementerID:  "fb",
		ProviderUserID: "pu-1",
		Name:           "Alice",
		Token:          "ct-1",
	})
	if err != nil {
		t.Fatalf("create err: %v", err)
	}

	_, err = repo.Create(ctx, repository.CreateSocialAccountInput{
		AccountID:      "99", // otra cuenta, mismo mapping
		ImplementerID:  "fb",
		ProviderUserID: "pu-1",
		Token:          "ct-2",
	})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// El record original queda intacto
	got, err := repo.GetByProviderUser(ctx, "fb", "pu-1")
	if err != nil {
		t.Fatalf("get err: %v", err)
	}
	if got.ID != first.ID || got.AccountID != "42" || got.Token != "ct-1" {
		t.Fatalf("original record changed: %+v", got)
	}
}

func TestListByAccount_OrderedByCreation(t *testing.T) {
	t.Parallel()

	s := New()
	repo := s.SocialAccounts()
	ctx := context.Background()

	for _, pu := range []string{"pu-a", "pu-b", "pu-c"} {
		if _, err := repo.Create(ctx, repository.CreateSocialAccountInput{
			AccountID:      "42",
			ImplementerID:  "fb",
			ProviderUserID: pu,
			Token:          "ct",
		}); err != nil {
			t.Fatal(err)
		}
	}
	// otro implementer y otra cuenta no deben aparecer
	_, _ = repo.Create(ctx, repository.CreateSocialAccountInput{
		AccountID: "42", ImplementerID: "tw", ProviderUserID: "pu-a", Token: "ct",
	})
	_, _ = repo.Create(ctx, repository.CreateSocialAccountInput{
		AccountID: "7", ImplementerID: "fb", ProviderUserID: "pu-z", Token: "ct",
	})

	recs, err := repo.ListByAccount(ctx, "fb", "42")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i, want := range []string{"pu-a", "pu-b", "pu-c"} {
		if recs[i].ProviderUserID != want {
			t.Fatalf("order mismatch at %d: got %s want %s", i, recs[i].ProviderUserID, want)
		}
	}
}

func TestDelete_ThenGetReturnsNotFound(t *testing.T) {
	t.Parallel()

	s := New()
	repo := s.SocialAccounts()
	ctx := context.Background()

	rec, err := repo.Create(ctx, repository.CreateSocialAccountInput{
		AccountID: "42", ImplementerID: "fb", ProviderUserID: "pu-1", Token: "ct",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete err: %v", err)
	}
	if _, err := repo.GetByProviderUser(ctx, "fb", "pu-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, rec.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("double delete: expected ErrNotFound, got %v", err)
	}

	// liberado el mapping, se puede volver a crear
	if _, err := repo.Create(ctx, repository.CreateSocialAccountInput{
		AccountID: "42", ImplementerID: "fb", ProviderUserID: "pu-1", Token: "ct2",
	}); err != nil {
		t.Fatalf("recreate after delete: %v", err)
	}
}

func TestUpdateToken(t *testing.T) {
	t.Parallel()

	s := New()
	repo := s.SocialAccounts()
	ctx := context.Background()

	rec, err := repo.Create(ctx, repository.CreateSocialAccountInput{
		AccountID: "42", ImplementerID: "fb", ProviderUserID: "pu-1", Token: "ct-old",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateToken(ctx, rec.ID, "ct-new"); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.GetByID(ctx, rec.ID)
	if got.Token != "ct-new" {
		t.Fatalf("token not updated: %q", got.Token)
	}
	if err := repo.UpdateToken(ctx, "nope", "x"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
