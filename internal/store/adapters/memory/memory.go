// Package memory implementa los repositorios del dominio en memoria.
// Pensado para desarrollo y tests; respeta los mismos invariantes que pg,
// en particular la unicidad de (implementer_id, provider_user_id).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/socialpost/internal/domain/repository"
)

// Store agrupa los repositorios en memoria.
type Store struct {
	mu       sync.RWMutex
	records  map[string]*repository.SocialAccount // por record id
	byMap    map[mapKey]string                    // (implementer, provider_user) -> record id
	accounts map[string]*repository.Account
	seq      int64 // desempata CreatedAt iguales en el orden de listado
}

type mapKey struct {
	implementerID  string
	providerUserID string
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		records:  make(map[string]*repository.SocialAccount),
		byMap:    make(map[mapKey]string),
		accounts: make(map[string]*repository.Account),
	}
}

// SeedAccount registra una cuenta local (solo para dev/tests).
func (s *Store) SeedAccount(acc repository.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now().UTC()
	}
	s.accounts[acc.ID] = &acc
}

// SocialAccounts retorna el repositorio de social account records.
func (s *Store) SocialAccounts() repository.SocialAccountRepository {
	return (*socialAccountRepo)(s)
}

// Accounts retorna el repositorio de cuentas locales.
func (s *Store) Accounts() repository.AccountRepository {
	return (*accountRepo)(s)
}

// ─── SocialAccountRepository ───

type socialAccountRepo Store

func (r *socialAccountRepo) Create(ctx context.Context, input repository.CreateSocialAccountInput) (*repository.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := mapKey{input.ImplementerID, input.ProviderUserID}
	if _, exists := r.byMap[key]; exists {
		return nil, repository.ErrConflict
	}

	now := time.Now().UTC()
	r.seq++
	rec := &repository.SocialAccount{
		ID:             uuid.NewString(),
		AccountID:      input.AccountID,
		ImplementerID:  input.ImplementerID,
		ProviderUserID: input.ProviderUserID,
		Name:           input.Name,
		Token:          input.Token,
		AdditionalData: input.AdditionalData,
		LinkURI:        input.LinkURI,
		LinkTitle:      input.LinkTitle,
		CreatedAt:      now.Add(time.Duration(r.seq)), // orden estable de inserción
		UpdatedAt:      now,
	}
	r.records[rec.ID] = rec
	r.byMap[key] = rec.ID

	out := *rec
	return &out, nil
}

func (r *socialAccountRepo) GetByID(ctx context.Context, id string) (*repository.SocialAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (r *socialAccountRepo) GetByProviderUser(ctx context.Context, implementerID, providerUserID string) (*repository.SocialAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byMap[mapKey{implementerID, providerUserID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *r.records[id]
	return &out, nil
}

func (r *socialAccountRepo) ListByAccount(ctx context.Context, implementerID, accountID string) ([]repository.SocialAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var recs []repository.SocialAccount
	for _, rec := range r.records {
		if rec.ImplementerID == implementerID && rec.AccountID == accountID {
			recs = append(recs, *rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.Before(recs[j].CreatedAt) })
	return recs, nil
}

func (r *socialAccountRepo) UpdateToken(ctx context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	rec.Token = token
	rec.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *socialAccountRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.byMap, mapKey{rec.ImplementerID, rec.ProviderUserID})
	delete(r.records, id)
	return nil
}

// ─── AccountRepository ───

type accountRepo Store

func (r *accountRepo) GetByID(ctx context.Context, id string) (*repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *acc
	return &out, nil
}
