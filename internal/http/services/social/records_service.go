package social

import (
	"context"

	"github.com/dropDatabas3/socialpost/internal/domain/repository"
)

// RecordsService owns the lifecycle of social account records: the persisted
// association between a local account and a provider identity, with the
// provider access token stored encrypted.
type RecordsService interface {
	// Register associates a provider identity with a local account.
	// The token is encrypted before it touches the store. If the
	// (implementer, provider user) pair already has a record, the existing
	// record is returned with created=false and nothing changes.
	Register(ctx context.Context, req RegisterRequest) (rec *repository.SocialAccount, created bool, err error)

	// Resolve finds the record mapping a provider identity to its local account.
	Resolve(ctx context.Context, implementerID, providerUserID string) (*repository.SocialAccount, error)

	// Get returns a record by its id.
	Get(ctx context.Context, recordID string) (*repository.SocialAccount, error)

	// List returns the records of a local account for one implementer,
	// ordered by creation.
	List(ctx context.Context, implementerID, accountID string) ([]repository.SocialAccount, error)

	// Token returns the decrypted provider access token of a record.
	// This is the only path that ever yields token plaintext.
	Token(ctx context.Context, recordID string) (string, error)

	// UpdateToken encrypts and stores a replacement token for a record.
	UpdateToken(ctx context.Context, recordID, plainToken string) error

	// Delete removes a record. The provider-side grant is not revoked.
	Delete(ctx context.Context, recordID string) error
}

// RegisterRequest carries the data to create a record. Token is plaintext
// here; it never reaches the repository in that form.
type RegisterRequest struct {
	ImplementerID  string
	AccountID      string
	ProviderUserID string
	Name           string
	Token          string
	AdditionalData string
	LinkURI        string
	LinkTitle      string
}
