package repository

import (
	"context"
	"time"
)

// SocialAccount es la asociación persistida entre una cuenta local y una
// identidad en una red social. El campo Token siempre contiene ciphertext
// producido por el codec; el texto plano nunca se persiste.
type SocialAccount struct {
	ID             string // uuid, asignado por el sistema, inmutable
	AccountID      string // cuenta local dueña del record, inmutable
	ImplementerID  string // plugin que creó el record ("facebook", ...), inmutable
	ProviderUserID string // id del usuario en el provider, único por implementer, inmutable
	Name           string // nombre en el provider, mutable
	Token          string // ciphertext del token de acceso, mutable
	AdditionalData string // blob opaco del implementer, mutable
	LinkURI        string // URL al perfil en el provider (opcional)
	LinkTitle      string // título del link al perfil (opcional)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateSocialAccountInput contiene los datos para crear un record.
// Token ya viene cifrado por la capa de servicio.
type CreateSocialAccountInput struct {
	AccountID      string
	ImplementerID  string
	ProviderUserID string
	Name           string
	Token          string
	AdditionalData string
	LinkURI        string
	LinkTitle      string
}

// SocialAccountRepository define operaciones sobre social account records.
type SocialAccountRepository interface {
	// Create inserta un record nuevo.
	// Retorna ErrConflict si ya existe (implementer_id, provider_user_id):
	// la unicidad la garantiza el store aunque el caller haya pre-chequeado.
	Create(ctx context.Context, input CreateSocialAccountInput) (*SocialAccount, error)

	// GetByID busca un record por su id.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*SocialAccount, error)

	// GetByProviderUser busca el record de (implementer, provider_user_id).
	// Retorna ErrNotFound si no existe.
	GetByProviderUser(ctx context.Context, implementerID, providerUserID string) (*SocialAccount, error)

	// ListByAccount lista los records de una cuenta local para un implementer,
	// ordenados por creación. Sin paginación: el cardinal es chico por diseño.
	ListByAccount(ctx context.Context, implementerID, accountID string) ([]SocialAccount, error)

	// UpdateToken reemplaza el ciphertext del token de un record.
	UpdateToken(ctx context.Context, id, token string) error

	// Delete elimina un record por id.
	// Retorna ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
