package repository

import (
	"context"
	"time"
)

// Account es una cuenta local. Este servicio solo la lee: la gestión de
// cuentas pertenece a otro sistema.
type Account struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// AccountRepository resuelve cuentas locales por id.
type AccountRepository interface {
	// GetByID busca una cuenta por id.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Account, error)
}
