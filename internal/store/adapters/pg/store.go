// Package pg implementa los repositorios del dominio sobre PostgreSQL (pgx).
package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/socialpost/internal/domain/repository"
)

// Store agrupa los repositorios pg sobre un pool compartido.
type Store struct {
	pool *pgxpool.Pool

	socialAccounts *socialAccountRepo
	accounts       *accountRepo
}

// Options ajusta el pool de conexiones.
type Options struct {
	MaxConns int32
	MinConns int32
}

// New abre el pool y verifica conectividad con un ping.
func New(ctx context.Context, dsn string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pg: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}

	return &Store{
		pool:           pool,
		socialAccounts: &socialAccountRepo{pool: pool},
		accounts:       &accountRepo{pool: pool},
	}, nil
}

// SocialAccounts retorna el repositorio de social account records.
func (s *Store) SocialAccounts() repository.SocialAccountRepository {
	return s.socialAccounts
}

// Accounts retorna el repositorio de cuentas locales (solo lectura).
func (s *Store) Accounts() repository.AccountRepository {
	return s.accounts
}

// Ping verifica la conexión (healthchecks).
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close cierra el pool.
func (s *Store) Close() {
	s.pool.Close()
}
