package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/socialpost/internal/domain/repository"
)

// ─── SocialAccountRepository ───

type socialAccountRepo struct{ pool *pgxpool.Pool }

func (r *socialAccountRepo) Create(ctx context.Context, input repository.CreateSocialAccountInput) (*repository.SocialAccount, error) {
	const query = `
		INSERT INTO social_account (id, account_id, implementer_id, provider_user_id, name, token, additional_data, link_uri, link_title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`
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
	}
	err := r.pool.QueryRow(ctx, query,
		rec.ID, rec.AccountID, rec.ImplementerID, rec.ProviderUserID,
		rec.Name, rec.Token, rec.AdditionalData, rec.LinkURI, rec.LinkTitle,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation en (implementer_id, provider_user_id)
				return nil, repository.ErrConflict
			case "23503": // fk_violation en account_id
				return nil, fmt.Errorf("%w: unknown account", repository.ErrInvalidInput)
			}
		}
		return nil, fmt.Errorf("%w: pg: create social account: %v", repository.ErrPersistence, err)
	}
	return rec, nil
}

const socialAccountColumns = `id, account_id, implementer_id, provider_user_id, name, token, COALESCE(additional_data, ''), COALESCE(link_uri, ''), COALESCE(link_title, ''), created_at, updated_at`

func scanSocialAccount(row pgx.Row) (*repository.SocialAccount, error) {
	var rec repository.SocialAccount
	err := row.Scan(
		&rec.ID, &rec.AccountID, &rec.ImplementerID, &rec.ProviderUserID,
		&rec.Name, &rec.Token, &rec.AdditionalData, &rec.LinkURI, &rec.LinkTitle,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *socialAccountRepo) GetByID(ctx context.Context, id string) (*repository.SocialAccount, error) {
	query := `SELECT ` + socialAccountColumns + ` FROM social_account WHERE id = $1`
	rec, err := scanSocialAccount(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: pg: get social account: %v", repository.ErrPersistence, err)
	}
	return rec, nil
}

func (r *socialAccountRepo) GetByProviderUser(ctx context.Context, implementerID, providerUserID string) (*repository.SocialAccount, error) {
	query := `SELECT ` + socialAccountColumns + ` FROM social_account WHERE implementer_id = $1 AND provider_user_id = $2`
	rec, err := scanSocialAccount(r.pool.QueryRow(ctx, query, implementerID, providerUserID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: pg: get by provider user: %v", repository.ErrPersistence, err)
	}
	return rec, nil
}

func (r *socialAccountRepo) ListByAccount(ctx context.Context, implementerID, accountID string) ([]repository.SocialAccount, error) {
	query := `SELECT ` + socialAccountColumns + `
		FROM social_account
		WHERE implementer_id = $1 AND account_id = $2
		ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, implementerID, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: pg: list by account: %v", repository.ErrPersistence, err)
	}
	defer rows.Close()

	var recs []repository.SocialAccount
	for rows.Next() {
		rec, err := scanSocialAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: pg: list by account: %v", repository.ErrPersistence, err)
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: pg: list by account: %v", repository.ErrPersistence, err)
	}
	return recs, nil
}

func (r *socialAccountRepo) UpdateToken(ctx context.Context, id, token string) error {
	const query = `UPDATE social_account SET token = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, token)
	if err != nil {
		return fmt.Errorf("%w: pg: update token: %v", repository.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *socialAccountRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM social_account WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: pg: delete social account: %v", repository.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ─── AccountRepository ───

type accountRepo struct{ pool *pgxpool.Pool }

func (r *accountRepo) GetByID(ctx context.Context, id string) (*repository.Account, error) {
	const query = `SELECT id, email, COALESCE(name, ''), created_at FROM account WHERE id = $1`
	var acc repository.Account
	err := r.pool.QueryRow(ctx, query, id).Scan(&acc.ID, &acc.Email, &acc.Name, &acc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: pg: get account: %v", repository.ErrPersistence, err)
	}
	return &acc, nil
}
