package social

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/socialpost/internal/audit"
	"github.com/dropDatabas3/socialpost/internal/domain/repository"
	"github.com/dropDatabas3/socialpost/internal/metrics"
	"github.com/dropDatabas3/socialpost/internal/observability/logger"
	"github.com/dropDatabas3/socialpost/internal/security/secretbox"
)

// RecordsDeps contains dependencies for the records service.
type RecordsDeps struct {
	Records  repository.SocialAccountRepository
	Accounts repository.AccountRepository
	Codec    *secretbox.Codec
}

// recordsService implements RecordsService.
type recordsService struct {
	records  repository.SocialAccountRepository
	accounts repository.AccountRepository
	codec    *secretbox.Codec
}

// NewRecordsService creates a new RecordsService.
func NewRecordsService(d RecordsDeps) RecordsService {
	return &recordsService{
		records:  d.Records,
		accounts: d.Accounts,
		codec:    d.Codec,
	}
}

func (s *recordsService) Register(ctx context.Context, req RegisterRequest) (*repository.SocialAccount, bool, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.records"))

	if req.ImplementerID == "" || req.ProviderUserID == "" {
		return nil, false, fmt.Errorf("%w: implementer and provider user id are required", repository.ErrInvalidInput)
	}
	if req.AccountID == "" {
		return nil, false, fmt.Errorf("%w: account id is required", repository.ErrInvalidInput)
	}

	// The owning account must exist before we mint a mapping for it.
	if _, err := s.accounts.GetByID(ctx, req.AccountID); err != nil {
		if repository.IsNotFound(err) {
			return nil, false, fmt.Errorf("%w: %s", ErrUnknownAccount, req.AccountID)
		}
		return nil, false, err
	}

	ciphertext, err := s.codec.Encrypt(req.Token)
	if err != nil {
		log.Error("token encryption failed", logger.Err(err))
		return nil, false, err
	}

	rec, err := s.records.Create(ctx, repository.CreateSocialAccountInput{
		AccountID:      req.AccountID,
		ImplementerID:  req.ImplementerID,
		ProviderUserID: req.ProviderUserID,
		Name:           req.Name,
		Token:          ciphertext,
		AdditionalData: req.AdditionalData,
		LinkURI:        req.LinkURI,
		LinkTitle:      req.LinkTitle,
	})
	if err != nil {
		if repository.IsConflict(err) {
			// Mapping already exists; the original record wins.
			existing, gerr := s.records.GetByProviderUser(ctx, req.ImplementerID, req.ProviderUserID)
			if gerr != nil {
				return nil, false, gerr
			}
			log.Info("mapping already registered",
				logger.Implementer(req.ImplementerID),
				logger.ProviderUserID(req.ProviderUserID),
				logger.RecordID(existing.ID),
			)
			return existing, false, nil
		}
		log.Error("record creation failed", logger.Err(err))
		return nil, false, err
	}

	metrics.RecordMutations.WithLabelValues("create").Inc()
	audit.Log(ctx, audit.EventRecordCreated, map[string]any{
		"record_id":        rec.ID,
		"account_id":       rec.AccountID,
		"implementer":      rec.ImplementerID,
		"provider_user_id": rec.ProviderUserID,
	})
	log.Info("record created",
		logger.Implementer(rec.ImplementerID),
		logger.ProviderUserID(rec.ProviderUserID),
		logger.AccountID(rec.AccountID),
		logger.RecordID(rec.ID),
	)
	return rec, true, nil
}

func (s *recordsService) Resolve(ctx context.Context, implementerID, providerUserID string) (*repository.SocialAccount, error) {
	return s.records.GetByProviderUser(ctx, implementerID, providerUserID)
}

func (s *recordsService) Get(ctx context.Context, recordID string) (*repository.SocialAccount, error) {
	return s.records.GetByID(ctx, recordID)
}

func (s *recordsService) List(ctx context.Context, implementerID, accountID string) ([]repository.SocialAccount, error) {
	return s.records.ListByAccount(ctx, implementerID, accountID)
}

func (s *recordsService) Token(ctx context.Context, recordID string) (string, error) {
	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return "", err
	}
	plain, err := s.codec.Decrypt(rec.Token)
	if err != nil {
		logger.From(ctx).Error("token decryption failed",
			logger.Layer("service"), logger.Component("social.records"),
			logger.RecordID(recordID), logger.Err(err),
		)
		return "", err
	}
	return plain, nil
}

func (s *recordsService) UpdateToken(ctx context.Context, recordID, plainToken string) error {
	ciphertext, err := s.codec.Encrypt(plainToken)
	if err != nil {
		return err
	}
	if err := s.records.UpdateToken(ctx, recordID, ciphertext); err != nil {
		return err
	}
	metrics.RecordMutations.WithLabelValues("update_token").Inc()
	audit.Log(ctx, audit.EventRecordTokenUpdated, map[string]any{"record_id": recordID})
	return nil
}

func (s *recordsService) Delete(ctx context.Context, recordID string) error {
	if err := s.records.Delete(ctx, recordID); err != nil {
		return err
	}
	metrics.RecordMutations.WithLabelValues("delete").Inc()
	audit.Log(ctx, audit.EventRecordDeleted, map[string]any{"record_id": recordID})
	return nil
}
