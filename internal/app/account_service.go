// Package app holds the application services and business logic.
package app

import (
	"context"

	"bodylog/internal/domain"
)

// MetadataMerger pushes key/value metadata onto an identity-provider user.
// Implemented by the Clerk API client.
type MetadataMerger interface {
	MergeUserMetadata(ctx context.Context, providerID string, metadata map[string]any) error
}

// AccountService handles account provisioning from webhook registrations.
type AccountService struct {
	repo  domain.AccountRepository
	clerk MetadataMerger
	tx    domain.Transactor
}

// NewAccountService creates an AccountService. merger may be nil when no
// identity-provider write-back is configured.
func NewAccountService(repo domain.AccountRepository, merger MetadataMerger, tx domain.Transactor) *AccountService {
	return &AccountService{repo: repo, clerk: merger, tx: tx}
}

// Register persists an account from the normalized request and writes the
// assigned account id back into the provider user's metadata, so tokens the
// provider issues afterwards carry the accountId claim. A metadata failure
// is returned to the caller; the account itself stays committed.
func (s *AccountService) Register(ctx context.Context, req *domain.AccountRegisterRequest) (*domain.Account, error) {
	var account *domain.Account
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		stored, err := s.repo.InsertAccount(ctx, &domain.Account{
			Email:      req.Email,
			ProviderID: req.ProviderID,
		})
		if err != nil {
			return err
		}
		account = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.clerk != nil {
		if err := s.clerk.MergeUserMetadata(ctx, account.ProviderID, map[string]any{"accountId": account.ID}); err != nil {
			return nil, err
		}
	}
	return account, nil
}
