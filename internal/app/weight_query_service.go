package app

import (
	"context"
	"fmt"

	"bodylog/internal/domain"
)

// WeightQueryService encapsulates the read side of weight tracking.
type WeightQueryService struct {
	repo domain.WeightRepository
	tx   domain.Transactor
}

// NewWeightQueryService creates a WeightQueryService backed by the given
// repository and transaction boundary.
func NewWeightQueryService(repo domain.WeightRepository, tx domain.Transactor) *WeightQueryService {
	return &WeightQueryService{repo: repo, tx: tx}
}

// FindAll returns every entry owned by the account, newest first.
func (s *WeightQueryService) FindAll(ctx context.Context, accountID int64) ([]domain.WeightEntry, error) {
	var entries []domain.WeightEntry
	err := s.tx.InReadTx(ctx, func(ctx context.Context) error {
		var err error
		entries, err = s.repo.ListWeights(ctx, accountID)
		return err
	})
	return entries, err
}

// FindByID returns the entry with the given id. A missing id yields
// domain.ErrNotFound; an entry owned by another account yields
// domain.ErrAccessDenied. Existence is checked before ownership.
func (s *WeightQueryService) FindByID(ctx context.Context, accountID, id int64) (*domain.WeightEntry, error) {
	var entry *domain.WeightEntry
	err := s.tx.InReadTx(ctx, func(ctx context.Context) error {
		found, err := s.repo.GetWeight(ctx, id)
		if err != nil {
			return err
		}
		if found.AccountID != accountID {
			return fmt.Errorf("weight %d: %w", id, domain.ErrAccessDenied)
		}
		entry = found
		return nil
	})
	return entry, err
}

// Graph returns the account's entries recorded between now minus the period
// and now, oldest first.
func (s *WeightQueryService) Graph(ctx context.Context, accountID int64, period string) ([]domain.WeightEntry, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	now := domain.Today()
	from := p.LowerBound(now)

	var entries []domain.WeightEntry
	err = s.tx.InReadTx(ctx, func(ctx context.Context) error {
		var err error
		entries, err = s.repo.ListWeightsBetween(ctx, accountID, from, now)
		return err
	})
	return entries, err
}

// Stats summarises all of the account's entries. Accounts with no entries
// yield domain.ErrNotFound.
func (s *WeightQueryService) Stats(ctx context.Context, accountID int64) (*domain.WeightStat, error) {
	var stat *domain.WeightStat
	err := s.tx.InReadTx(ctx, func(ctx context.Context) error {
		entries, err := s.repo.ListWeights(ctx, accountID)
		if err != nil {
			return err
		}
		stat, err = domain.ComputeStat(entries)
		return err
	})
	return stat, err
}
