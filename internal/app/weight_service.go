package app

import (
	"context"

	"github.com/shopspring/decimal"

	"bodylog/internal/domain"
)

// WeightFinder is the ownership-checked lookup the write side relies on, so
// cross-account updates fail exactly like cross-account reads.
type WeightFinder interface {
	FindByID(ctx context.Context, accountID, id int64) (*domain.WeightEntry, error)
}

// WeightService encapsulates the write side of weight tracking. Every
// method body runs inside a single transaction.
type WeightService struct {
	repo   domain.WeightRepository
	finder WeightFinder
	tx     domain.Transactor
}

// NewWeightService creates a WeightService backed by the given repository,
// finder and transaction boundary.
func NewWeightService(repo domain.WeightRepository, finder WeightFinder, tx domain.Transactor) *WeightService {
	return &WeightService{repo: repo, finder: finder, tx: tx}
}

// Record stores a new entry owned by the account. Value and date are
// accepted as given.
func (s *WeightService) Record(ctx context.Context, accountID int64, value decimal.Decimal, recordedAt domain.Date, memo *string) (*domain.WeightEntry, error) {
	var entry *domain.WeightEntry
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		stored, err := s.repo.InsertWeight(ctx, &domain.WeightEntry{
			AccountID:  accountID,
			Value:      value,
			RecordedAt: recordedAt,
			Memo:       memo,
		})
		if err != nil {
			return err
		}
		entry = stored
		return nil
	})
	return entry, err
}

// Update replaces the mutable fields of an existing entry, preserving its
// id and ownership.
func (s *WeightService) Update(ctx context.Context, accountID, id int64, value decimal.Decimal, recordedAt domain.Date, memo *string) (*domain.WeightEntry, error) {
	var entry *domain.WeightEntry
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.finder.FindByID(ctx, accountID, id)
		if err != nil {
			return err
		}
		updated := existing.Update(value, recordedAt, memo)
		stored, err := s.repo.UpdateWeight(ctx, &updated)
		if err != nil {
			return err
		}
		entry = stored
		return nil
	})
	return entry, err
}

// Delete permanently removes an entry after the ownership-checked lookup.
func (s *WeightService) Delete(ctx context.Context, accountID, id int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.finder.FindByID(ctx, accountID, id)
		if err != nil {
			return err
		}
		return s.repo.DeleteWeight(ctx, existing.ID)
	})
}
