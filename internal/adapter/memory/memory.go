// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"bodylog/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	accounts []domain.Account
	weights  []domain.WeightEntry

	accountIDCounter int64
	weightIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.Transactor = (*DB)(nil)

// InTx runs fn directly; individual operations are serialised by the mutex,
// which is consistency enough for a test double.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// InReadTx runs fn directly.
func (db *DB) InReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- AccountRepository ---

// InsertAccount stores an account, reusing the stored row when the provider
// id was already registered.
func (db *DB) InsertAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.accounts {
		if db.accounts[i].ProviderID == account.ProviderID {
			db.accounts[i].Email = account.Email
			stored := db.accounts[i]
			return &stored, nil
		}
	}

	db.accountIDCounter++
	stored := *account
	stored.ID = db.accountIDCounter
	stored.CreatedAt = time.Now().UTC()
	db.accounts = append(db.accounts, stored)
	return &stored, nil
}

// --- WeightRepository ---

// InsertWeight stores a weight entry.
func (db *DB) InsertWeight(ctx context.Context, entry *domain.WeightEntry) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weightIDCounter++
	stored := *entry
	stored.ID = db.weightIDCounter
	db.weights = append(db.weights, stored)
	return &stored, nil
}

// GetWeight fetches an entry by id.
func (db *DB) GetWeight(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, w := range db.weights {
		if w.ID == id {
			entry := w
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("weight %d: %w", id, domain.ErrNotFound)
}

// UpdateWeight replaces a stored entry.
func (db *DB) UpdateWeight(ctx context.Context, entry *domain.WeightEntry) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weights {
		if db.weights[i].ID == entry.ID {
			db.weights[i] = *entry
			stored := db.weights[i]
			return &stored, nil
		}
	}
	return nil, fmt.Errorf("weight %d: %w", entry.ID, domain.ErrNotFound)
}

// DeleteWeight removes an entry.
func (db *DB) DeleteWeight(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weights {
		if db.weights[i].ID == id {
			db.weights = append(db.weights[:i], db.weights[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListWeights returns the account's entries, newest recorded date first.
func (db *DB) ListWeights(ctx context.Context, accountID int64) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := []domain.WeightEntry{}
	for _, w := range db.weights {
		if w.AccountID == accountID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].RecordedAt.Compare(out[j].RecordedAt); c != 0 {
			return c > 0
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// ListWeightsBetween returns the account's entries in [from, to], oldest first.
func (db *DB) ListWeightsBetween(ctx context.Context, accountID int64, from, to domain.Date) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := []domain.WeightEntry{}
	for _, w := range db.weights {
		if w.AccountID != accountID {
			continue
		}
		if w.RecordedAt.Before(from) || w.RecordedAt.After(to) {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].RecordedAt.Compare(out[j].RecordedAt); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
