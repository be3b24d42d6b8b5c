package domain

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// WeightEntry is one dated, valued body-weight measurement owned by an
// account. Value is arbitrary precision; the unit is implicit.
type WeightEntry struct {
	ID         int64           `json:"id"`
	AccountID  int64           `json:"accountId"`
	Value      decimal.Decimal `json:"value"`
	RecordedAt Date            `json:"recordedAt"`
	Memo       *string         `json:"memo"`
}

// Update returns a copy with value, date and memo replaced. Identity and
// ownership are preserved.
func (e WeightEntry) Update(value decimal.Decimal, recordedAt Date, memo *string) WeightEntry {
	return WeightEntry{
		ID:         e.ID,
		AccountID:  e.AccountID,
		Value:      value,
		RecordedAt: recordedAt,
		Memo:       memo,
	}
}

// WeightStat is the derived max/min/average/change summary over an
// account's entries. It is computed on demand, never persisted.
type WeightStat struct {
	Max     decimal.Decimal `json:"max"`
	Min     decimal.Decimal `json:"min"`
	Average decimal.Decimal `json:"average"`
	Change  decimal.Decimal `json:"change"`
}

// ComputeStat summarises the given entries: max and min over all values,
// average rounded to 2 decimal places (half-up), and change = value at the
// latest recorded date minus value at the earliest. Entries sharing a date
// are ordered by id ascending so the result is deterministic.
// Returns ErrNotFound for an empty set.
func ComputeStat(entries []WeightEntry) (*WeightStat, error) {
	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	max := entries[0].Value
	min := entries[0].Value
	sum := decimal.Zero
	for _, e := range entries {
		if e.Value.GreaterThan(max) {
			max = e.Value
		}
		if e.Value.LessThan(min) {
			min = e.Value
		}
		sum = sum.Add(e.Value)
	}
	average := sum.DivRound(decimal.NewFromInt(int64(len(entries))), 2)

	sorted := make([]WeightEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if c := sorted[i].RecordedAt.Compare(sorted[j].RecordedAt); c != 0 {
			return c < 0
		}
		return sorted[i].ID < sorted[j].ID
	})
	change := sorted[len(sorted)-1].Value.Sub(sorted[0].Value)

	return &WeightStat{Max: max, Min: min, Average: average, Change: change}, nil
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	InsertWeight(ctx context.Context, entry *WeightEntry) (*WeightEntry, error)
	GetWeight(ctx context.Context, id int64) (*WeightEntry, error)
	UpdateWeight(ctx context.Context, entry *WeightEntry) (*WeightEntry, error)
	DeleteWeight(ctx context.Context, id int64) error
	// ListWeights returns all entries for the account, newest recorded date
	// first (ties by id descending).
	ListWeights(ctx context.Context, accountID int64) ([]WeightEntry, error)
	// ListWeightsBetween returns entries recorded in [from, to], oldest
	// first (ties by id ascending).
	ListWeightsBetween(ctx context.Context, accountID int64, from, to Date) ([]WeightEntry, error)
}
