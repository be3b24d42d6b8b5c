package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeStat(t *testing.T) {
	entries := []WeightEntry{
		{ID: 3, AccountID: 1, Value: dec("78.0"), RecordedAt: NewDate(2025, time.January, 3)},
		{ID: 2, AccountID: 1, Value: dec("76.0"), RecordedAt: NewDate(2025, time.January, 2)},
		{ID: 1, AccountID: 1, Value: dec("74.0"), RecordedAt: NewDate(2025, time.January, 1)},
	}

	stat, err := ComputeStat(entries)
	require.NoError(t, err)
	require.Equal(t, "78.0", stat.Max.String())
	require.Equal(t, "74.0", stat.Min.String())
	require.Equal(t, "76.00", stat.Average.String())
	require.Equal(t, "4.0", stat.Change.String())
}

func TestComputeStatRoundsAverageHalfUp(t *testing.T) {
	entries := []WeightEntry{
		{ID: 1, Value: dec("70.00"), RecordedAt: NewDate(2025, time.January, 1)},
		{ID: 2, Value: dec("70.01"), RecordedAt: NewDate(2025, time.January, 2)},
	}
	stat, err := ComputeStat(entries)
	require.NoError(t, err)
	// 140.01 / 2 = 70.005, half-up to 70.01
	require.Equal(t, "70.01", stat.Average.String())
}

func TestComputeStatEmpty(t *testing.T) {
	_, err := ComputeStat(nil)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestComputeStatTieBrokenByID(t *testing.T) {
	day := NewDate(2025, time.May, 1)
	entries := []WeightEntry{
		{ID: 2, Value: dec("80"), RecordedAt: day},
		{ID: 1, Value: dec("75"), RecordedAt: day},
	}
	stat, err := ComputeStat(entries)
	require.NoError(t, err)
	// Latest is id 2, earliest id 1 when dates tie.
	require.Equal(t, "5", stat.Change.String())
}

func TestWeightEntryUpdatePreservesIdentity(t *testing.T) {
	memo := "old"
	e := WeightEntry{ID: 7, AccountID: 1, Value: dec("75.5"), RecordedAt: NewDate(2025, time.January, 1), Memo: &memo}

	newMemo := "new"
	updated := e.Update(dec("74.0"), NewDate(2025, time.January, 2), &newMemo)

	require.Equal(t, int64(7), updated.ID)
	require.Equal(t, int64(1), updated.AccountID)
	require.Equal(t, "74.0", updated.Value.String())
	require.Equal(t, "2025-01-02", updated.RecordedAt.String())
	require.Equal(t, "new", *updated.Memo)
}
