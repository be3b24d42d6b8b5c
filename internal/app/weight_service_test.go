package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bodylog/internal/app"
	"bodylog/internal/domain"
)

// passTx satisfies domain.Transactor without a real database.
type passTx struct{}

func (passTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTx) InReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockWeightRepo struct {
	insertFn      func(ctx context.Context, e *domain.WeightEntry) (*domain.WeightEntry, error)
	getFn         func(ctx context.Context, id int64) (*domain.WeightEntry, error)
	updateFn      func(ctx context.Context, e *domain.WeightEntry) (*domain.WeightEntry, error)
	deleteFn      func(ctx context.Context, id int64) error
	listFn        func(ctx context.Context, accountID int64) ([]domain.WeightEntry, error)
	listBetweenFn func(ctx context.Context, accountID int64, from, to domain.Date) ([]domain.WeightEntry, error)
}

func (m *mockWeightRepo) InsertWeight(ctx context.Context, e *domain.WeightEntry) (*domain.WeightEntry, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, e)
	}
	return e, nil
}

func (m *mockWeightRepo) GetWeight(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockWeightRepo) UpdateWeight(ctx context.Context, e *domain.WeightEntry) (*domain.WeightEntry, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, e)
	}
	return e, nil
}

func (m *mockWeightRepo) DeleteWeight(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockWeightRepo) ListWeights(ctx context.Context, accountID int64) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListWeightsBetween(ctx context.Context, accountID int64, from, to domain.Date) ([]domain.WeightEntry, error) {
	if m.listBetweenFn != nil {
		return m.listBetweenFn(ctx, accountID, from, to)
	}
	return nil, nil
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func strptr(s string) *string { return &s }

func newWriteService(repo *mockWeightRepo) *app.WeightService {
	finder := app.NewWeightQueryService(repo, passTx{})
	return app.NewWeightService(repo, finder, passTx{})
}

func TestRecord(t *testing.T) {
	repo := &mockWeightRepo{
		insertFn: func(_ context.Context, e *domain.WeightEntry) (*domain.WeightEntry, error) {
			stored := *e
			stored.ID = 11
			return &stored, nil
		},
	}
	svc := newWriteService(repo)

	got, err := svc.Record(context.Background(), 1, dec(t, "75.5"), domain.NewDate(2025, time.January, 1), strptr("morning"))
	require.NoError(t, err)
	require.Equal(t, int64(11), got.ID)
	require.Equal(t, int64(1), got.AccountID)
	require.Equal(t, "75.5", got.Value.String())
	require.Equal(t, "morning", *got.Memo)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	existing := domain.WeightEntry{
		ID: 7, AccountID: 1,
		Value:      dec(t, "75.5"),
		RecordedAt: domain.NewDate(2025, time.January, 1),
		Memo:       strptr("old"),
	}
	var saved *domain.WeightEntry
	repo := &mockWeightRepo{
		getFn: func(_ context.Context, id int64) (*domain.WeightEntry, error) {
			require.Equal(t, int64(7), id)
			e := existing
			return &e, nil
		},
		updateFn: func(_ context.Context, e *domain.WeightEntry) (*domain.WeightEntry, error) {
			saved = e
			return e, nil
		},
	}
	svc := newWriteService(repo)

	got, err := svc.Update(context.Background(), 1, 7, dec(t, "74.0"), domain.NewDate(2025, time.January, 2), strptr("new"))
	require.NoError(t, err)
	require.Equal(t, int64(7), got.ID)
	require.Equal(t, int64(1), got.AccountID)
	require.Equal(t, "74.0", got.Value.String())
	require.Equal(t, "2025-01-02", got.RecordedAt.String())
	require.Equal(t, "new", *got.Memo)
	require.NotNil(t, saved)
}

func TestUpdateCrossAccountDenied(t *testing.T) {
	repo := &mockWeightRepo{
		getFn: func(_ context.Context, id int64) (*domain.WeightEntry, error) {
			return &domain.WeightEntry{ID: id, AccountID: 99, Value: dec(t, "80")}, nil
		},
		updateFn: func(_ context.Context, _ *domain.WeightEntry) (*domain.WeightEntry, error) {
			t.Fatal("update must not run after a denied lookup")
			return nil, nil
		},
	}
	svc := newWriteService(repo)

	_, err := svc.Update(context.Background(), 1, 7, dec(t, "74.0"), domain.NewDate(2025, time.January, 2), nil)
	require.True(t, errors.Is(err, domain.ErrAccessDenied))
}

func TestUpdateNotFound(t *testing.T) {
	svc := newWriteService(&mockWeightRepo{})
	_, err := svc.Update(context.Background(), 1, 404, dec(t, "74.0"), domain.NewDate(2025, time.January, 2), nil)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete(t *testing.T) {
	var deleted int64
	repo := &mockWeightRepo{
		getFn: func(_ context.Context, id int64) (*domain.WeightEntry, error) {
			return &domain.WeightEntry{ID: id, AccountID: 1, Value: dec(t, "80")}, nil
		},
		deleteFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	svc := newWriteService(repo)

	require.NoError(t, svc.Delete(context.Background(), 1, 7))
	require.Equal(t, int64(7), deleted)
}

func TestDeleteCrossAccountDenied(t *testing.T) {
	repo := &mockWeightRepo{
		getFn: func(_ context.Context, id int64) (*domain.WeightEntry, error) {
			return &domain.WeightEntry{ID: id, AccountID: 99, Value: dec(t, "80")}, nil
		},
		deleteFn: func(_ context.Context, _ int64) error {
			t.Fatal("delete must not run after a denied lookup")
			return nil
		},
	}
	svc := newWriteService(repo)

	err := svc.Delete(context.Background(), 1, 7)
	require.True(t, errors.Is(err, domain.ErrAccessDenied))
}

func TestRecordRepoError(t *testing.T) {
	repo := &mockWeightRepo{
		insertFn: func(_ context.Context, _ *domain.WeightEntry) (*domain.WeightEntry, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newWriteService(repo)

	_, err := svc.Record(context.Background(), 1, dec(t, "75.5"), domain.NewDate(2025, time.January, 1), nil)
	require.Error(t, err)
}
