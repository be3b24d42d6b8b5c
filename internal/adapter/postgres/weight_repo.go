package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bodylog/internal/domain"
)

// InsertWeight inserts a new weight entry.
func (d *DB) InsertWeight(ctx context.Context, entry *domain.WeightEntry) (*domain.WeightEntry, error) {
	query := `
		INSERT INTO weights (account_id, value, recorded_at, memo)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	stored := *entry
	err := d.conn(ctx).QueryRowContext(ctx, query,
		entry.AccountID, entry.Value, entry.RecordedAt, entry.Memo,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("insert weight: %w", err)
	}
	return &stored, nil
}

// GetWeight fetches a weight entry by primary id, regardless of owner.
func (d *DB) GetWeight(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	query := `
		SELECT id, account_id, value, recorded_at, memo
		FROM weights
		WHERE id = $1`

	row := d.conn(ctx).QueryRowContext(ctx, query, id)
	entry, err := scanWeight(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("weight %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get weight: %w", err)
	}
	return entry, nil
}

// UpdateWeight replaces value, recorded date and memo of an existing entry.
func (d *DB) UpdateWeight(ctx context.Context, entry *domain.WeightEntry) (*domain.WeightEntry, error) {
	query := `
		UPDATE weights
		SET value = $1, recorded_at = $2, memo = $3
		WHERE id = $4`

	res, err := d.conn(ctx).ExecContext(ctx, query,
		entry.Value, entry.RecordedAt, entry.Memo, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("update weight: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("weight %d: %w", entry.ID, domain.ErrNotFound)
	}
	return entry, nil
}

// DeleteWeight removes a weight entry permanently.
func (d *DB) DeleteWeight(ctx context.Context, id int64) error {
	if _, err := d.conn(ctx).ExecContext(ctx, `DELETE FROM weights WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}
	return nil
}

// ListWeights returns all entries for the account, newest recorded date first.
func (d *DB) ListWeights(ctx context.Context, accountID int64) ([]domain.WeightEntry, error) {
	query := `
		SELECT id, account_id, value, recorded_at, memo
		FROM weights
		WHERE account_id = $1
		ORDER BY recorded_at DESC, id DESC`

	return d.listWeights(ctx, query, accountID)
}

// ListWeightsBetween returns the account's entries recorded in [from, to],
// oldest first.
func (d *DB) ListWeightsBetween(ctx context.Context, accountID int64, from, to domain.Date) ([]domain.WeightEntry, error) {
	query := `
		SELECT id, account_id, value, recorded_at, memo
		FROM weights
		WHERE account_id = $1 AND recorded_at BETWEEN $2 AND $3
		ORDER BY recorded_at ASC, id ASC`

	return d.listWeights(ctx, query, accountID, from, to)
}

func (d *DB) listWeights(ctx context.Context, query string, args ...any) ([]domain.WeightEntry, error) {
	rows, err := d.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	defer rows.Close()

	out := []domain.WeightEntry{}
	for rows.Next() {
		entry, err := scanWeight(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list weights: %w", err)
		}
		out = append(out, *entry)
	}
	return out, rows.Err()
}

func scanWeight(scan func(dest ...any) error) (*domain.WeightEntry, error) {
	var e domain.WeightEntry
	var memo sql.NullString
	if err := scan(&e.ID, &e.AccountID, &e.Value, &e.RecordedAt, &memo); err != nil {
		return nil, err
	}
	if memo.Valid {
		e.Memo = &memo.String
	}
	return &e, nil
}
