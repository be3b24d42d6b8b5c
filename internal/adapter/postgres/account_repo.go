package postgres

import (
	"context"
	"fmt"

	"bodylog/internal/domain"
)

// InsertAccount stores a new account. provider_id is unique: a replayed
// webhook delivery for the same provider user refreshes the email and
// returns the already stored account instead of creating a duplicate.
func (d *DB) InsertAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (email, provider_id)
		VALUES ($1, $2)
		ON CONFLICT (provider_id) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, created_at`

	stored := *account
	err := d.conn(ctx).QueryRowContext(ctx, query, account.Email, account.ProviderID).
		Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return &stored, nil
}
