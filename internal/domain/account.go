// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Account is a registered user, created from identity-provider webhook data.
type Account struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	ProviderID string    `json:"providerId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AccountRegisterRequest is the normalized registration payload extracted
// from a verified webhook delivery.
type AccountRegisterRequest struct {
	Email      string
	ProviderID string
}

// AccountRepository is the port for account persistence.
type AccountRepository interface {
	// InsertAccount stores a new account and returns it with its assigned id.
	// Implementations treat provider id as unique: re-delivery of the same
	// registration yields the already stored account.
	InsertAccount(ctx context.Context, account *Account) (*Account, error)
}

// Transactor runs a function inside a single transaction boundary,
// committing on success and rolling back on error. A call made while a
// transaction is already open on the context joins it.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	InReadTx(ctx context.Context, fn func(ctx context.Context) error) error
}
