package domain

import "errors"

var (
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied indicates that the record exists but belongs to another account.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidPeriod indicates an unrecognised graph period value.
	ErrInvalidPeriod = errors.New("invalid period")

	// webhook-specific errors
	ErrMissingHeader    = errors.New("missing required header")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")

	// auth-specific errors
	ErrInvalidToken        = errors.New("invalid token")
	ErrMissingAccountClaim = errors.New("missing or invalid accountId claim")
	ErrInvalidAuthHeader   = errors.New("invalid authorization header format")
)
