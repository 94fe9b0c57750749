package repository

import "context"

// TokenStore holds the current upstream bearer token. At most one value is
// current at any time; Set replaces it.
type TokenStore interface {
	// Get returns domain.ErrNotFound when no token has been stored yet.
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
}
