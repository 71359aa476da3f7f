package domain

import (
	"context"
	"time"
)

// TokenCache stores opaque bearer tokens mapped to the account that owns
// them. Tokens expire unless refreshed by use.
type TokenCache interface {
	GetTokenExpiry() time.Duration
	GetAccountByToken(ctx context.Context, token string) (int, string, error)
	GenerateAndSaveToken(ctx context.Context, id int, username string) (string, error)
	DeleteToken(ctx context.Context, token string) error
}
