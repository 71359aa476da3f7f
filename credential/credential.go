// Package credential verifies passwords and manages token lifecycle.
// Passwords are only ever stored as bcrypt hashes.
package credential

import (
	"context"
	"errors"
	"strings"

	"github.com/geuresti/Hack-The-Woodz-Backend/domain"
	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	accounts domain.AccountRepository
	tokens   domain.TokenCache
}

func NewService(accounts domain.AccountRepository, tokens domain.TokenCache) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
	}
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// LogIn verifies the password and issues a fresh token. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *Service) LogIn(ctx context.Context, username, password string) (string, *domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.tokens.GenerateAndSaveToken(ctx, account.ID, account.Username)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// LogOut revokes the caller's own token.
func (s *Service) LogOut(ctx context.Context, token string) error {
	return s.tokens.DeleteToken(ctx, token)
}
