package credential

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/geuresti/Hack-The-Woodz-Backend/domain"

	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAccounts struct {
	account *domain.Account
}

func (f *fakeAccounts) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	if f.account == nil || f.account.ID != id {
		return nil, pgx.ErrNoRows
	}
	return f.account, nil
}

func (f *fakeAccounts) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if f.account == nil || f.account.Username != username {
		return nil, pgx.ErrNoRows
	}
	return f.account, nil
}

func (f *fakeAccounts) GetAll(ctx context.Context) ([]domain.Account, error) {
	return nil, nil
}

func (f *fakeAccounts) Insert(ctx context.Context, account *domain.Account) error {
	f.account = account
	return nil
}

type fakeTokens struct {
	n      int
	tokens map[string]string
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{tokens: make(map[string]string)}
}

func (f *fakeTokens) GetTokenExpiry() time.Duration { return time.Hour }

func (f *fakeTokens) GetAccountByToken(ctx context.Context, token string) (int, string, error) {
	username, ok := f.tokens[token]
	if !ok {
		return 0, "", fmt.Errorf("no such token")
	}
	return 1, username, nil
}

func (f *fakeTokens) GenerateAndSaveToken(ctx context.Context, id int, username string) (string, error) {
	f.n++
	token := fmt.Sprintf("tok-%d", f.n)
	f.tokens[token] = username
	return token, nil
}

func (f *fakeTokens) DeleteToken(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func newTestService(t *testing.T, password string) (*Service, *fakeAccounts, *fakeTokens) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	accounts := &fakeAccounts{account: &domain.Account{
		ID:           1,
		Username:     "alice",
		PasswordHash: string(hash),
	}}
	tokens := newFakeTokens()
	return NewService(accounts, tokens), accounts, tokens
}

func TestHashPassword(t *testing.T) {
	s := NewService(&fakeAccounts{}, newFakeTokens())
	hash, err := s.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))
}

func TestLogIn(t *testing.T) {
	s, _, tokens := newTestService(t, "hunter2")

	token, account, err := s.LogIn(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)

	_, username, err := tokens.GetAccountByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestLogInInvalid(t *testing.T) {
	s, _, _ := newTestService(t, "hunter2")

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "wrong"},
		{"unknown user", "bob", "hunter2"},
		{"empty username", "", "hunter2"},
		{"empty password", "alice", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := s.LogIn(context.Background(), tc.username, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLogOut(t *testing.T) {
	s, _, tokens := newTestService(t, "hunter2")

	token, _, err := s.LogIn(context.Background(), "alice", "hunter2")
	require.NoError(t, err)

	require.NoError(t, s.LogOut(context.Background(), token))
	_, _, err = tokens.GetAccountByToken(context.Background(), token)
	assert.Error(t, err)
}
