package domain

import (
	"context"
)

type Account struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	JobTitle     string `json:"job_title"`
	PasswordHash string `json:"-"`
}

type AccountRepository interface {
	GetByID(ctx context.Context, id int) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetAll(ctx context.Context) ([]Account, error)
	Insert(ctx context.Context, account *Account) error
}
