package pg

import (
	"context"
	"fmt"

	"github.com/geuresti/Hack-The-Woodz-Backend/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

type AccountPostgresRepository struct {
	pool *pgxpool.Pool
}

func CreateAccountTable() string {
	return `CREATE TABLE IF NOT EXISTS accounts
(
	id SERIAL NOT NULL PRIMARY KEY,
	username VARCHAR(150) NOT NULL UNIQUE,
	email VARCHAR(200) NOT NULL UNIQUE CHECK (email ~ '^[A-Za-z0-9._%-]+@[A-Za-z0-9.-]+[.][A-Za-z]+$'),
	first_name VARCHAR(150) NOT NULL DEFAULT '',
	password_hash VARCHAR(200) NOT NULL
);`
}

func CreateProfileTable() string {
	return `CREATE TABLE IF NOT EXISTS profiles
(
	id SERIAL NOT NULL PRIMARY KEY,
	aid INTEGER NOT NULL UNIQUE REFERENCES accounts(id) ON DELETE CASCADE,
	job_title VARCHAR(150) NOT NULL DEFAULT ''
);`
}

const accountColumns = `a.id, a.username, a.email, a.first_name, a.password_hash, COALESCE(p.job_title, '')
FROM accounts a LEFT JOIN profiles p ON p.aid = a.id`

func (ac *AccountPostgresRepository) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	row := ac.pool.QueryRow(ctx, "SELECT "+accountColumns+" WHERE a.id = $1", id)
	account := domain.Account{}
	if err := row.Scan(&account.ID, &account.Username, &account.Email, &account.FirstName, &account.PasswordHash, &account.JobTitle); err != nil {
		return nil, err
	}
	return &account, nil
}

func (ac *AccountPostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	row := ac.pool.QueryRow(ctx, "SELECT "+accountColumns+" WHERE a.username = $1", username)
	account := domain.Account{}
	if err := row.Scan(&account.ID, &account.Username, &account.Email, &account.FirstName, &account.PasswordHash, &account.JobTitle); err != nil {
		return nil, err
	}
	return &account, nil
}

func (ac *AccountPostgresRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	rows, err := ac.pool.Query(ctx, "SELECT "+accountColumns+" ORDER BY a.id ASC")
	if err != nil {
		return nil, err
	}
	ret := make([]domain.Account, 0)
	for rows.Next() {
		account := domain.Account{}
		rows.Scan(&account.ID, &account.Username, &account.Email, &account.FirstName, &account.PasswordHash, &account.JobTitle)
		ret = append(ret, account)
	}
	return ret, nil
}

// Insert creates the account row and its one-to-one profile row in a
// single transaction, then fills in the generated id.
func (ac *AccountPostgresRepository) Insert(ctx context.Context, account *domain.Account) error {
	tx, err := ac.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	row := tx.QueryRow(
		ctx,
		"INSERT INTO accounts(username, email, first_name, password_hash) VALUES($1, $2, $3, $4) RETURNING id",
		account.Username,
		account.Email,
		account.FirstName,
		account.PasswordHash,
	)
	if err := row.Scan(&account.ID); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, "INSERT INTO profiles(aid, job_title) VALUES($1, $2)", account.ID, account.JobTitle)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() != 1 {
		return fmt.Errorf("RowsAffected() = %d", cmd.RowsAffected())
	}
	return tx.Commit(ctx)
}

func NewAccountPostgresRepository(pool *pgxpool.Pool) *AccountPostgresRepository {
	return &AccountPostgresRepository{
		pool: pool,
	}
}
