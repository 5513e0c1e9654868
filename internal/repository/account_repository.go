package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/three-level-auth/internal/model"
)

// AccountRepo reads and writes the `accounts` table.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountColumns = "id,email,username,password_hash,created_at"

// Create inserts a fully populated account.  A unique-key collision is
// reported as ErrEmailExists or ErrUsernameExists.
func (r *AccountRepo) Create(ctx context.Context, a model.Account) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (id, email, username, password_hash) VALUES (?,?,?,?)",
		a.ID.String(), a.Email, a.Username, a.PasswordHash)
	if msg, ok := duplicateKey(err); ok {
		if strings.Contains(msg, "username") {
			return ErrUsernameExists
		}
		return ErrEmailExists
	}
	return err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id model.AccountID) (model.Account, error) {
	return r.getOne(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id=? LIMIT 1", id.String())
}

// GetByEmail fetches an account by email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	return r.getOne(ctx, "SELECT "+accountColumns+" FROM accounts WHERE email=? LIMIT 1", email)
}

// EmailExists reports whether an account already uses email.
func (r *AccountRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM accounts WHERE email=? LIMIT 1", email)
}

// UsernameExists reports whether an account already uses username.
func (r *AccountRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM accounts WHERE username=? LIMIT 1", username)
}

func (r *AccountRepo) getOne(ctx context.Context, query string, arg any) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrNotFound
	}
	return a, err
}

func (r *AccountRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
