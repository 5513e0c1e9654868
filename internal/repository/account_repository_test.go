package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/three-level-auth/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestAccountRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepo(db)
	a := model.Account{ID: model.NewAccountID(), Email: "a@x.com", Username: "a", PasswordHash: "h"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts (id, email, username, password_hash) VALUES (?,?,?,?)")).
		WithArgs(a.ID.String(), "a@x.com", "a", "h").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), a))
}

func TestAccountRepo_Create_DuplicateKeys(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		want error
	}{
		{"email", "Duplicate entry 'a@x.com' for key 'accounts.uq_accounts_email'", ErrEmailExists},
		{"username", "Duplicate entry 'a' for key 'accounts.uq_accounts_username'", ErrUsernameExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectExec("INSERT INTO accounts").
				WillReturnError(&mysql.MySQLError{Number: 1062, Message: tc.msg})

			err := NewAccountRepo(db).Create(context.Background(), model.Account{ID: model.NewAccountID()})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAccountRepo_Create_OtherError(t *testing.T) {
	db, mock := newMock(t)
	boom := errors.New("db down")
	mock.ExpectExec("INSERT INTO accounts").WillReturnError(boom)

	err := NewAccountRepo(db).Create(context.Background(), model.Account{ID: model.NewAccountID()})
	assert.ErrorIs(t, err, boom)
}

func TestAccountRepo_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	id := model.NewAccountID()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,email,username,password_hash,created_at FROM accounts WHERE email=? LIMIT 1")).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "password_hash", "created_at"}).
			AddRow(id.String(), "a@x.com", "a", "h", created))

	got, err := NewAccountRepo(db).GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, model.Account{ID: id, Email: "a@x.com", Username: "a", PasswordHash: "h", CreatedAt: created}, got)
}

func TestAccountRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	id := model.NewAccountID()
	mock.ExpectQuery("FROM accounts WHERE id=").
		WithArgs(id.String()).
		WillReturnError(sql.ErrNoRows)

	_, err := NewAccountRepo(db).GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepo_Exists(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepo(db)

	mock.ExpectQuery("SELECT 1 FROM accounts WHERE email=").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM accounts WHERE username=").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	ok, err := repo.EmailExists(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UsernameExists(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}
