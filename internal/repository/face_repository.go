package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/three-level-auth/internal/model"
)

// FaceRepo persists the single facial reference per account in
// `facial_credentials`.
type FaceRepo struct{ DB *sql.DB }

func NewFaceRepo(db *sql.DB) *FaceRepo { return &FaceRepo{DB: db} }

// Upsert replaces the account's stored image and returns the number of rows
// the server reports as affected (1 for insert, 2 for replace, 0 if nothing
// was written).
func (r *FaceRepo) Upsert(ctx context.Context, f model.FacialCredential) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO facial_credentials (account_id, image, enrolled_at) VALUES (?,?,NOW(6)) "+
			"ON DUPLICATE KEY UPDATE image=VALUES(image), enrolled_at=VALUES(enrolled_at)",
		f.AccountID.String(), f.Image)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetByAccount returns the stored facial reference for the account.
func (r *FaceRepo) GetByAccount(ctx context.Context, accountID model.AccountID) (model.FacialCredential, error) {
	var f model.FacialCredential
	err := r.DB.QueryRowContext(ctx,
		"SELECT account_id,image,enrolled_at FROM facial_credentials WHERE account_id=? LIMIT 1",
		accountID.String()).Scan(&f.AccountID, &f.Image, &f.EnrolledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FacialCredential{}, ErrNotFound
	}
	return f, err
}
