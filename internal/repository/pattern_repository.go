package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/three-level-auth/internal/model"
)

// PatternRepo persists drawn patterns in `pattern_credentials`.  Rows are only
// ever appended.
type PatternRepo struct{ DB *sql.DB }

func NewPatternRepo(db *sql.DB) *PatternRepo { return &PatternRepo{DB: db} }

// Insert stores a new pattern row.  The sequence is kept as a JSON array.
func (r *PatternRepo) Insert(ctx context.Context, p model.PatternCredential) error {
	seq := p.Sequence
	if seq == nil {
		seq = []int{}
	}
	raw, err := json.Marshal(seq)
	if err != nil {
		return fmt.Errorf("encode pattern: %w", err)
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO pattern_credentials (id, account_id, sequence) VALUES (?,?,?)",
		p.ID.String(), p.AccountID.String(), raw)
	return err
}

// FirstByAccount returns the earliest pattern enrolled for the account.
func (r *PatternRepo) FirstByAccount(ctx context.Context, accountID model.AccountID) (model.PatternCredential, error) {
	var (
		p   model.PatternCredential
		raw []byte
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,account_id,sequence,created_at FROM pattern_credentials WHERE account_id=? ORDER BY created_at, id LIMIT 1",
		accountID.String()).Scan(&p.ID, &p.AccountID, &raw, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PatternCredential{}, ErrNotFound
	}
	if err != nil {
		return model.PatternCredential{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Sequence); err != nil {
			return model.PatternCredential{}, fmt.Errorf("decode pattern %s: %w", p.ID, err)
		}
	}
	return p, nil
}
