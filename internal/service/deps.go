package service

import (
	"context"

	"github.com/iliyamo/three-level-auth/internal/model"
	"github.com/iliyamo/three-level-auth/internal/queue"
)

// AccountStore is the account half of the credential store.
type AccountStore interface {
	Create(ctx context.Context, a model.Account) error
	GetByID(ctx context.Context, id model.AccountID) (model.Account, error)
	GetByEmail(ctx context.Context, email string) (model.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// PatternStore holds append-only pattern credentials.
type PatternStore interface {
	Insert(ctx context.Context, p model.PatternCredential) error
	FirstByAccount(ctx context.Context, accountID model.AccountID) (model.PatternCredential, error)
}

// FaceStore holds one facial reference per account.
type FaceStore interface {
	Upsert(ctx context.Context, f model.FacialCredential) (int64, error)
	GetByAccount(ctx context.Context, accountID model.AccountID) (model.FacialCredential, error)
}

// EventSink receives audit events.  Failures are logged by the caller and
// never change the outcome of the operation.
type EventSink interface {
	Publish(ctx context.Context, ev queue.AuthEvent) error
}
