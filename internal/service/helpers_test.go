package service

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/model"
	"github.com/iliyamo/three-level-auth/internal/queue"
	"github.com/iliyamo/three-level-auth/internal/repository"
)

type recordingSink struct {
	mu     sync.Mutex
	events []queue.AuthEvent
	err    error
}

func (r *recordingSink) Publish(ctx context.Context, ev queue.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingSink) last() queue.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type fixture struct {
	store    *repository.MemoryStore
	sink     *recordingSink
	accounts *AccountService
	patterns *PatternService
	faces    *FaceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	sink := &recordingSink{}
	log := logging.Nop()
	return &fixture{
		store:    store,
		sink:     sink,
		accounts: NewAccountService(store.Accounts(), bcrypt.MinCost, sink, log),
		patterns: NewPatternService(store.Accounts(), store.Patterns(), nil, sink, log),
		faces:    NewFaceService(store.Accounts(), store.Faces(), nil, sink, log),
	}
}

func (f *fixture) signup(t *testing.T, email, username, password string) model.AccountID {
	t.Helper()
	id, err := f.accounts.Signup(context.Background(), SignupInput{Email: email, Username: username, Password: password})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return id
}

func dataURL(b []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(b)
}

var errDown = errors.New("db down")

// failingAccounts embeds the interface so only overridden methods are usable.
type failingAccounts struct {
	AccountStore
	createErr error
	getErr    error
	existsErr error
}

func (f failingAccounts) Create(ctx context.Context, a model.Account) error { return f.createErr }
func (f failingAccounts) GetByID(ctx context.Context, id model.AccountID) (model.Account, error) {
	if f.getErr != nil {
		return model.Account{}, f.getErr
	}
	return model.Account{ID: id}, nil
}
func (f failingAccounts) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	return model.Account{}, f.getErr
}
func (f failingAccounts) EmailExists(ctx context.Context, email string) (bool, error) {
	return false, f.existsErr
}
func (f failingAccounts) UsernameExists(ctx context.Context, username string) (bool, error) {
	return false, f.existsErr
}

type stubFaces struct {
	n        int64
	err      error
	upserted int
}

func (s *stubFaces) Upsert(ctx context.Context, f model.FacialCredential) (int64, error) {
	s.upserted++
	return s.n, s.err
}
func (s *stubFaces) GetByAccount(ctx context.Context, id model.AccountID) (model.FacialCredential, error) {
	return model.FacialCredential{}, repository.ErrNotFound
}
