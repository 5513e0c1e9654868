package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/iliyamo/three-level-auth/internal/model"
)

// MemoryStore keeps accounts and credentials in process memory.  It backs
// STORE_DRIVER=memory and the test suites; contents vanish on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[model.AccountID]model.Account
	patterns []model.PatternCredential
	faces    map[model.AccountID]model.FacialCredential
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[model.AccountID]model.Account),
		faces:    make(map[model.AccountID]model.FacialCredential),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Accounts, Patterns and Faces expose the store through the same method sets
// as the MySQL repositories.
func (s *MemoryStore) Accounts() *MemoryAccounts { return &MemoryAccounts{s} }
func (s *MemoryStore) Patterns() *MemoryPatterns { return &MemoryPatterns{s} }
func (s *MemoryStore) Faces() *MemoryFaces       { return &MemoryFaces{s} }

type MemoryAccounts struct{ s *MemoryStore }

func (m *MemoryAccounts) Create(ctx context.Context, a model.Account) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.accounts {
		if existing.Email == a.Email {
			return ErrEmailExists
		}
		if existing.Username == a.Username {
			return ErrUsernameExists
		}
	}
	a.CreatedAt = m.s.now()
	m.s.accounts[a.ID] = a
	return nil
}

func (m *MemoryAccounts) GetByID(ctx context.Context, id model.AccountID) (model.Account, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	a, ok := m.s.accounts[id]
	if !ok {
		return model.Account{}, ErrNotFound
	}
	return a, nil
}

func (m *MemoryAccounts) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, a := range m.s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Account{}, ErrNotFound
}

func (m *MemoryAccounts) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *MemoryAccounts) UsernameExists(ctx context.Context, username string) (bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, a := range m.s.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type MemoryPatterns struct{ s *MemoryStore }

func (m *MemoryPatterns) Insert(ctx context.Context, p model.PatternCredential) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p.Sequence = slices.Clone(p.Sequence)
	p.CreatedAt = m.s.now()
	m.s.patterns = append(m.s.patterns, p)
	return nil
}

// FirstByAccount returns the earliest appended pattern for the account.
func (m *MemoryPatterns) FirstByAccount(ctx context.Context, accountID model.AccountID) (model.PatternCredential, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, p := range m.s.patterns {
		if p.AccountID == accountID {
			p.Sequence = slices.Clone(p.Sequence)
			return p, nil
		}
	}
	return model.PatternCredential{}, ErrNotFound
}

type MemoryFaces struct{ s *MemoryStore }

func (m *MemoryFaces) Upsert(ctx context.Context, f model.FacialCredential) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	f.Image = slices.Clone(f.Image)
	f.EnrolledAt = m.s.now()
	m.s.faces[f.AccountID] = f
	return 1, nil
}

func (m *MemoryFaces) GetByAccount(ctx context.Context, accountID model.AccountID) (model.FacialCredential, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	f, ok := m.s.faces[accountID]
	if !ok {
		return model.FacialCredential{}, ErrNotFound
	}
	f.Image = slices.Clone(f.Image)
	return f, nil
}
