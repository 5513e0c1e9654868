package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/model"
	"github.com/iliyamo/three-level-auth/internal/queue"
	"github.com/iliyamo/three-level-auth/internal/repository"
	"github.com/iliyamo/three-level-auth/internal/utils"
)

// AccountService implements signup and login, the password factor.
type AccountService struct {
	accounts   AccountStore
	bcryptCost int
	audit      auditor
}

func NewAccountService(accounts AccountStore, bcryptCost int, events EventSink, log logging.Logger) *AccountService {
	return &AccountService{accounts: accounts, bcryptCost: bcryptCost, audit: newAuditor(events, log)}
}

// SignupInput carries the fields of a signup request.
type SignupInput struct {
	Email    string
	Username string
	Password string
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// Signup creates an account and returns its identifier.  Email uniqueness is
// checked before username uniqueness.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (model.AccountID, error) {
	in.Email = NormalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)

	id, err := s.signup(ctx, in)
	ev := queue.AuthEvent{Type: queue.EventSignup, Email: in.Email}
	if err == nil {
		ev.AccountID = id.String()
	}
	s.audit.record(ctx, ev, err)
	return id, err
}

func (s *AccountService) signup(ctx context.Context, in SignupInput) (model.AccountID, error) {
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return model.AccountID{}, ErrMissingField
	}

	taken, err := s.accounts.EmailExists(ctx, in.Email)
	if err != nil {
		return model.AccountID{}, storageErr("check email", err)
	}
	if taken {
		return model.AccountID{}, ErrEmailTaken
	}
	taken, err = s.accounts.UsernameExists(ctx, in.Username)
	if err != nil {
		return model.AccountID{}, storageErr("check username", err)
	}
	if taken {
		return model.AccountID{}, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return model.AccountID{}, ErrPasswordTooLong
	}
	if err != nil {
		return model.AccountID{}, err
	}

	acc := model.Account{
		ID:           model.NewAccountID(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
	}
	// a concurrent signup may win the race between the checks and the insert
	switch err := s.accounts.Create(ctx, acc); {
	case errors.Is(err, repository.ErrEmailExists):
		return model.AccountID{}, ErrEmailTaken
	case errors.Is(err, repository.ErrUsernameExists):
		return model.AccountID{}, ErrUsernameTaken
	case err != nil:
		return model.AccountID{}, storageErr("create account", err)
	}
	return acc.ID, nil
}

// Login checks the password for email and returns the account identifier.
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (model.AccountID, error) {
	email = NormalizeEmail(email)
	id, err := s.login(ctx, email, password)
	ev := queue.AuthEvent{Type: queue.EventLogin, Email: email}
	if err == nil {
		ev.AccountID = id.String()
	}
	s.audit.record(ctx, ev, err)
	return id, err
}

func (s *AccountService) login(ctx context.Context, email, password string) (model.AccountID, error) {
	acc, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return model.AccountID{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.AccountID{}, storageErr("load account", err)
	}
	if !utils.VerifyPassword(acc.PasswordHash, password) {
		return model.AccountID{}, ErrInvalidCredentials
	}
	return acc.ID, nil
}

// lookupAccount resolves id for the factor services.
func lookupAccount(ctx context.Context, accounts AccountStore, id model.AccountID) (model.Account, error) {
	acc, err := accounts.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, storageErr("load account", err)
	}
	return acc, nil
}
