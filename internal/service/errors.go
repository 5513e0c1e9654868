package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/three-level-auth/internal/model"
)

// Kind groups errors by how a caller should react to them.
type Kind int

const (
	KindUnknown Kind = iota
	KindClientInput
	KindNotFound
	KindMismatch
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindClientInput:
		return "client_input"
	case KindNotFound:
		return "not_found"
	case KindMismatch:
		return "mismatch"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

var (
	ErrInvalidIdentifier = model.ErrInvalidIdentifier
	ErrMissingField      = errors.New("missing required field")
	ErrPasswordTooLong   = errors.New("password too long")
	ErrDuplicateIdentity = errors.New("duplicate identity")
	ErrEmailTaken        = fmt.Errorf("%w: email already registered", ErrDuplicateIdentity)
	ErrUsernameTaken     = fmt.Errorf("%w: username already taken", ErrDuplicateIdentity)
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMalformedImage     = errors.New("malformed image")

	ErrAccountNotFound = errors.New("account not found")
	ErrRecordNotFound  = errors.New("pattern record not found")
	ErrNoStoredPattern = errors.New("no pattern stored for this account")
	ErrNoStoredFace    = errors.New("no facial image stored for this account")

	ErrPatternMismatch = errors.New("pattern mismatch")
	ErrFaceMismatch    = errors.New("facial image mismatch")

	ErrStorage = errors.New("storage error")
	// ErrStorageFailure is returned when the store accepted a write but
	// reported that nothing was modified.
	ErrStorageFailure = fmt.Errorf("%w: no records modified", ErrStorage)
)

// KindOf classifies err.  Errors not produced by this package are KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrStorage):
		return KindStorage
	case errors.Is(err, ErrInvalidIdentifier),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrPasswordTooLong),
		errors.Is(err, ErrDuplicateIdentity),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrMalformedImage):
		return KindClientInput
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrRecordNotFound),
		errors.Is(err, ErrNoStoredPattern),
		errors.Is(err, ErrNoStoredFace):
		return KindNotFound
	case errors.Is(err, ErrPatternMismatch),
		errors.Is(err, ErrFaceMismatch):
		return KindMismatch
	}
	return KindUnknown
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
