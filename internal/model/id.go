package model

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidIdentifier is returned when a transported identifier cannot be
// parsed into the store's native id type.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// AccountID is the opaque identifier assigned to an account at signup.  It is
// the foreign key every credential factor is looked up by.
type AccountID struct{ uuid.UUID }

// NewAccountID returns a fresh random identifier.
func NewAccountID() AccountID { return AccountID{uuid.New()} }

// ParseAccountID converts a client-supplied string into an AccountID.
// Surrounding whitespace is ignored; anything else that is not a UUID, or the
// nil UUID, yields ErrInvalidIdentifier.
func ParseAccountID(s string) (AccountID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || u == uuid.Nil {
		return AccountID{}, ErrInvalidIdentifier
	}
	return AccountID{u}, nil
}

// IsZero reports whether the id was never assigned.
func (id AccountID) IsZero() bool { return id.UUID == uuid.Nil }

// RecordID identifies a single stored pattern credential.
type RecordID struct{ uuid.UUID }

// NewRecordID returns a fresh random record identifier.
func NewRecordID() RecordID { return RecordID{uuid.New()} }
