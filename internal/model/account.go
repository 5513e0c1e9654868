package model

import "time"

// Account represents a row in the `accounts` table.  Accounts are created on
// signup and never updated or deleted.
//
// Fields:
//
//	ID           – opaque identifier assigned at creation.
//	Email        – unique email address.
//	Username     – unique display name.
//	PasswordHash – bcrypt hash of the password.
//	CreatedAt    – timestamp of creation.
type Account struct {
	ID           AccountID // accounts.id
	Email        string    // accounts.email
	Username     string    // accounts.username
	PasswordHash string    // accounts.password_hash
	CreatedAt    time.Time // accounts.created_at
}

// PatternCredential models an entry in the `pattern_credentials` table.  An
// account may own several of them since enrollment appends.
//
// Fields:
//
//	ID        – record identifier returned to the client as inserted_id.
//	AccountID – owner of the pattern.
//	Sequence  – drawn pattern; order and length are significant.
//	CreatedAt – enrollment time, used to pick the earliest record on lookup.
type PatternCredential struct {
	ID        RecordID  // pattern_credentials.id
	AccountID AccountID // pattern_credentials.account_id
	Sequence  []int     // pattern_credentials.sequence (JSON array)
	CreatedAt time.Time // pattern_credentials.created_at
}

// FacialCredential models an entry in the `facial_credentials` table.  There
// is at most one per account; enrollment replaces the stored image.
//
// Fields:
//
//	AccountID  – owner and primary key.
//	Image      – decoded image payload.
//	EnrolledAt – time of the latest enrollment.
type FacialCredential struct {
	AccountID  AccountID // facial_credentials.account_id
	Image      []byte    // facial_credentials.image
	EnrolledAt time.Time // facial_credentials.enrolled_at
}
