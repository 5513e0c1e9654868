// Package repository persists accounts and their credential factors.  The
// sentinel values below let the service layer tell a missing record or a
// uniqueness violation apart from an infrastructure failure.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when no row matches the lookup key.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert collides with the unique email key.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when an insert collides with the unique
// username key.
var ErrUsernameExists = errors.New("username already exists")

const mysqlDuplicateEntry = 1062

// duplicateKey reports whether err is a MySQL duplicate-entry error and, if
// so, the driver message naming the violated key.
func duplicateKey(err error) (string, bool) {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return me.Message, true
	}
	return "", false
}
