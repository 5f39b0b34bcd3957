package dbx

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/siteback/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

// UniqueViolation reports whether err is a unique-constraint violation and,
// if so, which constraint/column text the driver attached to it.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		// Primary code only when extended result codes are off.
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")) {
			return liteErr.Error(), true
		}
	}

	return "", false
}

// AccountConflict maps a unique violation on the users table to
// common.ErrEmailExists or common.ErrPhoneExists. Any other error is
// returned as nil.
func AccountConflict(err error) error {
	where, ok := UniqueViolation(err)
	if !ok {
		return nil
	}
	switch {
	case strings.Contains(where, "email"):
		return common.ErrEmailExists
	case strings.Contains(where, "phone"):
		return common.ErrPhoneExists
	}
	return nil
}
