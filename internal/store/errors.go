package store

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vbonduro/fieldlog/internal/domain"
)

// unavailable wraps a database failure so callers can match
// domain.ErrStorageUnavailable.
func unavailable(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStorageUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

func isMalformed(err error) bool {
	return errors.Is(err, domain.ErrMalformedData)
}
