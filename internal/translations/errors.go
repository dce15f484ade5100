package translations

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrConflict matches storage uniqueness violations on translation rows.
	ErrConflict = errors.New("translations: conflict")
	// ErrConfiguration matches invalid or incomplete entity configuration.
	ErrConfiguration = errors.New("translations: invalid configuration")
)

// ConflictError reports a uniqueness violation raised by storage while
// writing a row of Table.
type ConflictError struct {
	Table      string
	OwnerID    uint
	LanguageID uint
	Slug       string
	Err        error
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("translations: conflict writing %s (owner %d, language %d)", e.Table, e.OwnerID, e.LanguageID)
	if e.Slug != "" {
		msg += fmt.Sprintf(" with slug %q", e.Slug)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// IsUniqueViolation reports whether err is a unique constraint failure of
// any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
