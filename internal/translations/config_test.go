package translations

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConfigWithDefaults(t *testing.T) {
	d := DefaultDefaults()

	cfg := Config{OwnerKey: "product_id"}.withDefaults(d)
	assert.Equal(t, "product_id", cfg.OwnerKey)
	assert.Equal(t, "language_id", cfg.ForeignKey)
	assert.Equal(t, "locale", cfg.LocaleColumn)
	assert.Equal(t, "code", cfg.LanguageCodeColumn)

	cfg = Config{DisableLocale: true}.withDefaults(d)
	assert.Empty(t, cfg.LocaleColumn)

	d.StoreLocale = false
	cfg = Config{LocaleColumn: "lang"}.withDefaults(d)
	assert.Empty(t, cfg.LocaleColumn)
}

func TestConfigSkips(t *testing.T) {
	cfg := Config{SkipOperations: []string{"products.import", "*.bulk"}}

	assert.True(t, cfg.Skips("products.import"))
	assert.True(t, cfg.Skips("posts.bulk"))
	assert.False(t, cfg.Skips("products.store"))
	assert.False(t, cfg.Skips(""))
	assert.False(t, Config{}.Skips("products.import"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestConflictError(t *testing.T) {
	err := &ConflictError{Table: "products_translations", OwnerID: 7, LanguageID: 2, Slug: "red-shoe", Err: gorm.ErrDuplicatedKey}

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Contains(t, err.Error(), `"red-shoe"`)
	assert.Contains(t, err.Error(), "owner 7")
}
