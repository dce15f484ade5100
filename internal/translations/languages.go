package translations

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Languages answers existence and locale questions about the language
// reference table. Lookups go through the injected cache; storage errors
// are logged and reported as "not found" without being cached.
type Languages struct {
	db         *gorm.DB
	table      string
	codeColumn string
	cache      *LanguageCache
	log        *zap.Logger
}

// LanguagesOptions locates the language reference table.
type LanguagesOptions struct {
	// Table is the language reference table, "languages" when empty.
	Table string
	// CodeColumn is the locale column used by IDForCode, "code" when empty.
	CodeColumn string
}

// NewLanguages builds a registry reading db and memoizing into cache.
func NewLanguages(db *gorm.DB, cache *LanguageCache, opts LanguagesOptions, log *zap.Logger) *Languages {
	if opts.Table == "" {
		opts.Table = "languages"
	}
	if opts.CodeColumn == "" {
		opts.CodeColumn = "code"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Languages{
		db:         db,
		table:      opts.Table,
		codeColumn: opts.CodeColumn,
		cache:      cache,
		log:        log.Named("languages"),
	}
}

// WithDB returns a copy running its queries on db (typically an open
// transaction) and sharing the same cache.
func (l *Languages) WithDB(db *gorm.DB) *Languages {
	cp := *l
	cp.db = db
	return &cp
}

// IsValid reports whether a language row with id exists.
func (l *Languages) IsValid(ctx context.Context, id uint) bool {
	if id == 0 {
		return false
	}
	key := existsKey(id)
	if e, ok := l.cache.get(key); ok {
		return e.found
	}

	var count int64
	err := l.db.WithContext(ctx).
		Table(l.table).
		Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).
		Count(&count).Error
	if err != nil {
		l.log.Warn("language lookup failed", zap.Uint("language_id", id), zap.Error(err))
		return false
	}

	found := count > 0
	l.cache.set(key, languageEntry{found: found})
	return found
}

// Locale returns the value of column for language id.
func (l *Languages) Locale(ctx context.Context, id uint, column string) (string, bool) {
	if id == 0 || column == "" {
		return "", false
	}
	key := localeKey(column, id)
	if e, ok := l.cache.get(key); ok {
		return e.value, e.found
	}

	var codes []sql.NullString
	err := l.db.WithContext(ctx).
		Table(l.table).
		Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).
		Limit(1).
		Pluck(column, &codes).Error
	if err != nil {
		l.log.Warn("locale lookup failed", zap.Uint("language_id", id), zap.String("column", column), zap.Error(err))
		return "", false
	}

	e := languageEntry{}
	if len(codes) == 1 && codes[0].Valid && codes[0].String != "" {
		e = languageEntry{found: true, value: codes[0].String}
	}
	l.cache.set(key, e)
	return e.value, e.found
}

// IDForCode resolves a locale code such as "en" to its language id.
func (l *Languages) IDForCode(ctx context.Context, code string) (uint, bool) {
	return l.idForCode(ctx, l.codeColumn, code)
}

func (l *Languages) idForCode(ctx context.Context, column, code string) (uint, bool) {
	if code == "" {
		return 0, false
	}
	if column == "" {
		column = l.codeColumn
	}
	key := codeKey(column, code)
	if e, ok := l.cache.get(key); ok {
		return e.id, e.found
	}

	var ids []uint
	err := l.db.WithContext(ctx).
		Table(l.table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: code}).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		l.log.Warn("language code lookup failed", zap.String("code", code), zap.Error(err))
		return 0, false
	}

	e := languageEntry{}
	if len(ids) == 1 {
		e = languageEntry{found: true, id: ids[0]}
	}
	l.cache.set(key, e)
	return e.id, e.found
}

// ClearCache forgets every cached lookup.
func (l *Languages) ClearCache() {
	l.cache.Purge()
	l.log.Info("language cache cleared")
}
