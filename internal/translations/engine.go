package translations

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"translation-manager/internal/metrics"
)

// Engine writes and reads the translation rows R owned by entities O.
// One engine is built per translatable entity type; it is safe for
// concurrent use.
type Engine[O Translatable, R any] struct {
	db        *gorm.DB
	languages *Languages
	cfg       Config
	schema    *schema.Schema
	table     string
	ownerTbl  string
	log       *zap.Logger
}

// NewEngine merges O's configuration with defaults and checks it against
// the columns of R. Missing columns fail with ErrConfiguration.
func NewEngine[O Translatable, R any](db *gorm.DB, languages *Languages, defaults Defaults, log *zap.Logger) (*Engine[O, R], error) {
	if db == nil {
		return nil, configErrorf("no database")
	}
	if languages == nil {
		return nil, configErrorf("no language registry")
	}
	if log == nil {
		log = zap.NewNop()
	}

	var owner O
	cfg := owner.TranslationConfig().withDefaults(defaults)

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(R)); err != nil {
		return nil, configErrorf("parse translation model %T: %v", *new(R), err)
	}
	sch := stmt.Schema
	if sch.PrioritizedPrimaryField == nil {
		return nil, configErrorf("%s has no primary key", sch.Table)
	}

	ownerStmt := &gorm.Statement{DB: db}
	if err := ownerStmt.Parse(new(O)); err != nil {
		return nil, configErrorf("parse owner model %T: %v", owner, err)
	}

	column := func(name, option string) (string, error) {
		f := sch.LookUpField(name)
		if f == nil || f.DBName == "" {
			return "", configErrorf("%s: %s %q is not a column of %s", ownerStmt.Schema.Table, option, name, sch.Table)
		}
		return f.DBName, nil
	}

	var err error
	if cfg.OwnerKey, err = column(cfg.OwnerKey, "owner key"); err != nil {
		return nil, err
	}
	if cfg.ForeignKey, err = column(cfg.ForeignKey, "foreign key"); err != nil {
		return nil, err
	}
	if cfg.SlugSource != "" {
		if cfg.SlugSource, err = column(cfg.SlugSource, "slug source"); err != nil {
			return nil, err
		}
		if _, err = column(SlugColumn, "slug column"); err != nil {
			return nil, err
		}
	}
	if cfg.LocaleColumn != "" {
		if cfg.LocaleColumn, err = column(cfg.LocaleColumn, "locale column"); err != nil {
			return nil, err
		}
	}

	return &Engine[O, R]{
		db:        db,
		languages: languages,
		cfg:       cfg,
		schema:    sch,
		table:     sch.Table,
		ownerTbl:  ownerStmt.Schema.Table,
		log:       log.Named("translations").With(zap.String("table", sch.Table)),
	}, nil
}

// WithTx returns a copy of the engine bound to tx.
func (e *Engine[O, R]) WithTx(tx *gorm.DB) *Engine[O, R] {
	cp := *e
	cp.db = tx
	cp.languages = e.languages.WithDB(tx)
	return &cp
}

// Config returns the merged configuration.
func (e *Engine[O, R]) Config() Config {
	return e.cfg
}

func (e *Engine[O, R]) Table() string {
	return e.table
}

// Upsert writes the translation of owner in languageID. An unknown
// language is a silent no-op returning (nil, nil).
//
// When a slug source is configured and present in fields, a unique slug is
// derived into fields["slug"]; when a locale column is configured, the
// language code is stored in it. Uniqueness violations are returned as
// *ConflictError. A violation caused by a derived slug (on an update, or
// on an insert whose owner/language pair is still free afterwards) is
// retried once with a fresh slug.
func (e *Engine[O, R]) Upsert(ctx context.Context, owner O, languageID uint, fields Fields) (*R, error) {
	ownerID := owner.TranslationOwnerID()
	if ownerID == 0 {
		return nil, fmt.Errorf("translations: %s owner is not persisted", e.ownerTbl)
	}

	if !e.languages.IsValid(ctx, languageID) {
		metrics.Upserts.WithLabelValues(e.table, "skipped").Inc()
		e.log.Debug("unknown language, translation skipped",
			zap.Uint("owner_id", ownerID), zap.Uint("language_id", languageID))
		return nil, nil
	}

	var locale string
	if e.cfg.LocaleColumn != "" {
		locale, _ = e.languages.Locale(ctx, languageID, e.cfg.LanguageCodeColumn)
	}

	row, slug, existing, err := e.upsertOnce(ctx, ownerID, languageID, locale, fields)
	if err == nil {
		return row, nil
	}
	if !IsUniqueViolation(err) {
		return nil, err
	}

	// an update keeps its pair, so only the slug can collide
	if slug.derived && (existing || !e.pairExists(ctx, ownerID, languageID)) {
		metrics.SlugRetries.WithLabelValues(e.table).Inc()
		e.log.Info("slug taken concurrently, retrying",
			zap.Uint("owner_id", ownerID), zap.Uint("language_id", languageID), zap.String("slug", slug.value))

		row, slug, _, err = e.upsertOnce(ctx, ownerID, languageID, locale, fields)
		if err == nil {
			return row, nil
		}
		if !IsUniqueViolation(err) {
			return nil, err
		}
	}

	metrics.Upserts.WithLabelValues(e.table, "conflict").Inc()
	e.log.Warn("translation conflict",
		zap.Uint("owner_id", ownerID), zap.Uint("language_id", languageID), zap.Error(err))
	return nil, &ConflictError{Table: e.table, OwnerID: ownerID, LanguageID: languageID, Slug: slug.value, Err: err}
}

type slugResult struct {
	value   string
	derived bool
}

func (e *Engine[O, R]) upsertOnce(ctx context.Context, ownerID, languageID uint, locale string, fields Fields) (*R, slugResult, bool, error) {
	var (
		out      *R
		slug     slugResult
		result   string
		existing bool
	)

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := new(R)
		existing = true
		if err := tx.Where(e.pair(ownerID, languageID)).First(row).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			existing = false
			row = new(R)
		}

		values := make(Fields, len(fields)+2)
		for k, v := range fields {
			values[k] = v
		}

		if e.cfg.SlugSource != "" {
			if text, ok := stringValue(values[e.cfg.SlugSource]); ok {
				var exclude any
				if existing {
					exclude = e.primaryValue(ctx, row)
				}
				s, err := UniqueSlug(text, e.slugExists(ctx, tx, languageID, exclude))
				if err != nil {
					return err
				}
				values[SlugColumn] = s
				slug = slugResult{value: s, derived: true}
			}
		}

		if locale != "" {
			values[e.cfg.LocaleColumn] = locale
		}

		e.assign(ctx, row, values)
		e.setColumn(ctx, row, e.cfg.OwnerKey, ownerID)
		e.setColumn(ctx, row, e.cfg.ForeignKey, languageID)

		if existing {
			if err := tx.Omit(clause.Associations).Save(row).Error; err != nil {
				return err
			}
			result = "updated"
		} else {
			if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
				return err
			}
			result = "created"
		}

		out = row
		return nil
	})
	if err != nil {
		return nil, slug, existing, err
	}

	metrics.Upserts.WithLabelValues(e.table, result).Inc()
	return out, slug, existing, nil
}

func (e *Engine[O, R]) slugExists(ctx context.Context, tx *gorm.DB, languageID uint, exclude any) func(string) (bool, error) {
	return func(candidate string) (bool, error) {
		q := tx.WithContext(ctx).
			Model(new(R)).
			Where(clause.Eq{Column: clause.Column{Name: SlugColumn}, Value: candidate})
		if e.cfg.SlugScope == SlugScopeLanguage {
			q = q.Where(clause.Eq{Column: clause.Column{Name: e.cfg.ForeignKey}, Value: languageID})
		}
		if exclude != nil {
			q = q.Where(clause.Neq{Column: clause.Column{Name: e.schema.PrioritizedPrimaryField.DBName}, Value: exclude})
		}

		var n int64
		if err := q.Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			metrics.SlugCollisions.WithLabelValues(e.table).Inc()
		}
		return n > 0, nil
	}
}

func (e *Engine[O, R]) pairExists(ctx context.Context, ownerID, languageID uint) bool {
	var n int64
	err := e.db.WithContext(ctx).Model(new(R)).Where(e.pair(ownerID, languageID)).Count(&n).Error
	if err != nil {
		// unknown: do not retry
		return true
	}
	return n > 0
}

func (e *Engine[O, R]) pair(ownerID, languageID uint) clause.Expression {
	return clause.And(
		clause.Eq{Column: clause.Column{Name: e.cfg.OwnerKey}, Value: ownerID},
		clause.Eq{Column: clause.Column{Name: e.cfg.ForeignKey}, Value: languageID},
	)
}

func (e *Engine[O, R]) ownerCondition(ownerID uint) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: e.cfg.OwnerKey}, Value: ownerID}
}

// assign copies values onto row through the gorm schema. Unknown and
// protected columns are ignored, as are values the column cannot hold.
func (e *Engine[O, R]) assign(ctx context.Context, row *R, values Fields) {
	rv := reflect.ValueOf(row)
	for name, value := range values {
		field := e.schema.LookUpField(name)
		if field == nil || e.protected(field) {
			e.log.Debug("ignoring field", zap.String("field", name))
			continue
		}
		if err := field.Set(ctx, rv, value); err != nil {
			e.log.Debug("ignoring field value", zap.String("field", name), zap.Error(err))
		}
	}
}

func (e *Engine[O, R]) protected(f *schema.Field) bool {
	return f.DBName == "" ||
		f.PrimaryKey ||
		f.DBName == e.cfg.OwnerKey ||
		f.DBName == e.cfg.ForeignKey ||
		f.AutoCreateTime > 0 ||
		f.AutoUpdateTime > 0
}

func (e *Engine[O, R]) setColumn(ctx context.Context, row *R, column string, value any) {
	if f := e.schema.LookUpField(column); f != nil {
		if err := f.Set(ctx, reflect.ValueOf(row), value); err != nil {
			e.log.Error("cannot set key column", zap.String("column", column), zap.Error(err))
		}
	}
}

func (e *Engine[O, R]) primaryValue(ctx context.Context, row *R) any {
	v, zero := e.schema.PrioritizedPrimaryField.ValueOf(ctx, reflect.ValueOf(row))
	if zero {
		return nil
	}
	return v
}
