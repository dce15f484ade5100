package translations

import (
	"context"
	"errors"
	"reflect"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TranslationFor returns the translation of owner in languageID, or nil
// when there is none.
func (e *Engine[O, R]) TranslationFor(ctx context.Context, owner O, languageID uint) (*R, error) {
	row := new(R)
	err := e.db.WithContext(ctx).
		Where(e.pair(owner.TranslationOwnerID(), languageID)).
		First(row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// TranslationForLocale resolves code through the language registry and
// returns the matching translation, or nil.
func (e *Engine[O, R]) TranslationForLocale(ctx context.Context, owner O, code string) (*R, error) {
	languageID, ok := e.languages.idForCode(ctx, e.cfg.LanguageCodeColumn, code)
	if !ok {
		return nil, nil
	}
	return e.TranslationFor(ctx, owner, languageID)
}

// FieldValue returns one column of the translation of owner in
// languageID. Missing rows, unknown fields and NULL values yield nil.
func (e *Engine[O, R]) FieldValue(ctx context.Context, owner O, languageID uint, field string) (any, error) {
	f := e.schema.LookUpField(field)
	if f == nil {
		return nil, nil
	}

	row, err := e.TranslationFor(ctx, owner, languageID)
	if err != nil || row == nil {
		return nil, err
	}

	v, _ := f.ValueOf(ctx, reflect.ValueOf(row))
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, nil
	}
	return rv.Interface(), nil
}

// AllTranslations returns every translation of owner ordered by language.
func (e *Engine[O, R]) AllTranslations(ctx context.Context, owner O) ([]R, error) {
	rows := []R{}
	err := e.db.WithContext(ctx).
		Where(e.ownerCondition(owner.TranslationOwnerID())).
		Order(clause.OrderByColumn{Column: clause.Column{Name: e.cfg.ForeignKey}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: e.schema.PrioritizedPrimaryField.DBName}}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RemoveTranslations deletes the translation of owner in languageID and
// reports whether a row was removed.
func (e *Engine[O, R]) RemoveTranslations(ctx context.Context, owner O, languageID uint) (bool, error) {
	res := e.db.WithContext(ctx).
		Where(e.pair(owner.TranslationOwnerID(), languageID)).
		Delete(new(R))
	if res.Error != nil {
		return false, res.Error
	}

	if res.RowsAffected > 0 {
		e.log.Info("translation removed",
			zap.Uint("owner_id", owner.TranslationOwnerID()), zap.Uint("language_id", languageID))
	}
	return res.RowsAffected > 0, nil
}
