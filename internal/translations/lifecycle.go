package translations

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Save persists owner and then applies payload to its translations, all in
// one transaction. When operation matches the entity's SkipOperations the
// payload is ignored. Entries for unknown languages are skipped; conflicts
// abort the save and are returned as *ConflictError.
func (e *Engine[O, R]) Save(ctx context.Context, owner *O, payload Payload, operation string) error {
	if owner == nil {
		return fmt.Errorf("translations: nil %s owner", e.ownerTbl)
	}

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(owner).Error; err != nil {
			if IsUniqueViolation(err) {
				return &ConflictError{Table: e.ownerTbl, OwnerID: (*owner).TranslationOwnerID(), Err: err}
			}
			return err
		}

		if e.cfg.Skips(operation) {
			e.log.Debug("translations skipped for operation",
				zap.String("operation", operation), zap.Uint("owner_id", (*owner).TranslationOwnerID()))
			return nil
		}

		return e.WithTx(tx).apply(ctx, *owner, payload)
	})
}

// SetTranslations upserts every entry of set for an already persisted
// owner. It is the entry point for callers without a request payload.
func (e *Engine[O, R]) SetTranslations(ctx context.Context, owner O, set map[uint]Fields) (O, error) {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return e.WithTx(tx).apply(ctx, owner, PayloadFromValue(set))
	})
	return owner, err
}

func (e *Engine[O, R]) apply(ctx context.Context, owner O, payload Payload) error {
	for _, languageID := range payload.LanguageIDs() {
		if _, err := e.Upsert(ctx, owner, languageID, payload[languageID]); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the translations of owner and owner itself in one
// transaction. A missing owner yields gorm.ErrRecordNotFound.
func (e *Engine[O, R]) Delete(ctx context.Context, owner *O) error {
	if owner == nil || (*owner).TranslationOwnerID() == 0 {
		return gorm.ErrRecordNotFound
	}
	ownerID := (*owner).TranslationOwnerID()

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed := tx.Where(e.ownerCondition(ownerID)).Delete(new(R))
		if removed.Error != nil {
			return removed.Error
		}

		res := tx.Delete(owner)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		e.log.Info("owner deleted with translations",
			zap.Uint("owner_id", ownerID), zap.Int64("translations", removed.RowsAffected))
		return nil
	})
}
