package categories

import (
	"time"

	"translation-manager/internal/domain/languages"
	"translation-manager/internal/translations"
)

// Category keeps the global translation defaults: rows point back to it
// through model_id and carry no slug.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	Translations []CategoryTranslation `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE;" json:"translations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Category) TranslationOwnerID() uint { return c.ID }

func (Category) TranslationConfig() translations.Config { return translations.Config{} }

type CategoryTranslation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LanguageID uint                `gorm:"not null;uniqueIndex:idx_categories_translations_language_model,priority:1" json:"language_id"`
	Language   *languages.Language `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	ModelID    uint                `gorm:"column:model_id;not null;uniqueIndex:idx_categories_translations_language_model,priority:2" json:"model_id"`
	Locale     *string             `gorm:"type:varchar(10)" json:"locale,omitempty"`

	Name string `gorm:"not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CategoryTranslation) TableName() string { return "categories_translations" }
