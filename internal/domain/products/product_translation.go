package products

import (
	"time"

	"translation-manager/internal/domain/languages"
)

type ProductTranslation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LanguageID uint                `gorm:"not null;uniqueIndex:idx_products_translations_language_product,priority:1" json:"language_id"`
	Language   *languages.Language `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	ProductID  uint                `gorm:"not null;uniqueIndex:idx_products_translations_language_product,priority:2" json:"product_id"`
	Locale     *string             `gorm:"type:varchar(10);index" json:"locale,omitempty"`

	Name             string  `gorm:"not null" json:"name"`
	Slug             *string `gorm:"uniqueIndex:idx_products_translations_slug" json:"slug,omitempty"`
	Description      *string `gorm:"type:text" json:"description,omitempty"`
	ShortDescription *string `json:"short_description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductTranslation) TableName() string { return "products_translations" }
