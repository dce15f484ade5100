package products

import (
	"time"

	"translation-manager/internal/translations"
)

// OperationImport is the bulk import operation; its translations are
// loaded separately.
const OperationImport = "products.import"

type Product struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	SKU      string  `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:idx_products_sku" json:"sku"`
	Price    float64 `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	Stock    int     `gorm:"not null;default:0" json:"stock"`
	IsActive bool    `gorm:"not null" json:"is_active"`

	Translations []ProductTranslation `gorm:"constraint:OnDelete:CASCADE;" json:"translations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Product) TranslationOwnerID() uint { return p.ID }

// Product slugs are unique across every language.
func (Product) TranslationConfig() translations.Config {
	return translations.Config{
		OwnerKey:       "product_id",
		SlugSource:     "name",
		SlugScope:      translations.SlugScopeGlobal,
		SkipOperations: []string{OperationImport},
	}
}
