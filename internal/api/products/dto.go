package products

import "translation-manager/internal/domain/products"

// ---------- requests

// ProductRequest is the body of POST and PUT /products. The translations
// object travels next to these fields and is read separately.
type ProductRequest struct {
	SKU      string   `json:"sku" binding:"required,max=64"`
	Price    *float64 `json:"price" binding:"required,min=0"`
	Stock    *int     `json:"stock" binding:"required,min=0"`
	IsActive *bool    `json:"is_active"`
}

type ImportRow struct {
	ProductRequest
	// Translations is accepted but not processed: the import operation is
	// in the product skip list.
	Translations map[string]any `json:"translations,omitempty"`
}

type ImportRequest struct {
	Products []ImportRow `json:"products" binding:"required,min=1,dive"`
}

// ---------- responses

// EditDTO carries the translations keyed by language id, ready for a form
// with one tab per language.
type EditDTO struct {
	Product      products.Product                     `json:"product"`
	Translations map[uint]products.ProductTranslation `json:"translations"`
}

type ImportFailure struct {
	SKU   string `json:"sku"`
	Error string `json:"error"`
}

type ImportResult struct {
	Created int             `json:"created"`
	Updated int             `json:"updated"`
	Failed  []ImportFailure `json:"failed"`
}
