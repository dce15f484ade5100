package products

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"

	"translation-manager/internal/app"
	"translation-manager/internal/domain/products"
	"translation-manager/internal/translations"
)

// Validate applies the same binding rules POST /products/import does, for
// callers that decode the request themselves.
func (r *ImportRequest) Validate() error {
	return binding.Validator.ValidateStruct(r)
}

// Import creates or updates products by SKU under the import operation,
// which the product configuration exempts from translation processing.
// An invalid request is rejected before anything is written. After that
// rows fail independently; only storage errors outside a row abort.
func Import(ctx context.Context, db *gorm.DB, engine *app.ProductEngine, req ImportRequest) (ImportResult, error) {
	result := ImportResult{Failed: []ImportFailure{}}
	if err := req.Validate(); err != nil {
		return result, err
	}

	for _, row := range req.Products {
		var p products.Product
		err := productsQuery(db.WithContext(ctx)).Where("sku = ?", row.SKU).First(&p).Error
		existing := err == nil
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			p = products.Product{IsActive: true}
		case err != nil:
			return result, err
		}

		row.ProductRequest.apply(&p)
		payload := translations.PayloadFromValue(row.Translations)
		if err := engine.Save(ctx, &p, payload, products.OperationImport); err != nil {
			result.Failed = append(result.Failed, ImportFailure{SKU: row.SKU, Error: err.Error()})
			continue
		}

		if existing {
			result.Updated++
		} else {
			result.Created++
		}
	}

	return result, nil
}
