package products

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"translation-manager/internal/domain/languages"
	"translation-manager/internal/domain/products"
)

func productsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&products.Product{})
}

func findProduct(db *gorm.DB, id uint) (products.Product, error) {
	var p products.Product
	err := productsQuery(db).Where("id = ?", id).First(&p).Error
	return p, err
}

// skuTaken reports whether another product than exceptID uses sku.
func skuTaken(db *gorm.DB, sku string, exceptID uint) (bool, error) {
	q := productsQuery(db).Where("sku = ?", sku)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func translationsByLanguage(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "language_id"}})
}

func allLanguages(db *gorm.DB) ([]languages.Language, error) {
	list := []languages.Language{}
	err := db.Order("id ASC").Find(&list).Error
	return list, err
}
