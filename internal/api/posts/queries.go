package posts

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"translation-manager/internal/domain/languages"
	"translation-manager/internal/domain/posts"
)

func postsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&posts.Post{})
}

func findPost(db *gorm.DB, id uint) (posts.Post, error) {
	var p posts.Post
	err := postsQuery(db).Where("id = ?", id).First(&p).Error
	return p, err
}

func translationsByLanguage(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "language_id"}})
}

func allLanguages(db *gorm.DB) ([]languages.Language, error) {
	list := []languages.Language{}
	err := db.Order("id ASC").Find(&list).Error
	return list, err
}
