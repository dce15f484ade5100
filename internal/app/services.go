// Package app wires the translation engines of every translatable entity.
package app

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"translation-manager/config"
	"translation-manager/internal/domain/categories"
	"translation-manager/internal/domain/posts"
	"translation-manager/internal/domain/products"
	"translation-manager/internal/translations"
)

type (
	ProductEngine  = translations.Engine[products.Product, products.ProductTranslation]
	PostEngine     = translations.Engine[posts.Post, posts.PostTranslation]
	CategoryEngine = translations.Engine[categories.Category, categories.CategoryTranslation]
)

// Services is shared by the HTTP handlers and the CLI commands.
type Services struct {
	Config    *config.Config
	DB        *gorm.DB
	Log       *zap.Logger
	Languages *translations.Languages

	Products   *ProductEngine
	Posts      *PostEngine
	Categories *CategoryEngine
}

// Defaults maps the TRANSLATIONS_* settings onto the engine defaults.
func Defaults(t config.Translations) translations.Defaults {
	return translations.Defaults{
		ForeignKey:         t.ForeignKey,
		OwnerKey:           t.OwnerKey,
		DataKey:            t.DataKey,
		LanguageCodeColumn: t.LanguageCodeColumn,
		LocaleColumn:       t.LocaleColumn,
		StoreLocale:        t.StoreLocale,
	}
}

// NewServices builds the language registry and one engine per entity. A
// misconfigured entity fails here rather than on its first save.
func NewServices(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*Services, error) {
	cache, err := translations.NewLanguageCache(cfg.LanguageCacheSize)
	if err != nil {
		return nil, err
	}

	langs := translations.NewLanguages(db, cache, translations.LanguagesOptions{
		Table:      cfg.Translations.LanguageTable,
		CodeColumn: cfg.Translations.LanguageCodeColumn,
	}, log)

	defaults := Defaults(cfg.Translations)

	productEngine, err := translations.NewEngine[products.Product, products.ProductTranslation](db, langs, defaults, log)
	if err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	postEngine, err := translations.NewEngine[posts.Post, posts.PostTranslation](db, langs, defaults, log)
	if err != nil {
		return nil, fmt.Errorf("posts: %w", err)
	}
	categoryEngine, err := translations.NewEngine[categories.Category, categories.CategoryTranslation](db, langs, defaults, log)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}

	return &Services{
		Config:     cfg,
		DB:         db,
		Log:        log,
		Languages:  langs,
		Products:   productEngine,
		Posts:      postEngine,
		Categories: categoryEngine,
	}, nil
}
