// Package translations stores per-language content for gorm models.
//
// A base entity (a product, a post, ...) implements Translatable and owns
// rows of a sibling translation model, one per language. Engine upserts
// those rows from a language-keyed payload, derives unique slugs and the
// denormalized locale code, and removes the rows with their owner.
package translations

import (
	"path"
)

// SlugColumn is the translation column that receives derived slugs.
const SlugColumn = "slug"

// SlugScope selects the set of rows a slug must be unique in.
type SlugScope int

const (
	// SlugScopeGlobal makes a slug unique across every row of the
	// translation table, whatever the language.
	SlugScopeGlobal SlugScope = iota
	// SlugScopeLanguage makes a slug unique among rows of the same language.
	SlugScopeLanguage
)

func (s SlugScope) String() string {
	if s == SlugScopeLanguage {
		return "language"
	}
	return "global"
}

// Translatable is implemented by base entities on a value receiver.
type Translatable interface {
	TranslationOwnerID() uint
	TranslationConfig() Config
}

// Config is the per-entity configuration. Empty strings fall back to
// Defaults.
type Config struct {
	// OwnerKey is the translation column referencing the owner.
	OwnerKey string
	// ForeignKey is the translation column referencing the language.
	ForeignKey string
	// SlugSource is the translated field a slug is derived from. Empty
	// disables slugging.
	SlugSource string
	SlugScope  SlugScope
	// LocaleColumn receives the language code of each row.
	LocaleColumn  string
	DisableLocale bool
	// LanguageCodeColumn is the column of the language table holding the
	// locale code.
	LanguageCodeColumn string
	// SkipOperations lists operation names (path.Match patterns) for which
	// Save does not process translations.
	SkipOperations []string
	// DataKey is the request field holding the translations payload.
	DataKey string
}

// Defaults are the application wide options.
type Defaults struct {
	ForeignKey         string
	OwnerKey           string
	DataKey            string
	LanguageCodeColumn string
	LocaleColumn       string
	StoreLocale        bool
}

// DefaultDefaults mirrors the stock configuration of the package.
func DefaultDefaults() Defaults {
	return Defaults{
		ForeignKey:         "language_id",
		OwnerKey:           "model_id",
		DataKey:            "translations",
		LanguageCodeColumn: "code",
		LocaleColumn:       "locale",
		StoreLocale:        true,
	}
}

func (c Config) withDefaults(d Defaults) Config {
	if c.OwnerKey == "" {
		c.OwnerKey = d.OwnerKey
	}
	if c.ForeignKey == "" {
		c.ForeignKey = d.ForeignKey
	}
	if c.DataKey == "" {
		c.DataKey = d.DataKey
	}
	if c.LanguageCodeColumn == "" {
		c.LanguageCodeColumn = d.LanguageCodeColumn
	}
	if c.LocaleColumn == "" {
		c.LocaleColumn = d.LocaleColumn
	}
	if !d.StoreLocale {
		c.DisableLocale = true
	}
	if c.DisableLocale {
		c.LocaleColumn = ""
	}
	return c
}

// Skips reports whether operation matches one of SkipOperations.
func (c Config) Skips(operation string) bool {
	if operation == "" {
		return false
	}
	for _, pattern := range c.SkipOperations {
		if pattern == operation {
			return true
		}
		if ok, err := path.Match(pattern, operation); err == nil && ok {
			return true
		}
	}
	return false
}
