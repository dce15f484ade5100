package translations

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testLanguage struct {
	ID    uint
	Title string
	Code  string `gorm:"uniqueIndex"`
}

func (testLanguage) TableName() string { return "languages" }

// shoe slugs its name globally.
type shoe struct {
	ID  uint
	SKU string
}

func (s shoe) TranslationOwnerID() uint { return s.ID }

func (shoe) TranslationConfig() Config {
	return Config{OwnerKey: "shoe_id", SlugSource: "name", SkipOperations: []string{"shoes.import", "*.bulk"}}
}

type shoeTranslation struct {
	ID          uint
	LanguageID  uint `gorm:"not null;uniqueIndex:idx_shoe_language,priority:1"`
	ShoeID      uint `gorm:"not null;uniqueIndex:idx_shoe_language,priority:2"`
	Locale      *string
	Name        string
	Slug        *string `gorm:"uniqueIndex"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// note slugs its title per language.
type note struct {
	ID uint
}

func (n note) TranslationOwnerID() uint { return n.ID }

func (note) TranslationConfig() Config {
	return Config{OwnerKey: "note_id", SlugSource: "title", SlugScope: SlugScopeLanguage}
}

type noteTranslation struct {
	ID         uint
	LanguageID uint `gorm:"not null;uniqueIndex:idx_note_language,priority:1;uniqueIndex:idx_note_slug,priority:1"`
	NoteID     uint `gorm:"not null;uniqueIndex:idx_note_language,priority:2"`
	Locale     *string
	Title      string
	Slug       *string `gorm:"uniqueIndex:idx_note_slug,priority:2"`
}

// label relies on every default.
type label struct {
	ID uint
}

func (l label) TranslationOwnerID() uint { return l.ID }

func (label) TranslationConfig() Config { return Config{} }

type labelTranslation struct {
	ID         uint
	LanguageID uint
	ModelID    uint
	Locale     *string
	Name       string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&testLanguage{}, &shoe{}, &shoeTranslation{}, &note{}, &noteTranslation{}, &label{}, &labelTranslation{},
	))
	require.NoError(t, db.Create([]testLanguage{
		{ID: 1, Title: "English", Code: "en"},
		{ID: 2, Title: "Arabic", Code: "ar"},
		{ID: 3, Title: "French", Code: "fr"},
	}).Error)

	return db
}

func newTestLanguages(t *testing.T, db *gorm.DB) *Languages {
	t.Helper()
	cache, err := NewLanguageCache(64)
	require.NoError(t, err)
	return NewLanguages(db, cache, LanguagesOptions{}, zap.NewNop())
}

func newShoeEngine(t *testing.T, db *gorm.DB) *Engine[shoe, shoeTranslation] {
	t.Helper()
	e, err := NewEngine[shoe, shoeTranslation](db, newTestLanguages(t, db), DefaultDefaults(), zap.NewNop())
	require.NoError(t, err)
	return e
}

func createShoe(t *testing.T, db *gorm.DB, sku string) shoe {
	t.Helper()
	s := shoe{SKU: sku}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
