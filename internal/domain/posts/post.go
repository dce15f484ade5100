package posts

import (
	"time"

	"translation-manager/internal/domain/users"
	"translation-manager/internal/translations"
)

type Post struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint       `gorm:"index" json:"user_id,omitempty"`
	User   *users.User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	IsPublished bool       `gorm:"not null;default:false" json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	Translations []PostTranslation `gorm:"constraint:OnDelete:CASCADE;" json:"translations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Post) TranslationOwnerID() uint { return p.ID }

// Post slugs only need to be unique within one language, so
// /en/hello and /fr/hello can coexist.
func (Post) TranslationConfig() translations.Config {
	return translations.Config{
		OwnerKey:   "post_id",
		SlugSource: "title",
		SlugScope:  translations.SlugScopeLanguage,
	}
}
