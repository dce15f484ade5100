package posts

import (
	"time"

	"translation-manager/internal/domain/languages"
)

type PostTranslation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LanguageID uint                `gorm:"not null;uniqueIndex:idx_posts_translations_language_post,priority:1;uniqueIndex:idx_posts_translations_language_slug,priority:1" json:"language_id"`
	Language   *languages.Language `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	PostID     uint                `gorm:"not null;uniqueIndex:idx_posts_translations_language_post,priority:2" json:"post_id"`
	Locale     *string             `gorm:"type:varchar(10);index" json:"locale,omitempty"`

	Title           string  `gorm:"not null" json:"title"`
	Slug            *string `gorm:"uniqueIndex:idx_posts_translations_language_slug,priority:2" json:"slug,omitempty"`
	Content         *string `gorm:"type:text" json:"content,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PostTranslation) TableName() string { return "posts_translations" }
