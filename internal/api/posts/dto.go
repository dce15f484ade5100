package posts

import (
	"time"

	"translation-manager/internal/domain/posts"
)

// PostRequest is the body of POST and PUT /posts next to the translations
// object.
type PostRequest struct {
	IsPublished *bool      `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
}

type EditDTO struct {
	Post         posts.Post                     `json:"post"`
	Translations map[uint]posts.PostTranslation `json:"translations"`
}
