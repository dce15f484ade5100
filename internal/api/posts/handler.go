package posts

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"translation-manager/internal/api/httputil"
	"translation-manager/internal/app"
	"translation-manager/internal/domain/posts"
)

const (
	OperationStore  = "posts.store"
	OperationUpdate = "posts.update"
)

type Handler struct {
	db            *gorm.DB
	engine        *app.PostEngine
	defaultLocale string
	log           *zap.Logger
}

func NewHandler(svc *app.Services) *Handler {
	return &Handler{
		db:            svc.DB,
		engine:        svc.Posts,
		defaultLocale: svc.Config.DefaultLocale,
		log:           svc.Log.Named("posts"),
	}
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// ------------------------------
// GET /posts
// ------------------------------
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	list := []posts.Post{}
	err := postsQuery(h.db.WithContext(ctx)).
		Preload("User").
		Preload("Translations", translationsByLanguage).
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		httputil.WriteError(c, err, "Failed to load posts")
		return
	}

	langs, err := allLanguages(h.db.WithContext(ctx))
	if err != nil {
		httputil.WriteError(c, err, "Failed to load languages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": list, "languages": langs})
}

// ------------------------------
// GET /posts/:id  (edit data)
// ------------------------------
func (h *Handler) Edit(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	p, err := findPost(h.db.WithContext(ctx), id)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load post")
		return
	}

	rows, err := h.engine.AllTranslations(ctx, p)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load translations")
		return
	}

	out := EditDTO{Post: p, Translations: make(map[uint]posts.PostTranslation, len(rows))}
	for _, row := range rows {
		out.Translations[row.LanguageID] = row
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /posts  (author comes from the token)
// ------------------------------
func (h *Handler) Store(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payload, err := httputil.TranslationsPayload(c, h.engine.Config().DataKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := posts.Post{UserID: &userID}
	req.apply(&p)

	if err := h.engine.Save(c.Request.Context(), &p, payload, OperationStore); err != nil {
		httputil.WriteError(c, err, "Failed to create post")
		return
	}

	h.log.Info("post created", zap.Uint("post_id", p.ID), zap.Uint("user_id", userID))
	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully!", "post": p})
}

// ------------------------------
// PUT /posts/:id
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payload, err := httputil.TranslationsPayload(c, h.engine.Config().DataKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	p, err := findPost(h.db.WithContext(ctx), id)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load post")
		return
	}

	req.apply(&p)
	if err := h.engine.Save(ctx, &p, payload, OperationUpdate); err != nil {
		httputil.WriteError(c, err, "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully!", "post": p})
}

// ------------------------------
// DELETE /posts/:id
// ------------------------------
func (h *Handler) Destroy(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	p, err := findPost(h.db.WithContext(ctx), id)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load post")
		return
	}

	if err := h.engine.Delete(ctx, &p); err != nil {
		httputil.WriteError(c, err, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully!"})
}

// ------------------------------
// GET /posts/:id/show[/:locale]
// ------------------------------
func (h *Handler) Show(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	locale := c.Param("locale")
	if locale == "" {
		locale = h.defaultLocale
	}
	ctx := c.Request.Context()

	p, err := findPost(h.db.WithContext(ctx), id)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load post")
		return
	}

	translation, err := h.engine.TranslationForLocale(ctx, p, locale)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load translation")
		return
	}
	if translation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post translation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": p, "translation": translation, "locale": locale})
}

// ------------------------------
// DELETE /posts/:id/translations/:language_id
// ------------------------------
func (h *Handler) DestroyTranslation(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	languageID, ok := httputil.ParseID(c, "language_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	p, err := findPost(h.db.WithContext(ctx), id)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load post")
		return
	}

	removed, err := h.engine.RemoveTranslations(ctx, p, languageID)
	if err != nil {
		httputil.WriteError(c, err, "Failed to delete translation")
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Translation deleted successfully!"})
}

// apply copies the request onto p. Publishing without a date stamps the
// current time.
func (r PostRequest) apply(p *posts.Post) {
	if r.IsPublished != nil {
		p.IsPublished = *r.IsPublished
	}
	if r.PublishedAt != nil {
		p.PublishedAt = r.PublishedAt
	}
	if p.IsPublished && p.PublishedAt == nil {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}
}
