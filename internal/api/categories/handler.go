package categories

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"translation-manager/internal/api/httputil"
	"translation-manager/internal/app"
	"translation-manager/internal/domain/categories"
)

const (
	OperationStore  = "categories.store"
	OperationUpdate = "categories.update"
)

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type Handler struct {
	db     *gorm.DB
	engine *app.CategoryEngine
}

func NewHandler(svc *app.Services) *Handler {
	return &Handler{db: svc.DB, engine: svc.Categories}
}

// ------------------------------
// GET /categories
// ------------------------------
func (h *Handler) Index(c *gin.Context) {
	list := []categories.Category{}
	err := h.db.WithContext(c.Request.Context()).
		Preload("Translations", func(db *gorm.DB) *gorm.DB {
			return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "language_id"}})
		}).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		httputil.WriteError(c, err, "Failed to load categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": list})
}

// ------------------------------
// POST /categories
// ------------------------------
func (h *Handler) Store(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payload, err := httputil.TranslationsPayload(c, h.engine.Config().DataKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat := categories.Category{Name: req.Name}
	if err := h.engine.Save(c.Request.Context(), &cat, payload, OperationStore); err != nil {
		httputil.WriteError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Category created successfully!", "category": cat})
}

// ------------------------------
// PUT /categories/:id
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
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

	var cat categories.Category
	if err := h.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		httputil.WriteError(c, err, "Failed to load category")
		return
	}

	cat.Name = req.Name
	if err := h.engine.Save(ctx, &cat, payload, OperationUpdate); err != nil {
		httputil.WriteError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully!", "category": cat})
}

// ------------------------------
// DELETE /categories/:id
// ------------------------------
func (h *Handler) Destroy(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}

	cat := categories.Category{ID: id}
	if err := h.engine.Delete(c.Request.Context(), &cat); err != nil {
		httputil.WriteError(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully!"})
}
