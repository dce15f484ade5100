package products

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"translation-manager/internal/api/httputil"
	"translation-manager/internal/app"
	"translation-manager/internal/domain/products"
)

const (
	OperationStore  = "products.store"
	OperationUpdate = "products.update"
)

type Handler struct {
	db            *gorm.DB
	engine        *app.ProductEngine
	defaultLocale string
	log           *zap.Logger
}

func NewHandler(svc *app.Services) *Handler {
	return &Handler{
		db:            svc.DB,
		engine:        svc.Products,
		defaultLocale: svc.Config.DefaultLocale,
		log:           svc.Log.Named("products"),
	}
}

// ------------------------------
// GET /products
// ------------------------------
func (h *Handler) Index(c *gin.Context) {
	list := []products.Product{}
	err := productsQuery(h.db.WithContext(c.Request.Context())).
		Preload("Translations", translationsByLanguage).
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		httputil.WriteError(c, err, "Failed to load products")
		return
	}

	langs, err := allLanguages(h.db.WithContext(c.Request.Context()))
	if err != nil {
		httputil.WriteError(c, err, "Failed to load languages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": list, "languages": langs})
}

// ------------------------------
// GET /products/:id  (edit data)
// ------------------------------
func (h *Handler) Edit(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	p, err := findProduct(h.db.WithContext(ctx), id)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load product")
		return
	}

	rows, err := h.engine.AllTranslations(ctx, p)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load translations")
		return
	}

	out := EditDTO{Product: p, Translations: make(map[uint]products.ProductTranslation, len(rows))}
	for _, row := range rows {
		out.Translations[row.LanguageID] = row
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /products
// ------------------------------
func (h *Handler) Store(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	taken, err := skuTaken(h.db.WithContext(ctx), req.SKU, 0)
	if err != nil {
		httputil.WriteError(c, err, "Failed to create product")
		return
	}
	if taken {
		httputil.ValidationFailed(c, map[string]string{"sku": "The sku has already been taken."})
		return
	}

	payload, err := httputil.TranslationsPayload(c, h.engine.Config().DataKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := products.Product{IsActive: true}
	req.apply(&p)

	if err := h.engine.Save(ctx, &p, payload, OperationStore); err != nil {
		httputil.WriteError(c, err, "Failed to create product")
		return
	}

	h.log.Info("product created", zap.Uint("product_id", p.ID), zap.Int("languages", len(payload)))
	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully!", "product": p})
}

// ------------------------------
// PUT /products/:id
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	p, err := findProduct(h.db.WithContext(ctx), id)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load product")
		return
	}

	taken, err := skuTaken(h.db.WithContext(ctx), req.SKU, p.ID)
	if err != nil {
		httputil.WriteError(c, err, "Failed to update product")
		return
	}
	if taken {
		httputil.ValidationFailed(c, map[string]string{"sku": "The sku has already been taken."})
		return
	}

	payload, err := httputil.TranslationsPayload(c, h.engine.Config().DataKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.apply(&p)
	if err := h.engine.Save(ctx, &p, payload, OperationUpdate); err != nil {
		httputil.WriteError(c, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully!", "product": p})
}

// ------------------------------
// DELETE /products/:id
// ------------------------------
func (h *Handler) Destroy(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	p, err := findProduct(h.db.WithContext(ctx), id)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load product")
		return
	}

	if err := h.engine.Delete(ctx, &p); err != nil {
		httputil.WriteError(c, err, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully!"})
}

// ------------------------------
// GET /products/:id/show[/:locale]
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

	p, err := findProduct(h.db.WithContext(ctx), id)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load product")
		return
	}

	translation, err := h.engine.TranslationForLocale(ctx, p, locale)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load translation")
		return
	}
	if translation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product translation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p, "translation": translation, "locale": locale})
}

// ------------------------------
// DELETE /products/:id/translations/:language_id
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

	p, err := findProduct(h.db.WithContext(ctx), id)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load product")
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

// ------------------------------
// POST /products/import
// ------------------------------
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := Import(c.Request.Context(), h.db, h.engine, req)
	if err != nil {
		httputil.WriteError(c, err, "Import failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Import finished", "result": result})
}

func (r ProductRequest) apply(p *products.Product) {
	p.SKU = r.SKU
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}
