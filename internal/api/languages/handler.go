package languages

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"translation-manager/internal/api/httputil"
	"translation-manager/internal/app"
	"translation-manager/internal/domain/languages"
	"translation-manager/internal/translations"
)

type Handler struct {
	db        *gorm.DB
	languages *translations.Languages
}

func NewHandler(svc *app.Services) *Handler {
	return &Handler{db: svc.DB, languages: svc.Languages}
}

// GET /languages
func (h *Handler) Index(c *gin.Context) {
	list := []languages.Language{}
	if err := h.db.WithContext(c.Request.Context()).Order("id ASC").Find(&list).Error; err != nil {
		httputil.WriteError(c, err, "Failed to load languages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"languages": list})
}

// POST /admin/languages/cache/clear
//
// Language rows are cached for the life of the process; edits to codes
// become visible after this call.
func (h *Handler) ClearCache(c *gin.Context) {
	h.languages.ClearCache()
	c.JSON(http.StatusOK, gin.H{"message": "Language cache cleared"})
}
