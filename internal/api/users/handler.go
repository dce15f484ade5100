package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"translation-manager/internal/api/httputil"
	"translation-manager/internal/app"
	"translation-manager/internal/domain/users"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(svc *app.Services) *Handler {
	return &Handler{db: svc.DB}
}

// GET /me
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	db := h.db.WithContext(c.Request.Context())

	var user users.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	authoring, err := BuildAuthoringDTO(db, user.ID)
	if err != nil {
		httputil.WriteError(c, err, "Failed to load authoring stats")
		return
	}

	c.JSON(http.StatusOK, MeResponse{User: BuildUserDTO(user), Authoring: authoring})
}
