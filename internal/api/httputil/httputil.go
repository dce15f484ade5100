// Package httputil holds the request and error helpers shared by the
// resource handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"

	"translation-manager/internal/translations"
)

// ParseID reads a positive numeric path parameter. On failure it writes a
// 400 and returns false.
func ParseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}

// TranslationsPayload extracts the translations object stored under key in
// the JSON body. The body is cached by gin so handlers can still bind their
// own request struct with ShouldBindBodyWith. A missing key yields an empty
// payload.
func TranslationsPayload(c *gin.Context, key string) (translations.Payload, error) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
		return nil, err
	}
	return translations.ParsePayload(body[key]), nil
}

// WriteError maps core errors onto HTTP statuses: conflicts are 409,
// missing records 404, anything else 500.
func WriteError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, translations.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": msg, "details": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
	}
}

// ValidationFailed writes a 422 with per-field messages.
func ValidationFailed(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": fields})
}
