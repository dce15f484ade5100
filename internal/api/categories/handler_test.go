package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translation-manager/internal/app"
	"translation-manager/internal/domain/categories"
	"translation-manager/internal/testutil"
)

func newRouter(t *testing.T) (*gin.Engine, *app.Services) {
	t.Helper()

	svc := testutil.Services(t)
	h := NewHandler(svc)

	r := gin.New()
	r.GET("/categories", h.Index)
	r.POST("/categories", h.Store)
	r.PUT("/categories/:id", h.Update)
	r.DELETE("/categories/:id", h.Destroy)
	return r, svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCategoryLifecycleUsesDefaultOwnerKey(t *testing.T) {
	r, svc := newRouter(t)

	w := do(r, http.MethodPost, "/categories", `{"name": "Shoes", "translations": {"1": {"name": "Shoes"}, "3": {"name": "Chaussures"}}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		Category categories.Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	id := strconv.FormatUint(uint64(out.Category.ID), 10)

	var rows []categories.CategoryTranslation
	require.NoError(t, svc.DB.Where("model_id = ?", out.Category.ID).Order("language_id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "fr", *rows[1].Locale)

	w = do(r, http.MethodPut, "/categories/"+id, `{"name": "Footwear", "translations": {"3": {"name": "Souliers"}}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	v, err := svc.Categories.FieldValue(context.Background(), out.Category, 3, "name")
	require.NoError(t, err)
	assert.Equal(t, "Souliers", v)

	w = do(r, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var index struct {
		Categories []categories.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &index))
	require.Len(t, index.Categories, 1)
	assert.Equal(t, "Footwear", index.Categories[0].Name)
	assert.Len(t, index.Categories[0].Translations, 2)

	w = do(r, http.MethodDelete, "/categories/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, svc.DB.Model(&categories.CategoryTranslation{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/categories/"+id, "").Code)
}

func TestCategoryValidation(t *testing.T) {
	r, _ := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/categories", `{"translations": {}}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/categories/99", `{"name": "x"}`).Code)
}
