package products

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
	"translation-manager/internal/domain/products"
	"translation-manager/internal/testutil"
)

func newRouter(t *testing.T) (*gin.Engine, *app.Services) {
	t.Helper()

	svc := testutil.Services(t)
	h := NewHandler(svc)

	r := gin.New()
	r.GET("/products", h.Index)
	r.POST("/products", h.Store)
	r.POST("/products/import", h.Import)
	r.GET("/products/:id", h.Edit)
	r.PUT("/products/:id", h.Update)
	r.DELETE("/products/:id", h.Destroy)
	r.GET("/products/:id/show", h.Show)
	r.GET("/products/:id/show/:locale", h.Show)
	r.DELETE("/products/:id/translations/:language_id", h.DestroyTranslation)
	return r, svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func storeRedShoe(t *testing.T, r http.Handler) products.Product {
	t.Helper()

	w := do(r, http.MethodPost, "/products", `{
		"sku": "SHOE-7", "price": 49.9, "stock": 3,
		"translations": {"1": {"name": "Red Shoe", "description": "Leather"}, "2": {"name": "Red Shoe"}}
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		Message string           `json:"message"`
		Product products.Product `json:"product"`
	}
	decode(t, w, &out)
	assert.Equal(t, "Product created successfully!", out.Message)
	return out.Product
}

func TestStoreCreatesTranslationsWithGlobalSlugs(t *testing.T) {
	r, svc := newRouter(t)
	p := storeRedShoe(t, r)

	assert.Equal(t, "SHOE-7", p.SKU)
	assert.True(t, p.IsActive)

	rows, err := svc.Products.AllTranslations(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "red-shoe", *rows[0].Slug)
	assert.Equal(t, "en", *rows[0].Locale)
	assert.Equal(t, "red-shoe-1", *rows[1].Slug)
	assert.Equal(t, "ar", *rows[1].Locale)
}

func TestStoreValidation(t *testing.T) {
	r, _ := newRouter(t)
	storeRedShoe(t, r)

	cases := []struct {
		body string
		want int
	}{
		{`{"price": 1, "stock": 1}`, http.StatusBadRequest},
		{`{"sku": "X", "price": -1, "stock": 1}`, http.StatusBadRequest},
		{`{"sku": "X", "price": 1, "stock": -1}`, http.StatusBadRequest},
		{`{"sku": "X", "stock": 1}`, http.StatusBadRequest},
		{`{"sku": "SHOE-7", "price": 1, "stock": 1}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		w := do(r, http.MethodPost, "/products", tc.body)
		assert.Equal(t, tc.want, w.Code, tc.body)
	}
}

func TestStoreSkipsUnknownLanguages(t *testing.T) {
	r, svc := newRouter(t)

	w := do(r, http.MethodPost, "/products", `{"sku": "X-1", "price": 1, "stock": 1, "translations": {"999": {"name": "X"}, "oops": 1}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	require.NoError(t, svc.DB.Model(&products.ProductTranslation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStoreDerivedSlugOverridesSubmittedOne(t *testing.T) {
	r, svc := newRouter(t)
	storeRedShoe(t, r)

	w := do(r, http.MethodPost, "/products", `{"sku": "OTHER", "price": 1, "stock": 1, "translations": {"3": {"name": "Autre", "slug": "red-shoe"}}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var row products.ProductTranslation
	require.NoError(t, svc.DB.Where("language_id = ? AND name = ?", 3, "Autre").First(&row).Error)
	assert.Equal(t, "autre", *row.Slug)
}

func TestStoreExplicitSlugConflict(t *testing.T) {
	r, svc := newRouter(t)
	storeRedShoe(t, r)

	w := do(r, http.MethodPost, "/products", `{"sku": "OTHER", "price": 1, "stock": 1, "translations": {"3": {"slug": "red-shoe"}}}`)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var count int64
	require.NoError(t, svc.DB.Model(&products.Product{}).Where("sku = ?", "OTHER").Count(&count).Error)
	assert.Zero(t, count, "product is rolled back with its translations")
}

func TestEditKeysTranslationsByLanguage(t *testing.T) {
	r, _ := newRouter(t)
	p := storeRedShoe(t, r)

	w := do(r, http.MethodGet, "/products/"+itoa(p.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var out EditDTO
	decode(t, w, &out)
	assert.Equal(t, p.ID, out.Product.ID)
	require.Len(t, out.Translations, 2)
	assert.Equal(t, "Red Shoe", out.Translations[1].Name)
	assert.Equal(t, "Leather", *out.Translations[1].Description)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/products/9999", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/products/abc", "").Code)
}

func TestUpdate(t *testing.T) {
	r, svc := newRouter(t)
	p := storeRedShoe(t, r)

	w := do(r, http.MethodPut, "/products/"+itoa(p.ID), `{
		"sku": "SHOE-7", "price": 10, "stock": 0, "is_active": false,
		"translations": {"1": {"name": "Blue Shoe"}, "3": {"name": "Chaussure"}}
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored products.Product
	require.NoError(t, svc.DB.First(&stored, p.ID).Error)
	assert.Equal(t, 10.0, stored.Price)
	assert.Zero(t, stored.Stock)
	assert.False(t, stored.IsActive)

	rows, err := svc.Products.AllTranslations(context.Background(), stored)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "blue-shoe", *rows[0].Slug)
	assert.Equal(t, "Leather", *rows[0].Description)
	assert.Equal(t, "red-shoe-1", *rows[1].Slug)
	assert.Equal(t, "chaussure", *rows[2].Slug)
}

func TestUpdateRejectsTakenSKU(t *testing.T) {
	r, _ := newRouter(t)
	storeRedShoe(t, r)

	w := do(r, http.MethodPost, "/products", `{"sku": "OTHER", "price": 1, "stock": 1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var out struct {
		Product products.Product `json:"product"`
	}
	decode(t, w, &out)

	w = do(r, http.MethodPut, "/products/"+itoa(out.Product.ID), `{"sku": "SHOE-7", "price": 1, "stock": 1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDestroyRemovesTranslations(t *testing.T) {
	r, svc := newRouter(t)
	p := storeRedShoe(t, r)

	w := do(r, http.MethodDelete, "/products/"+itoa(p.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	rows, err := svc.Products.AllTranslations(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/products/"+itoa(p.ID), "").Code)
}

func TestShow(t *testing.T) {
	r, _ := newRouter(t)
	p := storeRedShoe(t, r)

	w := do(r, http.MethodGet, "/products/"+itoa(p.ID)+"/show", "")
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Locale      string                      `json:"locale"`
		Translation products.ProductTranslation `json:"translation"`
	}
	decode(t, w, &out)
	assert.Equal(t, "en", out.Locale)
	assert.Equal(t, "red-shoe", *out.Translation.Slug)

	w = do(r, http.MethodGet, "/products/"+itoa(p.ID)+"/show/ar", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &out)
	assert.Equal(t, "red-shoe-1", *out.Translation.Slug)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/products/"+itoa(p.ID)+"/show/fr", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/products/"+itoa(p.ID)+"/show/de", "").Code)
}

func TestDestroyTranslation(t *testing.T) {
	r, svc := newRouter(t)
	p := storeRedShoe(t, r)

	w := do(r, http.MethodDelete, "/products/"+itoa(p.ID)+"/translations/2", "")
	require.Equal(t, http.StatusOK, w.Code)

	rows, err := svc.Products.AllTranslations(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(1), rows[0].LanguageID)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/products/"+itoa(p.ID)+"/translations/2", "").Code)
}

func TestImportSkipsTranslations(t *testing.T) {
	r, svc := newRouter(t)
	existing := storeRedShoe(t, r)

	w := do(r, http.MethodPost, "/products/import", `{"products": [
		{"sku": "SHOE-7", "price": 5, "stock": 9, "translations": {"1": {"name": "Ignored"}}},
		{"sku": "NEW-1", "price": 1, "stock": 1, "translations": {"1": {"name": "Ignored too"}}}
	]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Result ImportResult `json:"result"`
	}
	decode(t, w, &out)
	assert.Equal(t, 1, out.Result.Created)
	assert.Equal(t, 1, out.Result.Updated)
	assert.Empty(t, out.Result.Failed)

	var updated products.Product
	require.NoError(t, svc.DB.First(&updated, existing.ID).Error)
	assert.Equal(t, 9, updated.Stock)

	var names []string
	require.NoError(t, svc.DB.Model(&products.ProductTranslation{}).Order("id").Pluck("name", &names).Error)
	assert.Equal(t, []string{"Red Shoe", "Red Shoe"}, names)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/products/import", `{"products": []}`).Code)
}

func TestIndex(t *testing.T) {
	r, _ := newRouter(t)
	storeRedShoe(t, r)

	w := do(r, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Products  []products.Product `json:"products"`
		Languages []map[string]any   `json:"languages"`
	}
	decode(t, w, &out)
	require.Len(t, out.Products, 1)
	assert.Len(t, out.Products[0].Translations, 2)
	assert.Len(t, out.Languages, 3)
}
