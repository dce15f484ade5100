package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authapi "translation-manager/internal/api/auth"
	categoriesapi "translation-manager/internal/api/categories"
	languagesapi "translation-manager/internal/api/languages"
	postsapi "translation-manager/internal/api/posts"
	productsapi "translation-manager/internal/api/products"
	usersapi "translation-manager/internal/api/users"
	"translation-manager/internal/app"
	"translation-manager/internal/app/http/middleware"
	"translation-manager/internal/domain/users"
)

func RegisterRoutes(r *gin.Engine, svc *app.Services) {
	products := productsapi.NewHandler(svc)
	posts := postsapi.NewHandler(svc)
	categories := categoriesapi.NewHandler(svc)
	languages := languagesapi.NewHandler(svc)
	auth := authapi.NewHandler(svc)
	me := usersapi.NewHandler(svc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public reads
	r.GET("/languages", languages.Index)

	r.GET("/products", products.Index)
	r.GET("/products/:id", products.Edit)
	r.GET("/products/:id/show", products.Show)
	r.GET("/products/:id/show/:locale", products.Show)

	r.GET("/posts", posts.Index)
	r.GET("/posts/:id", posts.Edit)
	r.GET("/posts/:id/show", posts.Show)
	r.GET("/posts/:id/show/:locale", posts.Show)

	r.GET("/categories", categories.Index)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/login", auth.Login)

	// Authenticated writes
	writes := r.Group("/")
	writes.Use(middleware.AuthMiddleware(svc.Config.JWTSecret), middleware.SanitizeAndCleanInputMiddleware())

	writes.GET("/me", me.GetCurrentUser)

	writes.POST("/products", products.Store)
	writes.POST("/products/import", products.Import)
	writes.PUT("/products/:id", products.Update)
	writes.DELETE("/products/:id", products.Destroy)
	writes.DELETE("/products/:id/translations/:language_id", products.DestroyTranslation)

	writes.POST("/posts", posts.Store)
	writes.PUT("/posts/:id", posts.Update)
	writes.DELETE("/posts/:id", posts.Destroy)
	writes.DELETE("/posts/:id/translations/:language_id", posts.DestroyTranslation)

	writes.POST("/categories", categories.Store)
	writes.PUT("/categories/:id", categories.Update)
	writes.DELETE("/categories/:id", categories.Destroy)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(svc.Config.JWTSecret), middleware.RequireRole(users.RoleAdmin))
	admin.POST("/languages/cache/clear", languages.ClearCache)
}
