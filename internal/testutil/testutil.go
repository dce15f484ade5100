// Package testutil builds migrated in-memory databases and services for
// handler tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"translation-manager/config"
	"translation-manager/database"
	"translation-manager/internal/app"
	"translation-manager/internal/app/http/middleware"
	"translation-manager/internal/domain/users"
)

const (
	JWTSecret     = "test-secret"
	AdminEmail    = "admin@example.com"
	AdminPassword = "secret123"
)

var dbSeq atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
}

// Config mirrors the defaults of config.Load for a sqlite database.
func Config() *config.Config {
	return &config.Config{
		Port:              "8080",
		Env:               "test",
		LogLevel:          "debug",
		DBDriver:          "sqlite",
		JWTSecret:         JWTSecret,
		DefaultLocale:     "en",
		LanguageCacheSize: 64,
		AdminEmail:        AdminEmail,
		AdminPassword:     AdminPassword,
		Translations: config.Translations{
			LanguageTable:      "languages",
			ForeignKey:         "language_id",
			OwnerKey:           "model_id",
			DataKey:            "translations",
			LanguageCodeColumn: "code",
			LocaleColumn:       "locale",
			StoreLocale:        true,
		},
	}
}

// OpenDB returns a private, migrated sqlite database seeded with the
// default languages and the admin account.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbSeq.Add(1))

	db, err := database.Open("sqlite", dsn, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedLanguages(db))
	require.NoError(t, database.SeedAdmin(db, AdminEmail, AdminPassword))
	return db
}

// Services wires every engine on top of OpenDB.
func Services(t testing.TB) *app.Services {
	t.Helper()

	cfg := Config()
	svc, err := app.NewServices(cfg, OpenDB(t), zap.NewNop())
	require.NoError(t, err)
	return svc
}

// Admin returns the seeded admin account.
func Admin(t testing.TB, db *gorm.DB) users.User {
	t.Helper()

	var u users.User
	require.NoError(t, db.Where("email = ?", AdminEmail).First(&u).Error)
	return u
}

// BearerToken signs a token for u with JWTSecret.
func BearerToken(t testing.TB, u users.User) string {
	t.Helper()

	token, err := middleware.IssueToken(JWTSecret, u, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}
