package database

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"translation-manager/config"
	"translation-manager/internal/domain/categories"
	"translation-manager/internal/domain/languages"
	"translation-manager/internal/domain/posts"
	"translation-manager/internal/domain/products"
	"translation-manager/internal/domain/users"
	"translation-manager/internal/logger"
)

// DefaultLanguages are seeded on a fresh database. Their ids are fixed so
// translation payloads keyed by id stay stable between environments.
var DefaultLanguages = []languages.Language{
	{ID: 1, Title: "English", Code: "en"},
	{ID: 2, Title: "Arabic", Code: "ar"},
	{ID: 3, Title: "French", Code: "fr"},
}

// Open connects to the configured driver. Unique violations are translated
// to gorm.ErrDuplicatedKey.
func Open(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Gorm(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	return db, nil
}

// InitDB opens the database described by cfg and migrates it.
func InitDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := Open(cfg.DBDriver, cfg.DBURL, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("connected and migrated", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// Migrate auto-migrates every model. Languages and owners come first so
// the translation tables can reference them.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// reference
		&languages.Language{},
		&users.User{},

		// translatable entities
		&products.Product{},
		&products.ProductTranslation{},
		&posts.Post{},
		&posts.PostTranslation{},
		&categories.Category{},
		&categories.CategoryTranslation{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedLanguages inserts DefaultLanguages that are missing, matching on code.
func SeedLanguages(db *gorm.DB) error {
	for _, lang := range DefaultLanguages {
		var existing languages.Language
		err := db.Where("code = ?", lang.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		l := lang
		if err := db.Create(&l).Error; err != nil {
			return fmt.Errorf("seed language %s: %w", lang.Code, err)
		}
	}

	if db.Dialector.Name() == "postgres" {
		// explicit ids do not advance the serial sequence
		return db.Exec(`SELECT setval(pg_get_serial_sequence('languages', 'id'), (SELECT MAX(id) FROM languages))`).Error
	}
	return nil
}

// SeedAdmin creates the admin account, or resets its password and role when
// the email already exists. Empty credentials are a no-op.
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashed := string(hash)

	var user users.User
	err = db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = users.User{Name: "Admin", Email: email, Password: &hashed, Role: users.RoleAdmin}
		return db.Create(&user).Error
	}
	if err != nil {
		return err
	}

	return db.Model(&user).Updates(map[string]any{
		"password": hashed,
		"role":     users.RoleAdmin,
	}).Error
}
