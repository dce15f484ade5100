package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"translation-manager/config"
	"translation-manager/database"
	productsapi "translation-manager/internal/api/products"
	"translation-manager/internal/app"
	routes "translation-manager/internal/app/http"
	"translation-manager/internal/logger"
)

func main() {
	a := &cli.App{
		Name:  "translation-manager",
		Usage: "manage translatable products, posts and categories",
		Commands: []*cli.Command{
			serveCmd,
			migrateCmd,
			seedCmd,
			importCmd,
		},
	}

	if err := a.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// bootstrap loads the configuration, the logger and a migrated database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	l, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.InitDB(cfg, l)
	if err != nil {
		_ = l.Sync()
		return nil, nil, nil, err
	}
	return cfg, l, db, nil
}

var serveCmd = &cli.Command{
	Name:   "serve",
	Usage:  "run the HTTP API",
	Action: runServeCmd,
}

func runServeCmd(_ *cli.Context) error {
	cfg, l, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	svc, err := app.NewServices(cfg, db, l)
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(l))

	// CORS has to be in place before the routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, svc)

	l.Info("listening", zap.String("addr", cfg.Addr()))
	return r.Run(cfg.Addr())
}

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "create or update the database schema",
	Action: func(_ *cli.Context) error {
		_, l, _, err := bootstrap()
		if err != nil {
			return err
		}
		return l.Sync()
	},
}

var seedCmd = &cli.Command{
	Name:  "seed",
	Usage: "insert the default languages and the admin account",
	Action: func(_ *cli.Context) error {
		cfg, l, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()

		if err := database.SeedLanguages(db); err != nil {
			return err
		}
		if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}

		l.Info("seeded", zap.Int("languages", len(database.DefaultLanguages)), zap.String("admin", cfg.AdminEmail))
		return nil
	},
}

var importFlags struct {
	file string
}

var importCmd = &cli.Command{
	Name:        "import",
	Usage:       "create or update products from a JSON file",
	Description: "the file holds {\"products\": [...]}; translations in it are not processed",
	Action:      runImportCmd,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Usage:       "products JSON file",
			Required:    true,
			Destination: &importFlags.file,
		},
	},
}

func runImportCmd(c *cli.Context) error {
	raw, err := os.ReadFile(importFlags.file)
	if err != nil {
		return err
	}

	var req productsapi.ImportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("decode %s: %w", importFlags.file, err)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid %s: %w", importFlags.file, err)
	}

	cfg, l, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	svc, err := app.NewServices(cfg, db, l)
	if err != nil {
		return err
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := productsapi.Import(ctx, db, svc.Products, req)
	if err != nil {
		return err
	}

	l.Info("import finished",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", len(result.Failed)),
	)
	for _, f := range result.Failed {
		l.Warn("import row failed", zap.String("sku", f.SKU), zap.String("error", f.Error))
	}
	return nil
}
