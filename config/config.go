package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	Env        string `env:"APP_ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	DBDriver string `env:"DB_DRIVER" envDefault:"postgres"` // postgres | sqlite
	DBURL    string `env:"DB_URL,required,notEmpty"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	DefaultLocale     string `env:"DEFAULT_LOCALE" envDefault:"en"`
	LanguageCacheSize int    `env:"LANGUAGE_CACHE_SIZE" envDefault:"1024"`

	// used by the seed command only
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Translations Translations `envPrefix:"TRANSLATIONS_"`
}

// Translations holds the global defaults every translatable entity falls
// back to when its own configuration leaves an option empty.
type Translations struct {
	LanguageTable      string `env:"LANGUAGE_TABLE" envDefault:"languages"`
	ForeignKey         string `env:"FOREIGN_KEY" envDefault:"language_id"`
	OwnerKey           string `env:"OWNER_KEY" envDefault:"model_id"`
	DataKey            string `env:"DATA_KEY" envDefault:"translations"`
	LanguageCodeColumn string `env:"LANGUAGE_CODE_COLUMN" envDefault:"code"`
	LocaleColumn       string `env:"LOCALE_COLUMN" envDefault:"locale"`
	StoreLocale        bool   `env:"STORE_LOCALE" envDefault:"true"`
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads .env (if any) and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.LanguageCacheSize <= 0 {
		return nil, fmt.Errorf("LANGUAGE_CACHE_SIZE must be positive, got %d", cfg.LanguageCacheSize)
	}

	return cfg, nil
}
