package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=3000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`
	StaticDir string `env:"STATIC_DIR, default=assets"`

	Session  SessionConfig
	Auth     AuthConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET, required"`
	TTL    time.Duration `env:"SESSION_TTL,    default=24h"`
}

type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST, default=8"`
	// LogoutMode is "destroy" (drop the whole session) or "keep_cart".
	LogoutMode string `env:"LOGOUT_MODE, default=destroy"`
}

type CheckoutConfig struct {
	ClearCart      bool `env:"CHECKOUT_CLEAR_CART, default=false"`
	ReceiptWorkers int  `env:"RECEIPT_WORKERS,     default=4"`

	// DedupWindow suppresses identical receipts from one session.
	DedupWindow time.Duration `env:"RECEIPT_DEDUP_WINDOW, default=1m"`
}

type CatalogConfig struct {
	PageSize int  `env:"PRODUCT_PAGE_SIZE, default=10"`
	Seed     bool `env:"CATALOG_SEED,      default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ecoagua"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadFrom reads configuration from the given lookuper instead of the
// process environment.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
