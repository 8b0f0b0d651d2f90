package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Cart    CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"MOBILECART_APP_ENV" required:"true"`
	Port         string   `envconfig:"MOBILECART_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"MOBILECART_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"MOBILECART_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"MOBILECART_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the durable key-value backend the cart persists to.
type StorageConfig struct {
	Backend string `envconfig:"MOBILECART_STORAGE_BACKEND" default:"sqlite"`
	// Path is the data directory for the file backend or the database
	// file for the sqlite backend.
	Path string `envconfig:"MOBILECART_STORAGE_PATH" default:"mobilecart.db"`
	// DSN is required by the postgres backend.
	DSN string `envconfig:"MOBILECART_STORAGE_DSN"`
	// CartKey is the single namespaced key the cart document lives under.
	CartKey string `envconfig:"MOBILECART_STORAGE_CART_KEY" default:"mobilecart:cart"`
}

func (s *StorageConfig) validate(redis RedisConfig) error {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	switch backend {
	case StorageBackendMemory:
	case StorageBackendFile, StorageBackendSQLite:
		if s.Path == "" {
			return fmt.Errorf("%s is required for the %s backend", EnvStoragePath, backend)
		}
	case StorageBackendPG:
		if s.DSN == "" {
			return fmt.Errorf("%s is required for the postgres backend", EnvStorageDSN)
		}
	case StorageBackendRedis:
		if redis.URL == "" && redis.Address == "" {
			return fmt.Errorf("%s is required for the redis backend", EnvRedisURL)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
	s.Backend = backend
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MOBILECART_REDIS_URL"`
	Address      string        `envconfig:"MOBILECART_REDIS_ADDR"`
	Password     string        `envconfig:"MOBILECART_REDIS_PASSWORD"`
	DB           int           `envconfig:"MOBILECART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MOBILECART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MOBILECART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MOBILECART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MOBILECART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MOBILECART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig points at the external product catalog API.
type CatalogConfig struct {
	BaseURL     string        `envconfig:"MOBILECART_CATALOG_BASE_URL"`
	APIKey      string        `envconfig:"MOBILECART_CATALOG_API_KEY"`
	Timeout     time.Duration `envconfig:"MOBILECART_CATALOG_TIMEOUT" default:"10s"`
	MaxRetries  int           `envconfig:"MOBILECART_CATALOG_MAX_RETRIES" default:"2"`
	RetryBaseMS int           `envconfig:"MOBILECART_CATALOG_RETRY_BASE_MS" default:"1000"`
}

// RetryBase returns the initial backoff delay for catalog retries.
func (c CatalogConfig) RetryBase() time.Duration {
	if c.RetryBaseMS <= 0 {
		return time.Second
	}
	return time.Duration(c.RetryBaseMS) * time.Millisecond
}

type CartConfig struct {
	// AddedCooldownMS is how long the add-to-cart confirmation state
	// stays on before auto-resetting.
	AddedCooldownMS int `envconfig:"MOBILECART_CART_ADDED_COOLDOWN_MS" default:"2000"`
}

// AddedCooldown returns the confirmation cooldown as a duration.
func (c CartConfig) AddedCooldown() time.Duration {
	if c.AddedCooldownMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.AddedCooldownMS) * time.Millisecond
}
