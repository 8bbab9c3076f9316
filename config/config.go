package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ad store backends.
const (
	StoreAirtable = "airtable"
	StorePostgres = "postgres"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server       ServerConfig
	Airtable     AirtableConfig
	LemonSqueezy LemonSqueezyConfig
	Store        StoreConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	AWS          AWSConfig
	FrontendURL  string
	LogLevel     string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port                string
	ReadTimeout         int
	WriteTimeout        int
	CORSAllowedOrigins  string // comma-separated, or "*" for all (e.g. https://quiz.example,http://localhost:5173)
	DirectCreateEnabled bool   // exposes POST /create-ad, which skips payment
}

// AirtableConfig holds the Airtable base holding the Ads table.
type AirtableConfig struct {
	APIKey   string
	BaseID   string
	Table    string
	Endpoint string
}

// LemonSqueezyConfig holds checkout and webhook settings.
type LemonSqueezyConfig struct {
	APIKey        string
	StoreID       string
	VariantID     string
	SigningSecret string
	Endpoint      string
}

// StoreConfig selects the ad store backend.
type StoreConfig struct {
	Kind string // airtable or postgres
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string // if set, used as-is (e.g. postgres://localhost:5432/adboard?sslmode=disable)
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis connection settings. An empty Addr disables the order ledger.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	OrderTTL time.Duration
}

// AWSConfig holds AWS credentials and the webhook archive bucket. An empty bucket disables archiving.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	ArchiveBucket   string
	ArchivePrefix   string
}

// DSN returns the PostgreSQL connection string.
// If DatabaseConfig.URL is set (e.g. DATABASE_URL env), it is used as-is; otherwise built from components.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()      // .env
	_ = godotenv.Load("env") // env (no leading dot)

	cfg := &Config{
		Server: ServerConfig{
			Port:                getEnv("PORT", "3000"),
			ReadTimeout:         getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:        getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			DirectCreateEnabled: getEnvBool("ADS_DIRECT_CREATE_ENABLED", true),
		},
		Airtable: AirtableConfig{
			APIKey:   getEnv("AIRTABLE_API_KEY", ""),
			BaseID:   getEnv("AIRTABLE_BASE_ID", ""),
			Table:    getEnv("AIRTABLE_TABLE", "Ads"),
			Endpoint: getEnv("AIRTABLE_ENDPOINT", ""),
		},
		LemonSqueezy: LemonSqueezyConfig{
			APIKey:        getEnv("LEMON_SECRET_KEY", ""),
			StoreID:       getEnv("LEMON_STORE_ID", ""),
			VariantID:     getEnv("LEMON_VARIANT_ID", ""),
			SigningSecret: getEnv("LEMON_SIGNING_SECRET", ""),
			Endpoint:      getEnv("LEMON_ENDPOINT", ""),
		},
		Store: StoreConfig{
			Kind: strings.ToLower(getEnv("ADS_STORE", StoreAirtable)),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "adboard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			OrderTTL: time.Duration(getEnvInt("WEBHOOK_ORDER_TTL_HOURS", 168)) * time.Hour,
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			ArchiveBucket:   getEnv("AWS_S3_WEBHOOK_BUCKET", ""),
			ArchivePrefix:   getEnv("AWS_S3_WEBHOOK_PREFIX", "webhooks"),
		},
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing setting the selected backends need.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Kind {
	case StoreAirtable:
		if c.Airtable.APIKey == "" {
			errs = append(errs, errors.New("AIRTABLE_API_KEY is required"))
		}
		if c.Airtable.BaseID == "" {
			errs = append(errs, errors.New("AIRTABLE_BASE_ID is required"))
		}
	case StorePostgres:
	default:
		errs = append(errs, fmt.Errorf("ADS_STORE must be %q or %q, got %q", StoreAirtable, StorePostgres, c.Store.Kind))
	}
	if c.LemonSqueezy.SigningSecret == "" {
		errs = append(errs, errors.New("LEMON_SIGNING_SECRET is required"))
	}
	if c.LemonSqueezy.APIKey == "" || c.LemonSqueezy.StoreID == "" || c.LemonSqueezy.VariantID == "" {
		errs = append(errs, errors.New("LEMON_SECRET_KEY, LEMON_STORE_ID and LEMON_VARIANT_ID are required"))
	}
	return errors.Join(errs...)
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
