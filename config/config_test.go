package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("AIRTABLE_API_KEY", "key")
	t.Setenv("AIRTABLE_BASE_ID", "appBase")
	t.Setenv("LEMON_SECRET_KEY", "sk")
	t.Setenv("LEMON_STORE_ID", "1")
	t.Setenv("LEMON_VARIANT_ID", "2")
	t.Setenv("LEMON_SIGNING_SECRET", "whsec")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Kind != StoreAirtable || cfg.Airtable.Table != "Ads" {
		t.Errorf("unexpected store config %+v %+v", cfg.Store, cfg.Airtable)
	}
	if !cfg.Server.DirectCreateEnabled {
		t.Error("expected direct create enabled by default")
	}
	if cfg.Redis.OrderTTL != 168*time.Hour {
		t.Errorf("unexpected order ttl %v", cfg.Redis.OrderTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ADS_STORE", "Postgres")
	t.Setenv("ADS_DIRECT_CREATE_ENABLED", "false")
	t.Setenv("FRONTEND_URL", "https://quiz.example/")
	t.Setenv("READ_TIMEOUT_SEC", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Kind != StorePostgres {
		t.Errorf("expected postgres store, got %q", cfg.Store.Kind)
	}
	if cfg.Server.DirectCreateEnabled {
		t.Error("expected direct create disabled")
	}
	if cfg.FrontendURL != "https://quiz.example" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.FrontendURL)
	}
	if cfg.Server.ReadTimeout != 30 {
		t.Errorf("expected fallback read timeout, got %d", cfg.Server.ReadTimeout)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Kind: StoreAirtable}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty config")
	}
	for _, want := range []string{"AIRTABLE_API_KEY", "AIRTABLE_BASE_ID", "LEMON_SIGNING_SECRET", "LEMON_VARIANT_ID"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %s in %q", want, err)
		}
	}

	cfg = &Config{
		Store:        StoreConfig{Kind: StorePostgres},
		LemonSqueezy: LemonSqueezyConfig{APIKey: "k", StoreID: "1", VariantID: "2", SigningSecret: "s"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("postgres store should not need airtable settings: %v", err)
	}

	cfg.Store.Kind = "sqlite"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "ADS_STORE") {
		t.Errorf("expected ADS_STORE error, got %v", err)
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "ads", SSLMode: "disable"}
	if got := c.DSN(); got != "postgres://u:p@db:5432/ads?sslmode=disable" {
		t.Errorf("unexpected dsn %q", got)
	}
	c.URL = "postgres://override"
	if c.DSN() != "postgres://override" {
		t.Error("expected URL to win")
	}
}
