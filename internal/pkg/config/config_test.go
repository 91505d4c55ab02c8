package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("expected port 3000, got %q", cfg.Port)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected 24h session ttl, got %v", cfg.Session.TTL)
	}
	if cfg.Auth.BcryptCost != 8 {
		t.Errorf("expected bcrypt cost 8, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.LogoutMode != "destroy" {
		t.Errorf("expected logout mode destroy, got %q", cfg.Auth.LogoutMode)
	}
	if cfg.Checkout.ClearCart {
		t.Errorf("expected checkout to keep the cart by default")
	}
	if cfg.Checkout.DedupWindow != time.Minute {
		t.Errorf("expected 1m dedup window, got %v", cfg.Checkout.DedupWindow)
	}
	if cfg.Catalog.Seed {
		t.Errorf("expected catalog seeding off by default")
	}
	if cfg.Catalog.PageSize != 10 {
		t.Errorf("expected page size 10, got %d", cfg.Catalog.PageSize)
	}
	if cfg.Mongo.Database != "ecoagua" {
		t.Errorf("unexpected mongo db %q", cfg.Mongo.Database)
	}
	if cfg.IsProduction() {
		t.Errorf("expected development env by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET":      "s3cret",
		"ENV":                 "production",
		"SESSION_TTL":         "30m",
		"LOGOUT_MODE":         "keep_cart",
		"CHECKOUT_CLEAR_CART": "true",
		"REDIS_DB":            "2",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !cfg.IsProduction() {
		t.Errorf("expected production env")
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %v", cfg.Session.TTL)
	}
	if cfg.Auth.LogoutMode != "keep_cart" {
		t.Errorf("unexpected logout mode %q", cfg.Auth.LogoutMode)
	}
	if !cfg.Checkout.ClearCart {
		t.Errorf("expected clear cart to be enabled")
	}
	if cfg.Redis.DB != 2 {
		t.Errorf("expected redis db 2, got %d", cfg.Redis.DB)
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when SESSION_SECRET is missing")
	}
}
