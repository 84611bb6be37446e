package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("STORE_DRIVER", "")
	cfg := Load()
	if cfg.JWTExpiry != 7*24*time.Hour {
		t.Errorf("JWTExpiry = %v", cfg.JWTExpiry)
	}
	if cfg.StoreDriver != StoreDriverPostgres || cfg.UseMemoryStore() {
		t.Errorf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.MailSendEnabled {
		t.Error("mail sending should be off by default")
	}
	if cfg.RateLimitBypassPrivate || len(cfg.BypassPaths()) != 0 {
		t.Errorf("rate limit bypass should be off by default: %v %v", cfg.RateLimitBypassPrivate, cfg.BypassPaths())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "3d")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "notes")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("RATE_LIMIT_BYPASS_PRIVATE", "true")
	t.Setenv("RATE_LIMIT_BYPASS_PATHS", "/api/login, /api/users")

	cfg := Load()
	if cfg.JWTExpiry != 72*time.Hour {
		t.Errorf("JWTExpiry = %v", cfg.JWTExpiry)
	}
	if !cfg.UseMemoryStore() {
		t.Errorf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("RateLimitWindow = %v", cfg.RateLimitWindow)
	}
	if got := cfg.CORSOrigins(); len(got) != 2 || got[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", got)
	}
	if got := cfg.BypassPaths(); !cfg.RateLimitBypassPrivate || len(got) != 2 || got[1] != "/api/users" {
		t.Errorf("bypass = %v %v", cfg.RateLimitBypassPrivate, got)
	}
	if dsn := cfg.PostgresDSN(); dsn != "postgres://u:p@db:5433/notes?sslmode=require" {
		t.Errorf("PostgresDSN = %q", dsn)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("BCRYPT_COST", "high")
	t.Setenv("METRICS_ENABLED", "maybe")
	cfg := Load()
	if cfg.JWTExpiry != 7*24*time.Hour || cfg.BcryptCost != 10 || !cfg.MetricsEnabled {
		t.Errorf("fallbacks not applied: %v %d %v", cfg.JWTExpiry, cfg.BcryptCost, cfg.MetricsEnabled)
	}
}
