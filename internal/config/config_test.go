package config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SESSION_EXPIRE_TIME", "")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "")
	t.Setenv("ENVIRONMENT", "")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != 60*time.Hour {
		t.Fatalf("unexpected session ttl %v", cfg.SessionTTL)
	}
	if cfg.CatalogCacheTTL != time.Hour {
		t.Fatalf("unexpected cache ttl %v", cfg.CatalogCacheTTL)
	}
	if !cfg.IsProd() {
		t.Fatalf("expected prod by default")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SESSION_EXPIRE_TIME", "2")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "30")
	t.Setenv("CTP_SCOPES", "view_products:proj manage_my_orders:proj")
	t.Setenv("CTP_API_URL", "https://api.example.com/")

	cfg := FromEnv()
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("unexpected session ttl %v", cfg.SessionTTL)
	}
	if cfg.CatalogCacheTTL != 30*time.Second {
		t.Fatalf("unexpected cache ttl %v", cfg.CatalogCacheTTL)
	}
	if len(cfg.CTScopes) != 2 {
		t.Fatalf("unexpected scopes %v", cfg.CTScopes)
	}
	if cfg.CTAPIURL != "https://api.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.CTAPIURL)
	}
}

func TestValidateListsMissing(t *testing.T) {
	cfg := Config{Environment: "prod", CTClientID: "id"}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, key := range []string{"CTP_CLIENT_SECRET", "CTP_PROJECT_KEY", "JWT_SECRET_KEY"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in %v", key, err)
		}
	}
	if strings.Contains(err.Error(), "CTP_CLIENT_ID") {
		t.Fatalf("client id is set, got %v", err)
	}
}

func TestValidateOK(t *testing.T) {
	cfg := Config{
		Environment:    "dev",
		CTClientID:     "id",
		CTClientSecret: "secret",
		CTProjectKey:   "proj",
		CTAuthURL:      "https://auth.example.com",
		CTAPIURL:       "https://api.example.com",
		SessionSecret:  "s3cr3t",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IsProd() {
		t.Fatalf("dev config reported as prod")
	}
}
