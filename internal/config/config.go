package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	Environment     string
	FrontendURL     string

	CTClientID     string
	CTClientSecret string
	CTProjectKey   string
	CTAuthURL      string
	CTAPIURL       string
	CTScopes       []string

	SessionSecret string
	SessionCookie string
	SessionTTL    time.Duration

	CatalogCacheTTL time.Duration
	RedisAddr       string
	DBConnString    string

	AuthRatePerMinute int
}

// FromEnv loads an optional .env file and builds Config with defaults,
// overridden by environment variables.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:          envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout:   envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		Environment:       envOrDefault("ENVIRONMENT", "prod"),
		FrontendURL:       envOrDefault("FE_URL", ""),
		CTClientID:        os.Getenv("CTP_CLIENT_ID"),
		CTClientSecret:    os.Getenv("CTP_CLIENT_SECRET"),
		CTProjectKey:      os.Getenv("CTP_PROJECT_KEY"),
		CTAuthURL:         strings.TrimRight(os.Getenv("CTP_AUTH_URL"), "/"),
		CTAPIURL:          strings.TrimRight(os.Getenv("CTP_API_URL"), "/"),
		CTScopes:          strings.Fields(os.Getenv("CTP_SCOPES")),
		SessionSecret:     os.Getenv("JWT_SECRET_KEY"),
		SessionCookie:     envOrDefault("SESSION_KEY", "session"),
		SessionTTL:        envHours("SESSION_EXPIRE_TIME", 60*time.Hour),
		CatalogCacheTTL:   envDuration("CATALOG_CACHE_TTL_SECONDS", time.Hour),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		DBConnString:      os.Getenv("DB_DSN"),
		AuthRatePerMinute: envInt("AUTH_RATE_PER_MINUTE", 20),
	}
}

// IsProd reports whether the service runs with production settings.
func (c Config) IsProd() bool {
	return c.Environment != "dev"
}

// Validate reports every required value that is missing.
func (c Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"CTP_CLIENT_ID", c.CTClientID},
		{"CTP_CLIENT_SECRET", c.CTClientSecret},
		{"CTP_PROJECT_KEY", c.CTProjectKey},
		{"CTP_AUTH_URL", c.CTAuthURL},
		{"CTP_API_URL", c.CTAPIURL},
		{"JWT_SECRET_KEY", c.SessionSecret},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment values: %s", strings.Join(missing, ", "))
	}
	if c.Environment != "prod" && c.Environment != "dev" {
		return fmt.Errorf("ENVIRONMENT must be prod or dev, got %q", c.Environment)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envHours(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		hours, err := strconv.Atoi(v)
		if err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
	}
	return def
}
