package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	RedisURL          string
	JWTSecret         string
	AdminPassword     string
	AdminPasswordHash string
	AdminEmail        string
	GeminiAPIKey      string
	SendGridAPIKey    string
	SendGridFrom      string
	AppName           string
}

// Load reads the environment (and .env if present) into a Config.
// DATABASE_URL may be absent — the server then runs in "not configured"
// mode — but if set it must be a well-formed postgres URL.
func Load() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", "guaravita-dev-secret-do-not-ship"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "rayan123"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFrom:      getEnv("SENDGRID_FROM_EMAIL", "noreply@guaravita.app"),
		AppName:           getEnv("APP_NAME", "Guaravita Ledger"),
	}

	if cfg.DatabaseURL != "" {
		if err := validateDatabaseURL(cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Configured reports whether the persistence backend is reachable in
// principle. When false the ledger routes answer 503 and only the
// configuration status endpoint carries data.
func (c *Config) Configured() bool {
	return c.DatabaseURL != ""
}

func validateDatabaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("invalid DATABASE_URL: unsupported scheme %q", u.Scheme)
	}
	if strings.TrimSpace(u.Host) == "" {
		return fmt.Errorf("invalid DATABASE_URL: missing host")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
