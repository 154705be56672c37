package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Redis (optional; sessions fall back to in-memory storage when unset)
	RedisURL string

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Admin bootstrap: users with these emails get the admin role on login.
	AdminEmails []string

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "starttls", "tls"

	// Email notification toggles
	EmailNotifyAdminsOnSubmit bool
	EmailNotifyUserOnDecision bool

	// Background health checker
	EnableHealthChecker bool
	HealthCheckInterval time.Duration
	HealthCheckMaxAge   time.Duration

	// Site branding
	SiteTitle   string
	SiteTagline string
	SiteFooter  string

	// Request submission
	PendingRequestLimit int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/toolhub?sslmode=disable"),
		RedisURL:         getEnv("REDIS_URL", ""),
		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),
		AdminEmails:      splitList(getEnv("ADMIN_EMAILS", "")),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "ToolHub"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),

		EmailNotifyAdminsOnSubmit: getEnvBool("EMAIL_NOTIFY_ADMINS_ON_SUBMIT", true),
		EmailNotifyUserOnDecision: getEnvBool("EMAIL_NOTIFY_USER_ON_DECISION", true),

		EnableHealthChecker: getEnvBool("ENABLE_HEALTH_CHECKER", false),
		HealthCheckInterval: getEnvDuration("HEALTH_CHECK_INTERVAL", 15*time.Minute),
		HealthCheckMaxAge:   getEnvDuration("HEALTH_CHECK_MAX_AGE", 24*time.Hour),

		SiteTitle:   getEnv("SITE_TITLE", "ToolHub"),
		SiteTagline: getEnv("SITE_TAGLINE", "A community-curated directory of AI tools"),
		SiteFooter:  getEnv("SITE_FOOTER", "ToolHub - A community-curated directory of AI tools"),

		PendingRequestLimit: getEnvInt("PENDING_REQUEST_LIMIT", 5),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsAdminEmail reports whether the given email is in the admin bootstrap list.
func (c *Config) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}
