package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Google   GoogleConfig
	Gemini   GeminiConfig
	AWS      AWSConfig
	Email    EmailConfig
	Admin    AdminConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	BaseURL            string // public URL used in magic links, e.g. https://kideepdive.strategenwerk.com
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string // if set, used as-is
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds session token signing settings. Magic-link tokens use
// the same secret with their own short expiry.
type JWTConfig struct {
	Secret      string
	ExpireHours int
}

// GoogleConfig holds the OAuth client ID used to verify Google ID tokens.
type GoogleConfig struct {
	ClientID          string
	VerifyTimeoutSecs int // safety timeout so a hung verifier cannot stall sign-in
}

// GeminiConfig holds credentials for the generative-AI file service.
type GeminiConfig struct {
	APIKey  string
	BaseURL string // override for tests; empty = production endpoint
}

// AWSConfig holds AWS credentials and the S3 bucket for event assets.
type AWSConfig struct {
	Region               string
	AccessKeyID          string
	SecretAccessKey      string
	AssetsBucket         string
	PresignExpireMinutes int
}

// EmailConfig for outbound magic-link and confirmation mail over SMTP.
type EmailConfig struct {
	FromAddress string
	FromName    string
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
}

// AdminConfig holds the bootstrap admin allowlist. A user signing in with
// one of these emails is granted the admin role.
type AdminConfig struct {
	Emails []string
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

// IsAdminEmail reports whether email is on the admin allowlist.
func (c AdminConfig) IsAdminEmail(email string) bool {
	for _, e := range c.Emails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "deepdive"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-me-in-production"),
			ExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 720),
		},
		Google: GoogleConfig{
			ClientID:          getEnv("GOOGLE_CLIENT_ID", ""),
			VerifyTimeoutSecs: getEnvInt("GOOGLE_VERIFY_TIMEOUT_SEC", 10),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			BaseURL: getEnv("GEMINI_BASE_URL", ""),
		},
		AWS: AWSConfig{
			Region:               getEnv("AWS_REGION", ""),
			AccessKeyID:          getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey:      getEnv("AWS_SECRET_ACCESS_KEY", ""),
			AssetsBucket:         getEnv("AWS_S3_ASSETS_BUCKET", "deepdive-event-assets"),
			PresignExpireMinutes: getEnvInt("AWS_PRESIGN_EXPIRE_MINUTES", 15),
		},
		Email: EmailConfig{
			FromAddress: getEnv("EMAIL_FROM_ADDRESS", "office@momofeichtinger.com"),
			FromName:    getEnv("EMAIL_FROM_NAME", "Momo AI Deep Dive"),
			SMTPHost:    getEnv("SMTP_HOST", ""),
			SMTPPort:    getEnvInt("SMTP_PORT", 587),
			SMTPUser:    getEnv("SMTP_USER", ""),
			SMTPPass:    getEnv("SMTP_PASS", ""),
		},
		Admin: AdminConfig{
			Emails: splitTrim(getEnv("ADMIN_EMAILS", ""), ","),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, sep) {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
