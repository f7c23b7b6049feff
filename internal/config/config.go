package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported password schemes.
const (
	SchemeSaltedSHA256 = "sha256"
	SchemeBcrypt       = "bcrypt"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// JWTSecret and PasswordSalt have no fallback defaults; deployments must
	// supply them.
	JWTSecret      string
	JWTAlgorithm   string
	JWTTTL         time.Duration
	PasswordSalt   string
	PasswordScheme string

	// Optional backends; empty selects the in-memory implementations.
	DatabaseURL string
	RedisAddr   string

	CORSOrigins []string
}

// Load reads configuration from the environment and performs validation.
func Load() (Config, error) {
	cfg := Config{
		Port:           fallback(os.Getenv("PORT"), "8000"),
		Environment:    fallback(os.Getenv("ENVIRONMENT"), "production"),
		LogLevel:       fallback(os.Getenv("LOG_LEVEL"), "info"),
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAlgorithm:   fallback(os.Getenv("JWT_ALGORITHM"), "HS256"),
		PasswordSalt:   strings.TrimSpace(os.Getenv("PASSWORD_SALT")),
		PasswordScheme: fallback(os.Getenv("PASSWORD_SCHEME"), SchemeSaltedSHA256),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisAddr:      strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		CORSOrigins:    parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "1440")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		return Config{}, fmt.Errorf("invalid JWT_TTL_MINUTES value %q", minutes)
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.PasswordSalt == "" {
		return Config{}, errors.New("PASSWORD_SALT is required")
	}
	// Only symmetric HS256 is implemented; fail closed rather than passing an
	// arbitrary identifier to the signing library.
	if cfg.JWTAlgorithm != "HS256" {
		return Config{}, fmt.Errorf("unsupported JWT_ALGORITHM %q (only HS256)", cfg.JWTAlgorithm)
	}
	if cfg.PasswordScheme != SchemeSaltedSHA256 && cfg.PasswordScheme != SchemeBcrypt {
		return Config{}, fmt.Errorf("unsupported PASSWORD_SCHEME %q", cfg.PasswordScheme)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
