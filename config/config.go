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

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL string
	ServerPort  int
	LogLevel    string

	AdminUsername string
	AdminPassword string
	SessionSecret string
	SessionTTL    time.Duration

	CampusLocation *time.Location
	Departments    []string
	AllowedOrigins []string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// StorageEnabled сообщает, настроен ли архив экспортов в R2.
func (c *Config) StorageEnabled() bool {
	return c.R2AccountID != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию через переданный lookup, чтобы её можно было проверять в тестах.
func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		DatabaseURL:       env("DATABASE_URL", ""),
		LogLevel:          env("LOG_LEVEL", "info"),
		AdminUsername:     env("ADMIN_USERNAME", ""),
		AdminPassword:     getenv("ADMIN_PASSWORD"),
		SessionSecret:     getenv("SESSION_SECRET"),
		R2AccountID:       env("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     env("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: env("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      env("R2_BUCKET_NAME", ""),
		R2PublicBaseURL:   env("R2_PUBLIC_BASE_URL", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD environment variables must be set")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET environment variable is not set")
	}

	port, err := strconv.Atoi(env("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	if ttl := env("SESSION_TTL", ""); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL environment variable: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("SESSION_TTL must not be negative, got %s", d)
		}
		cfg.SessionTTL = d
	}

	loc, err := time.LoadLocation(env("CAMPUS_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid CAMPUS_TIMEZONE environment variable: %w", err)
	}
	cfg.CampusLocation = loc

	cfg.Departments = splitList(getenv("DEPARTMENTS"))
	cfg.AllowedOrigins = splitList(env("CORS_ALLOWED_ORIGINS", "*"))

	r2 := []string{cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2BucketName, cfg.R2PublicBaseURL}
	set := 0
	for _, v := range r2 {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(r2) {
		return nil, errors.New("R2 storage configuration is partial: set all R2_* variables or none")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
