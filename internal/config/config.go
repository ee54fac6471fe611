package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env           string
	HTTPAddr      string
	JWTKey        string
	AdminUser     string
	AdminPassword string
	OrderTTL      time.Duration
	Database      DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func Load() *Config {
	return &Config{
		Env:           getEnv("ENV", "development"),
		HTTPAddr:      normalizeAddr(getEnv("HTTP_ADDR", ":8080")),
		JWTKey:        getEnv("JWT_KEY", "secret"),
		AdminUser:     getEnv("ADMIN_USER", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		OrderTTL:      time.Duration(getEnvInt("ORDER_TTL_MINUTES", 30)) * time.Minute,
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "postgres"),
			Password: getEnv("DATABASE_PASSWORD", "postgres"),
			Name:     getEnv("DATABASE_NAME", "djstore"),
			SSLMode:  getEnv("DATABASE_SSL_MODE", "disable"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
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

func normalizeAddr(addr string) string {
	if addr == "" {
		return addr
	}

	if addr[0] == ':' || addr[0] == '[' {
		return addr
	}

	for _, r := range addr {
		if r < '0' || r > '9' {
			return addr
		}
	}

	return ":" + addr
}
