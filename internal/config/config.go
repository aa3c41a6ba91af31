// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	JWT         JWTConfig
	Catalog     CatalogConfig
	Store       StoreConfig
	Users       UsersConfig
	RateLimit   RateLimitConfig
	I18n        I18nConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in hours
}

type CatalogConfig struct {
	// Path to a product dataset; empty uses the embedded seed catalog.
	Path string
}

type StoreConfig struct {
	// DataDir holds the per-user cart/favorites documents; empty keeps them
	// in memory only.
	DataDir string
}

type UsersConfig struct {
	// FilePath is the flat-file account document.
	FilePath string
}

type RateLimitConfig struct {
	// Fixed window applied to the auth endpoints.
	AuthWindowMinutes int
	AuthMaxRequests   int
	// Token bucket applied to the whole API.
	GeneralPerSecond int
}

type I18nConfig struct {
	DefaultLocale string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 24), // 24 hours
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Store: StoreConfig{
			DataDir: getEnv("STORE_DATA_DIR", "./data/store"),
		},
		Users: UsersConfig{
			FilePath: getEnv("USERS_FILE", "./data/users.json"),
		},
		RateLimit: RateLimitConfig{
			AuthWindowMinutes: getEnvAsInt("AUTH_RATE_WINDOW_MINUTES", 15),
			AuthMaxRequests:   getEnvAsInt("AUTH_RATE_MAX_REQUESTS", 5),
			GeneralPerSecond:  getEnvAsInt("GENERAL_RATE_PER_SECOND", 10),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "bs"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.RateLimit.AuthWindowMinutes < 1 || c.RateLimit.AuthMaxRequests < 1 {
		return fmt.Errorf("auth rate limit window and request count must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
