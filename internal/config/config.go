package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TokenStrategyPaseto = "paseto"
	TokenStrategyJWT    = "jwt"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
}

type ServerConfig struct {
	Port            string
	Env             string // dev or prod
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TrustedOrigins  []string // CORS allowed origins
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	ChannelBinding string // "require" for Neon DB, empty for local
	MaxOpenConns   int
	MaxIdleConns   int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	// TokenStrategy selects the token format: "paseto" (v4.local) or "jwt" (HS256)
	TokenStrategy string
	// PASETO symmetric key (must be 32 bytes for v4.local)
	PasetoKey           []byte
	JWTSecret           []byte
	AccessTokenDuration time.Duration
}

type CatalogConfig struct {
	TopRatedLimit int
	CacheTTL      time.Duration
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("APP_ENV", "dev"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			TrustedOrigins:  getSliceEnv("TRUSTED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: loadDatabaseConfig(),
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			TokenStrategy:       strings.ToLower(getEnv("AUTH_TOKEN_STRATEGY", TokenStrategyPaseto)),
			PasetoKey:           []byte(getEnv("PASETO_KEY", "")),
			JWTSecret:           []byte(getEnv("JWT_SECRET", "")),
			AccessTokenDuration: getDurationEnv("ACCESS_TOKEN_DURATION", 24*time.Hour),
		},
		Catalog: CatalogConfig{
			TopRatedLimit: getIntEnv("CATALOG_TOP_RATED_LIMIT", 10),
			CacheTTL:      getDurationEnv("CATALOG_CACHE_TTL", 5*time.Minute),
		},
	}

	if err := cfg.Auth.Validate(); err != nil {
		return nil, err
	}

	if cfg.Catalog.TopRatedLimit <= 0 {
		return nil, fmt.Errorf("CATALOG_TOP_RATED_LIMIT must be positive, got %d", cfg.Catalog.TopRatedLimit)
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings. Used by tooling that
// never issues tokens and therefore has no signing key configured.
func LoadDatabase() DatabaseConfig {
	_ = godotenv.Load()
	return loadDatabaseConfig()
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnv("DB_PORT", "5432"),
		User:           getEnv("DB_USER", "postgres"),
		Password:       getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "bookstore"),
		SSLMode:        getEnv("DB_SSLMODE", "disable"),
		ChannelBinding: getEnv("DB_CHANNEL_BINDING", ""),
		MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 5),
	}
}

// Validate checks that the signing material matches the selected strategy
func (c *AuthConfig) Validate() error {
	switch c.TokenStrategy {
	case TokenStrategyPaseto:
		if len(c.PasetoKey) != 32 {
			return fmt.Errorf("PASETO_KEY must be exactly 32 bytes, got %d", len(c.PasetoKey))
		}
	case TokenStrategyJWT:
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 bytes, got %d", len(c.JWTSecret))
		}
	default:
		return fmt.Errorf("unsupported AUTH_TOKEN_STRATEGY %q (want %q or %q)", c.TokenStrategy, TokenStrategyPaseto, TokenStrategyJWT)
	}

	if c.AccessTokenDuration <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_DURATION must be positive")
	}

	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)

	// Add channel_binding if configured (required for Neon DB)
	if c.ChannelBinding != "" {
		connStr += fmt.Sprintf(" channel_binding=%s", c.ChannelBinding)
	}

	return connStr
}

// Address returns Redis connection address (host:port)
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDevelopment returns true if the environment is set to dev
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "dev"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// getDurationEnv reads a duration given in whole seconds
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Split by comma and trim whitespace
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
