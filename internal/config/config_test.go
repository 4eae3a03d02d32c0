package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPasetoKey = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PASETO_KEY", testPasetoKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, TokenStrategyPaseto, cfg.Auth.TokenStrategy)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 10, cfg.Catalog.TopRatedLimit)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PASETO_KEY", testPasetoKey)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("ACCESS_TOKEN_DURATION", "3600")
	t.Setenv("CATALOG_TOP_RATED_LIMIT", "3")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("TRUSTED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 3, cfg.Catalog.TopRatedLimit)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.TrustedOrigins)
}

func TestLoad_MissingPasetoKey(t *testing.T) {
	t.Setenv("PASETO_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PASETO_KEY")
}

func TestLoad_JWTStrategy(t *testing.T) {
	t.Setenv("AUTH_TOKEN_STRATEGY", "JWT")
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, TokenStrategyJWT, cfg.Auth.TokenStrategy)
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("AUTH_TOKEN_STRATEGY", "jwt")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_UnknownStrategy(t *testing.T) {
	t.Setenv("AUTH_TOKEN_STRATEGY", "cookie")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidTopRatedLimit(t *testing.T) {
	t.Setenv("PASETO_KEY", testPasetoKey)
	t.Setenv("CATALOG_TOP_RATED_LIMIT", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "books", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=books sslmode=disable", cfg.ConnectionString())

	cfg.ChannelBinding = "require"
	assert.True(t, strings.HasSuffix(cfg.ConnectionString(), " channel_binding=require"))
}
