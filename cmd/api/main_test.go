package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/bookstore-api/internal/auth"
	"github.com/redmonkez12/bookstore-api/internal/config"
)

func TestNewTokenService(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")

	svc, err := newTokenService(config.AuthConfig{TokenStrategy: config.TokenStrategyPaseto, PasetoKey: key})
	require.NoError(t, err)
	assert.IsType(t, &auth.PasetoService{}, svc)

	svc, err = newTokenService(config.AuthConfig{TokenStrategy: config.TokenStrategyJWT, JWTSecret: key})
	require.NoError(t, err)
	assert.IsType(t, &auth.JWTService{}, svc)
}
