package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevModeDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DEV_JWT_SECRET", "")
	t.Setenv("DEV_JWT_REFRESH_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, defaultJWTSecret, cfg.JWT.Secret)
	assert.Equal(t, defaultJWTRefreshSecret, cfg.JWT.RefreshSecret)
}

func TestLoadProdRefusesDefaultSecrets(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_JWT_SECRET", "")
	t.Setenv("PROD_JWT_REFRESH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROD_JWT_SECRET")
}

func TestLoadProdRefusesDefaultRefreshSecret(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_JWT_SECRET", "a-real-signing-key")
	t.Setenv("PROD_JWT_REFRESH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROD_JWT_REFRESH_SECRET")
}

func TestLoadProdWithSecrets(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_JWT_SECRET", "a-real-signing-key")
	t.Setenv("PROD_JWT_REFRESH_SECRET", "another-real-signing-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "a-real-signing-key", cfg.JWT.Secret)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("APP_MODE", "staging")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_MODE")
}
