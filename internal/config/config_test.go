package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/avalara-go/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://development.avalara.net/1.0/", cfg.Service.BaseURL)
	assert.Equal(t, "SOC", cfg.Service.CompanyCode)
	assert.Equal(t, 30*time.Second, cfg.Service.Timeout)
	assert.Equal(t, 3, cfg.Service.MaxRetries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("AVALARA_ACCOUNT_NUMBER", "1100012345")
	t.Setenv("AVALARA_LICENSE_KEY", "ABCDEF")
	t.Setenv("AVALARA_BASE_URL", "https://avatax.avalara.net/1.0/")
	t.Setenv("AVALARA_MAX_RETRIES", "0")
	t.Setenv("AVALARA_LOG_LEVEL", "debug")
	t.Setenv("AVALARA_SERVER_ADDRESS", ":9090")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "1100012345", cfg.Service.AccountNumber)
	assert.Equal(t, "ABCDEF", cfg.Service.LicenseKey)
	assert.Equal(t, "https://avatax.avalara.net/1.0/", cfg.Service.BaseURL)
	assert.Equal(t, 0, cfg.Service.MaxRetries)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.NoError(t, cfg.Service.RequireCredentials())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avalara.yaml")
	content := "account_number: \"42\"\nlicense_key: secret\ntimeout: 5s\nlog:\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("AVALARA_LICENSE_KEY", "from-env")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "42", cfg.Service.AccountNumber)
	assert.Equal(t, "from-env", cfg.Service.LicenseKey)
	assert.Equal(t, 5*time.Second, cfg.Service.Timeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_NegativeRetries(t *testing.T) {
	t.Setenv("AVALARA_MAX_RETRIES", "-1")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestServiceConfig_RequireCredentials(t *testing.T) {
	err := config.ServiceConfig{AccountNumber: "1"}.RequireCredentials()
	assert.ErrorIs(t, err, config.ErrMissingCredentials)
}
