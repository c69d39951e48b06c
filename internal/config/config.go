// Package config loads client and server settings from the environment and
// an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingCredentials is returned by RequireCredentials
var ErrMissingCredentials = errors.New("account number and license key are required")

// Config holds all application configuration.
type Config struct {
	Service ServiceConfig
	Log     LogConfig
	Server  ServerConfig
}

// ServiceConfig holds tax service connection settings.
type ServiceConfig struct {
	AccountNumber string        `mapstructure:"account_number"`
	LicenseKey    string        `mapstructure:"license_key"`
	BaseURL       string        `mapstructure:"base_url"`
	CompanyCode   string        `mapstructure:"company_code"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Debug        bool          `mapstructure:"debug"`
}

// RequireCredentials fails when no account number or license key is configured
func (s ServiceConfig) RequireCredentials() error {
	if s.AccountNumber == "" || s.LicenseKey == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Load reads configuration from environment variables with the AVALARA_
// prefix. When path is not empty the file is read first and the
// environment overrides it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AVALARA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Service defaults
	v.SetDefault("account_number", "")
	v.SetDefault("license_key", "")
	v.SetDefault("base_url", "https://development.avalara.net/1.0/")
	v.SetDefault("company_code", "SOC")
	v.SetDefault("timeout", "30s")
	v.SetDefault("max_retries", 3)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.debug", false)

	envBindings := map[string]string{
		"account_number":       "AVALARA_ACCOUNT_NUMBER",
		"license_key":          "AVALARA_LICENSE_KEY",
		"base_url":             "AVALARA_BASE_URL",
		"company_code":         "AVALARA_COMPANY_CODE",
		"timeout":              "AVALARA_TIMEOUT",
		"max_retries":          "AVALARA_MAX_RETRIES",
		"log.level":            "AVALARA_LOG_LEVEL",
		"log.format":           "AVALARA_LOG_FORMAT",
		"server.address":       "AVALARA_SERVER_ADDRESS",
		"server.read_timeout":  "AVALARA_SERVER_READ_TIMEOUT",
		"server.write_timeout": "AVALARA_SERVER_WRITE_TIMEOUT",
		"server.debug":         "AVALARA_SERVER_DEBUG",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Service: ServiceConfig{
			AccountNumber: v.GetString("account_number"),
			LicenseKey:    v.GetString("license_key"),
			BaseURL:       v.GetString("base_url"),
			CompanyCode:   v.GetString("company_code"),
			Timeout:       v.GetDuration("timeout"),
			MaxRetries:    v.GetInt("max_retries"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Server: ServerConfig{
			Address:      v.GetString("server.address"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			Debug:        v.GetBool("server.debug"),
		},
	}

	if cfg.Service.BaseURL == "" {
		return nil, fmt.Errorf("base_url must not be empty")
	}
	if cfg.Service.MaxRetries < 0 {
		return nil, fmt.Errorf("max_retries must not be negative, got %d", cfg.Service.MaxRetries)
	}

	return cfg, nil
}
