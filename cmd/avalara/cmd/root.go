package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/avalara-go/internal/client"
	"github.com/rezonia/avalara-go/internal/config"
	"github.com/rezonia/avalara-go/internal/logger"
	"github.com/rezonia/avalara-go/internal/request"
	"github.com/rezonia/avalara-go/internal/transport"
)

var (
	version = "1.0.0"

	// Global flags
	verbose       bool
	cfgFile       string
	outputFile    string
	accountNumber string
	licenseKey    string
	baseURL       string
	logLevel      string
	logFormat     string

	settings *config.Config
	log      *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "avalara",
	Short: "Build and submit sales tax documents",
	Long: `avalara builds tax requests from JSON documents and submits them to the
Avalara tax service.

Credentials are read from AVALARA_ACCOUNT_NUMBER and AVALARA_LICENSE_KEY,
the service URL from AVALARA_BASE_URL, or from a config file.

Examples:
  # Print the quote payload for a document
  avalara quote order.json

  # Quote against the service
  avalara quote order.json --submit

  # Commit and then void an invoice
  avalara commit order.json --submit
  avalara void --doc-code INV-1001

  # Look up an address
  avalara validate-address --line1 "435 Ericksen Ave" --postal-code 98110`,
	Version:           version,
	PersistentPreRunE: initConfig,
	SilenceUsage:      true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&accountNumber, "account-number", "", "Account number (env: AVALARA_ACCOUNT_NUMBER)")
	rootCmd.PersistentFlags().StringVar(&licenseKey, "license-key", "", "License key (env: AVALARA_LICENSE_KEY)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Service base URL (env: AVALARA_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (env: AVALARA_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json (env: AVALARA_LOG_FORMAT)")
}

// initConfig loads settings and lets flags override them
func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if accountNumber != "" {
		cfg.Service.AccountNumber = accountNumber
	}
	if licenseKey != "" {
		cfg.Service.LicenseKey = licenseKey
	}
	if baseURL != "" {
		cfg.Service.BaseURL = baseURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	l, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}

	settings = cfg
	log = l
	return nil
}

// newTaxClient builds a client from the loaded settings
func newTaxClient() (*client.Client, error) {
	if err := settings.Service.RequireCredentials(); err != nil {
		return nil, err
	}

	t := transport.New(
		transport.WithBaseURL(settings.Service.BaseURL),
		transport.WithCredentials(settings.Service.AccountNumber, settings.Service.LicenseKey),
		transport.WithTimeout(settings.Service.Timeout),
		transport.WithRetry(retryConfig(settings.Service.MaxRetries)),
		transport.WithLogger(log),
	)
	return client.New(t, client.WithLogger(log)), nil
}

func retryConfig(maxRetries int) transport.RetryConfig {
	retry := transport.DefaultRetryConfig()
	retry.MaxRetries = maxRetries
	return retry
}

// readDocument decodes a document from path, or stdin when path is "-"
func readDocument(path string) (*request.Document, error) {
	r, closeFn, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	doc, err := request.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.CompanyCode == "" {
		doc.CompanyCode = settings.Service.CompanyCode
	}
	return doc, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

// writeOutput prints v as indented JSON to stdout or --output
func writeOutput(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		log.Debug("wrote output", zap.String("file", outputFile))
		return nil
	}

	_, err = os.Stdout.Write(data)
	return err
}
