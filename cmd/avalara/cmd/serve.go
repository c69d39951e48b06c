package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/avalara-go/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	serverStrict bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for building and submitting tax documents.

The API provides endpoints for:
  - POST /api/v1/documents/preview  - Render a document payload (?mode=draft|quote|commit)
  - POST /api/v1/documents/quote    - Quote a document
  - POST /api/v1/documents/commit   - Commit a document
  - POST /api/v1/documents/void     - Void a committed document
  - GET  /api/v1/address/validate   - Validate an address
  - GET  /api/v1/tax/estimate       - Estimate tax at coordinates
  - GET  /health                    - Health check

Without credentials only preview and health are served.

Examples:
  # Start server on the configured address
  avalara serve

  # Start in debug mode with strict address references
  avalara serve --address :9000 --debug --strict`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default from config)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().BoolVar(&serverStrict, "strict", false, "Reject lines that reference unknown address codes")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout (default from config)")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:           settings.Server.Address,
		ReadTimeout:       settings.Server.ReadTimeout,
		WriteTimeout:      settings.Server.WriteTimeout,
		RequestTimeout:    settings.Service.Timeout,
		StrictAddressRefs: serverStrict,
		Debug:             serverDebug || settings.Server.Debug,
	}
	if serverAddr != "" {
		config.Address = serverAddr
	}
	if readTimeout > 0 {
		config.ReadTimeout = readTimeout
	}
	if writeTimeout > 0 {
		config.WriteTimeout = writeTimeout
	}

	var service server.TaxService
	if c, err := newTaxClient(); err == nil {
		service = c
		log.Info("tax service submission enabled", zap.String("base_url", settings.Service.BaseURL))
	} else {
		log.Warn("tax service submission disabled", zap.Error(err))
	}

	srv := server.NewServer(config, service, log)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down server")
		_ = log.Sync()
		os.Exit(0)
	}()

	return srv.Run()
}
