package avalara

import (
	"time"

	"go.uber.org/zap"

	"github.com/rezonia/avalara-go/internal/client"
	"github.com/rezonia/avalara-go/internal/config"
	"github.com/rezonia/avalara-go/internal/transport"
)

// Re-export client types
type (
	Client       = client.Client
	AddressQuery = client.AddressQuery
	Response     = transport.Response
	Submitter    = transport.Submitter
	ServiceError = client.ServiceError
	HTTPError    = transport.HTTPError
)

// Options configures NewClient
type Options struct {
	AccountNumber string
	LicenseKey    string
	BaseURL       string
	Timeout       time.Duration
	MaxRetries    int
	Logger        *zap.Logger
}

// DefaultOptions returns options for the development service without credentials
func DefaultOptions() Options {
	return Options{
		BaseURL:    transport.DefaultBaseURL,
		Timeout:    transport.DefaultTimeout,
		MaxRetries: transport.DefaultRetryConfig().MaxRetries,
	}
}

// OptionsFromEnv reads AVALARA_ACCOUNT_NUMBER, AVALARA_LICENSE_KEY,
// AVALARA_BASE_URL and the other AVALARA_ settings
func OptionsFromEnv() (Options, error) {
	cfg, err := config.Load("")
	if err != nil {
		return Options{}, err
	}
	return Options{
		AccountNumber: cfg.Service.AccountNumber,
		LicenseKey:    cfg.Service.LicenseKey,
		BaseURL:       cfg.Service.BaseURL,
		Timeout:       cfg.Service.Timeout,
		MaxRetries:    cfg.Service.MaxRetries,
	}, nil
}

// NewClient creates an HTTP client for the tax service.
// Credentials are required.
func NewClient(opts Options) (*Client, error) {
	svc := config.ServiceConfig{AccountNumber: opts.AccountNumber, LicenseKey: opts.LicenseKey}
	if err := svc.RequireCredentials(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	retry := transport.DefaultRetryConfig()
	retry.MaxRetries = opts.MaxRetries

	transportOpts := []transport.Option{
		transport.WithCredentials(opts.AccountNumber, opts.LicenseKey),
		transport.WithRetry(retry),
		transport.WithLogger(logger),
	}
	if opts.BaseURL != "" {
		transportOpts = append(transportOpts, transport.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		transportOpts = append(transportOpts, transport.WithTimeout(opts.Timeout))
	}

	return client.New(transport.New(transportOpts...), client.WithLogger(logger)), nil
}

// NewClientWithSubmitter creates a client over a custom submitter
func NewClientWithSubmitter(s Submitter) *Client {
	return client.New(s)
}
