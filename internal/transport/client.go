// Package transport executes requests against the tax service.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/rezonia/avalara-go/internal/codec"
	"github.com/rezonia/avalara-go/internal/wire"
)

const (
	DefaultBaseURL = "https://development.avalara.net/1.0/"
	DefaultTimeout = 30 * time.Second
	userAgent      = "avalara-go"
)

// Response is a decoded service response. Its schema is not inspected here.
type Response map[string]interface{}

// ResultCode returns the service ResultCode field, if any
func (r Response) ResultCode() string {
	s, _ := r["ResultCode"].(string)
	return s
}

// Submitter sends a finished payload to a named endpoint. For GET requests
// the payload is encoded as query parameters.
type Submitter interface {
	Submit(ctx context.Context, method, endpoint string, payload interface{}) (Response, error)
}

// RetryConfig configures exponential backoff between attempts
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig returns the retry settings used when none are given
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  30 * time.Second,
	}
}

// Client is an HTTP Submitter
type Client struct {
	httpClient *http.Client
	baseURL    string
	retry      RetryConfig
	logger     *zap.Logger
	metrics    MetricsCollector
}

// Option configures the client
type Option func(*clientConfig)

type clientConfig struct {
	baseURL    string
	timeout    time.Duration
	account    string
	licenseKey string
	retry      RetryConfig
	logger     *zap.Logger
	metrics    MetricsCollector
	base       http.RoundTripper
}

// WithBaseURL sets the service base URL
func WithBaseURL(u string) Option {
	return func(cfg *clientConfig) {
		cfg.baseURL = u
	}
}

// WithTimeout sets the per-attempt HTTP timeout
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithCredentials sets the account number and license key sent as basic auth
func WithCredentials(account, licenseKey string) Option {
	return func(cfg *clientConfig) {
		cfg.account = account
		cfg.licenseKey = licenseKey
	}
}

// WithRetry sets the retry policy. MaxRetries of 0 disables retries.
func WithRetry(retry RetryConfig) Option {
	return func(cfg *clientConfig) {
		cfg.retry = retry
	}
}

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *clientConfig) {
		cfg.logger = logger
	}
}

// WithMetricsCollector sets the collector notified after every Submit
func WithMetricsCollector(m MetricsCollector) Option {
	return func(cfg *clientConfig) {
		cfg.metrics = m
	}
}

// WithRoundTripper sets the underlying transport
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(cfg *clientConfig) {
		cfg.base = rt
	}
}

// credentialsTransport wraps an http.RoundTripper to add auth and content headers
type credentialsTransport struct {
	base       http.RoundTripper
	account    string
	licenseKey string
}

func (t *credentialsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.account != "" || t.licenseKey != "" {
		req.SetBasicAuth(t.account, t.licenseKey)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.base != nil {
		return t.base.RoundTrip(req)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// New creates a transport client
func New(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		retry:   DefaultRetryConfig(),
		logger:  zap.NewNop(),
		metrics: NoopMetricsCollector{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.timeout,
			Transport: &credentialsTransport{
				base:       cfg.base,
				account:    cfg.account,
				licenseKey: cfg.licenseKey,
			},
		},
		baseURL: cfg.baseURL,
		retry:   cfg.retry,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit sends payload to endpoint and decodes the JSON response
func (c *Client) Submit(ctx context.Context, method, endpoint string, payload interface{}) (Response, error) {
	start := time.Now()

	fullURL, err := c.buildURL(endpoint, method, payload)
	if err != nil {
		return nil, err
	}

	var body []byte
	if method != http.MethodGet && payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var respBody []byte
	attempt, status := 0, 0
	operation := func() error {
		attempt++
		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		c.logger.Debug("tax service request",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt))

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()
		status = resp.StatusCode

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 300 {
			httpErr := &HTTPError{
				Method:     method,
				URL:        fullURL,
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       string(data),
			}
			if httpErr.Retryable() {
				return httpErr
			}
			return backoff.Permanent(httpErr)
		}

		respBody = data
		return nil
	}

	if c.retry.MaxRetries > 0 {
		expBackoff := backoff.NewExponentialBackOff()
		expBackoff.InitialInterval = c.retry.InitialInterval
		expBackoff.MaxInterval = c.retry.MaxInterval
		expBackoff.MaxElapsedTime = c.retry.MaxElapsedTime
		err = backoff.Retry(operation, backoff.WithContext(
			backoff.WithMaxRetries(expBackoff, uint64(c.retry.MaxRetries)), ctx))
	} else {
		err = operation()
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Err
		}
	}

	duration := time.Since(start)
	c.metrics.RecordRequest(method, endpoint, status, attempt, duration)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			c.logger.Warn("tax service error response",
				zap.String("method", method),
				zap.String("endpoint", endpoint),
				zap.Int("status", httpErr.StatusCode),
				zap.Int("attempts", attempt),
				zap.Duration("duration", duration))
			return nil, httpErr
		}
		c.logger.Error("tax service request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("attempts", attempt),
			zap.Error(err),
			zap.Duration("duration", duration))
		return nil, fmt.Errorf("tax service request failed: %w", err)
	}

	c.logger.Info("tax service request successful",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("attempts", attempt),
		zap.Duration("duration", duration))

	out := Response{}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &ResponseError{URL: fullURL, Cause: err}
	}
	return out, nil
}

func (c *Client) buildURL(endpoint, method string, payload interface{}) (string, error) {
	base := strings.TrimSuffix(c.baseURL, "/")
	u, err := url.Parse(base + "/" + strings.TrimPrefix(endpoint, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if method == http.MethodGet && payload != nil {
		q := u.Query()
		for k, v := range queryValues(payload) {
			for _, s := range v {
				q.Add(k, s)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func queryValues(payload interface{}) url.Values {
	out := url.Values{}
	switch p := payload.(type) {
	case url.Values:
		return p
	case map[string]string:
		for k, v := range p {
			if v != "" {
				out.Set(k, v)
			}
		}
	case wire.Object:
		for k, v := range p {
			if s := codec.String(v); s != "" {
				out.Set(k, s)
			}
		}
	case map[string]interface{}:
		for k, v := range p {
			if s := codec.String(v); s != "" {
				out.Set(k, s)
			}
		}
	}
	return out
}
