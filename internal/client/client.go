// Package client provides one method per tax service endpoint on top of a
// transport.Submitter.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rezonia/avalara-go/internal/codec"
	money "github.com/rezonia/avalara-go/internal/decimal"
	"github.com/rezonia/avalara-go/internal/model"
	"github.com/rezonia/avalara-go/internal/transport"
)

// Endpoints relative to the service base URL
const (
	EndpointGetTax          = "tax/get"
	EndpointCancelTax       = "tax/cancel"
	EndpointValidateAddress = "address/validate"
	endpointEstimateTax     = "%s,%s/tax/estimate"
)

const resultCodeError = "Error"

// AddressQuery is the input of an address validation
type AddressQuery struct {
	Line1      string
	Line2      string
	Line3      string
	City       string
	Region     string
	Country    string
	PostalCode string
}

// Client submits tax documents and lookups
type Client struct {
	submitter transport.Submitter
	logger    *zap.Logger
}

// Option configures the client
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client over the given submitter
func New(submitter transport.Submitter, opts ...Option) *Client {
	c := &Client{
		submitter: submitter,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetTax quotes the document. Nothing is recorded by the service.
func (c *Client) GetTax(ctx context.Context, doc *model.TaxDocument) (transport.Response, error) {
	payload, err := doc.FinalizeForQuote()
	if err != nil {
		return nil, err
	}
	c.logger.Debug("quoting document", zap.String("doc_code", doc.DocCode), zap.Int("lines", len(doc.Lines())))
	return c.submit(ctx, http.MethodPost, EndpointGetTax, payload)
}

// CommitTax records the document as a committed sales invoice
func (c *Client) CommitTax(ctx context.Context, doc *model.TaxDocument) (transport.Response, error) {
	payload, err := doc.FinalizeForCommit()
	if err != nil {
		return nil, err
	}
	c.logger.Debug("committing document", zap.String("doc_code", doc.DocCode), zap.Int("lines", len(doc.Lines())))
	return c.submit(ctx, http.MethodPost, EndpointGetTax, payload)
}

// VoidDocument cancels a previously committed document
func (c *Client) VoidDocument(ctx context.Context, f model.CancelFields) (transport.Response, error) {
	payload, err := model.Void(f)
	if err != nil {
		return nil, err
	}
	return c.submit(ctx, http.MethodPost, EndpointCancelTax, payload)
}

// ValidateAddress asks the service to normalize an address.
// Line1 and Country are required.
func (c *Client) ValidateAddress(ctx context.Context, q AddressQuery) (transport.Response, error) {
	if strings.TrimSpace(q.Line1) == "" {
		return nil, model.NewMissingRequiredFieldError("AddressQuery", "Line1")
	}
	if strings.TrimSpace(q.Country) == "" {
		return nil, model.NewMissingRequiredFieldError("AddressQuery", "Country")
	}

	query := map[string]string{
		"Line1":      strings.TrimSpace(q.Line1),
		"Line2":      strings.TrimSpace(q.Line2),
		"Line3":      strings.TrimSpace(q.Line3),
		"Country":    strings.TrimSpace(q.Country),
		"City":       strings.TrimSpace(q.City),
		"Region":     strings.TrimSpace(q.Region),
		"PostalCode": strings.TrimSpace(q.PostalCode),
	}
	return c.submit(ctx, http.MethodGet, EndpointValidateAddress, query)
}

// EstimateTax returns a rate estimate for a sale at the given coordinates
func (c *Client) EstimateTax(ctx context.Context, latitude, longitude, saleAmount decimal.Decimal) (transport.Response, error) {
	endpoint := EstimateEndpoint(latitude, longitude)
	query := map[string]string{
		"saleamount": codec.Decimal(money.Present(saleAmount), money.AmountPlaces),
	}
	return c.submit(ctx, http.MethodGet, endpoint, query)
}

// EstimateEndpoint renders the estimate path, longitude first
func EstimateEndpoint(latitude, longitude decimal.Decimal) string {
	return fmt.Sprintf(endpointEstimateTax,
		codec.Decimal(money.Present(longitude), money.GeneralPlaces),
		codec.Decimal(money.Present(latitude), money.GeneralPlaces))
}

func (c *Client) submit(ctx context.Context, method, endpoint string, payload interface{}) (transport.Response, error) {
	resp, err := c.submitter.Submit(ctx, method, endpoint, payload)
	if err != nil {
		return nil, err
	}
	if resp.ResultCode() == resultCodeError {
		svcErr := NewServiceError(endpoint, resp)
		c.logger.Warn("tax service rejected request",
			zap.String("endpoint", endpoint),
			zap.Strings("messages", svcErr.Messages))
		return nil, svcErr
	}
	return resp, nil
}
