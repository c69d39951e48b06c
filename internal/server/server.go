package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rezonia/avalara-go/internal/client"
	"github.com/rezonia/avalara-go/internal/codec"
	money "github.com/rezonia/avalara-go/internal/decimal"
	"github.com/rezonia/avalara-go/internal/model"
	"github.com/rezonia/avalara-go/internal/request"
	"github.com/rezonia/avalara-go/internal/transport"
	"github.com/rezonia/avalara-go/internal/wire"
)

// Preview modes
const (
	ModeDraft  = "draft"
	ModeQuote  = "quote"
	ModeCommit = "commit"
)

const defaultRequestTimeout = 30 * time.Second

// TaxService is the subset of the tax client used by the server
type TaxService interface {
	GetTax(ctx context.Context, doc *model.TaxDocument) (transport.Response, error)
	CommitTax(ctx context.Context, doc *model.TaxDocument) (transport.Response, error)
	VoidDocument(ctx context.Context, f model.CancelFields) (transport.Response, error)
	ValidateAddress(ctx context.Context, q client.AddressQuery) (transport.Response, error)
	EstimateTax(ctx context.Context, latitude, longitude, saleAmount decimal.Decimal) (transport.Response, error)
}

// Config holds server configuration
type Config struct {
	Address           string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	RequestTimeout    time.Duration
	StrictAddressRefs bool
	Debug             bool
}

// Server represents the HTTP API server
type Server struct {
	config  *Config
	router  *gin.Engine
	service TaxService
	logger  *zap.Logger
}

// NewServer creates a new API server. A nil service leaves only the
// preview and health endpoints usable.
func NewServer(config *Config, service TaxService, logger *zap.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = defaultRequestTimeout
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	s := &Server{
		config:  config,
		router:  router,
		service: service,
		logger:  logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Document endpoints
		v1.POST("/documents/preview", s.handlePreview)
		v1.POST("/documents/quote", s.handleQuote)
		v1.POST("/documents/commit", s.handleCommit)
		v1.POST("/documents/void", s.handleVoid)

		// Lookups
		v1.GET("/address/validate", s.handleValidateAddress)
		v1.GET("/tax/estimate", s.handleEstimate)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.logger.Info("starting API server", zap.String("address", s.config.Address))
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"time":      time.Now().UTC().Format(time.RFC3339),
		"submitter": s.service != nil,
	})
}

func (s *Server) handlePreview(c *gin.Context) {
	mode := c.DefaultQuery("mode", ModeQuote)
	if mode != ModeDraft && mode != ModeQuote && mode != ModeCommit {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "mode must be draft, quote or commit"})
		return
	}

	doc, ok := s.bindDocument(c)
	if !ok {
		return
	}

	var (
		payload wire.Object
		err     error
	)
	switch mode {
	case ModeQuote:
		payload, err = doc.FinalizeForQuote()
	case ModeCommit:
		payload, err = doc.FinalizeForCommit()
	default:
		payload = doc.Payload()
	}
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{
		DocCode:     doc.DocCode,
		State:       string(doc.State()),
		TotalAmount: doc.TotalAmount().StringFixed(money.AmountPlaces),
		Payload:     payload,
	})
}

func (s *Server) handleQuote(c *gin.Context) {
	s.submitDocument(c, func(ctx context.Context, doc *model.TaxDocument) (transport.Response, error) {
		return s.service.GetTax(ctx, doc)
	})
}

func (s *Server) handleCommit(c *gin.Context) {
	s.submitDocument(c, func(ctx context.Context, doc *model.TaxDocument) (transport.Response, error) {
		return s.service.CommitTax(ctx, doc)
	})
}

func (s *Server) submitDocument(c *gin.Context, submit func(context.Context, *model.TaxDocument) (transport.Response, error)) {
	if !s.requireService(c) {
		return
	}

	doc, ok := s.bindDocument(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
	defer cancel()

	resp, err := submit(ctx, doc)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{
		DocCode:  doc.DocCode,
		State:    string(doc.State()),
		Response: resp,
	})
}

func (s *Server) handleVoid(c *gin.Context) {
	if !s.requireService(c) {
		return
	}

	cancelReq, err := request.DecodeCancel(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
	defer cancel()

	resp, err := s.service.VoidDocument(ctx, cancelReq.Fields())
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{DocCode: cancelReq.DocCode, Response: resp})
}

func (s *Server) handleValidateAddress(c *gin.Context) {
	if !s.requireService(c) {
		return
	}

	q := client.AddressQuery{
		Line1:      c.Query("line1"),
		Line2:      c.Query("line2"),
		Line3:      c.Query("line3"),
		City:       c.Query("city"),
		Region:     c.Query("region"),
		Country:    c.DefaultQuery("country", model.DefaultCountry),
		PostalCode: c.Query("postal_code"),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
	defer cancel()

	resp, err := s.service.ValidateAddress(ctx, q)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{Response: resp})
}

func (s *Server) handleEstimate(c *gin.Context) {
	if !s.requireService(c) {
		return
	}

	values := make(map[string]decimal.Decimal, 3)
	for _, name := range []string{"latitude", "longitude", "sale_amount"} {
		raw := c.Query(name)
		d, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid decimal", Field: name})
			return
		}
		values[name] = d
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
	defer cancel()

	resp, err := s.service.EstimateTax(ctx, values["latitude"], values["longitude"], values["sale_amount"])
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{Response: resp})
}

// Helper functions

func (s *Server) requireService(c *gin.Context) bool {
	if s.service == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "tax service credentials are not configured"})
		return false
	}
	return true
}

func (s *Server) bindDocument(c *gin.Context) (*model.TaxDocument, bool) {
	in, err := request.Decode(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return nil, false
	}

	if generate, _ := strconv.ParseBool(c.Query("generate_code")); generate {
		in.EnsureDocCode()
	}

	var opts []model.Option
	if s.config.StrictAddressRefs {
		opts = append(opts, model.WithStrictAddressRefs())
	}

	doc, err := in.Build(opts...)
	if err != nil {
		s.writeError(c, err)
		return nil, false
	}
	return doc, true
}

func (s *Server) writeError(c *gin.Context, err error) {
	var (
		missing  *model.MissingRequiredFieldError
		unknown  *model.UnknownAddressError
		invalid  *model.ValidationError
		badType  *codec.InvalidTypeError
		svcErr   *client.ServiceError
		httpErr  *transport.HTTPError
		response *transport.ResponseError
	)

	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Field: missing.Field})
	case errors.As(err, &unknown):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Field: unknown.Field})
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Field: invalid.Field})
	case errors.As(err, &badType):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.As(err, &svcErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "tax service rejected the request", Messages: svcErr.Messages})
	case errors.As(err, &httpErr), errors.As(err, &response):
		s.logger.Warn("tax service call failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "tax service timed out"})
	default:
		s.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
