package server

import (
	"github.com/rezonia/avalara-go/internal/transport"
	"github.com/rezonia/avalara-go/internal/wire"
)

// PreviewResponse is the response for the preview endpoint
type PreviewResponse struct {
	DocCode     string      `json:"doc_code"`
	State       string      `json:"state"`
	TotalAmount string      `json:"total_amount"`
	Payload     wire.Object `json:"payload"`
}

// SubmitResponse is the response for endpoints that reach the tax service
type SubmitResponse struct {
	DocCode  string             `json:"doc_code,omitempty"`
	State    string             `json:"state,omitempty"`
	Response transport.Response `json:"response"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error    string   `json:"error"`
	Field    string   `json:"field,omitempty"`
	Messages []string `json:"messages,omitempty"`
}
