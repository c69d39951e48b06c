// Package avalara provides a public API for building and submitting sales
// tax requests to the Avalara tax service.
//
// Example usage:
//
//	doc, err := avalara.NewTaxDocument(avalara.DocumentFields{DocCode: "INV-1001"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	origin, _ := doc.AddAddress(avalara.AddressFields{Line1: "...", City: "...", Region: "WA", PostalCode: "98110"})
//	doc.AddLine(avalara.LineFields{OriginCode: origin, DestinationCode: origin, ItemCode: "SKU-1", Amount: ...}, nil)
//
//	c, err := avalara.NewClient(avalara.DefaultOptions())
//	resp, err := c.GetTax(ctx, doc)
package avalara

import (
	"github.com/rezonia/avalara-go/internal/codec"
	"github.com/rezonia/avalara-go/internal/model"
	"github.com/rezonia/avalara-go/internal/wire"
)

// Re-export core types for public API
type (
	TaxDocument    = model.TaxDocument
	DocumentFields = model.DocumentFields
	Address        = model.Address
	AddressFields  = model.AddressFields
	OrderLine      = model.OrderLine
	LineFields     = model.LineFields
	TaxOverride    = model.TaxOverride
	OverrideFields = model.OverrideFields
	CancelFields   = model.CancelFields
	Extra          = model.Extra
	Option         = model.Option
	Object         = wire.Object

	DocType      = model.DocType
	DetailLevel  = model.DetailLevel
	OverrideType = model.OverrideType
	CancelCode   = model.CancelCode
	State        = model.State
)

// Re-export well-known codes
const (
	DefaultTaxCode    = model.DefaultTaxCode
	NonTaxableTaxCode = model.NonTaxableTaxCode
	ShippingItemCode  = model.ShippingItemCode
	ShippingTaxCode   = model.ShippingTaxCode
	HandlingItemCode  = model.HandlingItemCode
	HandlingTaxCode   = model.HandlingTaxCode
)

// Re-export document types
const (
	DocTypeSalesOrder      = model.DocTypeSalesOrder
	DocTypeSalesInvoice    = model.DocTypeSalesInvoice
	DocTypeReturnOrder     = model.DocTypeReturnOrder
	DocTypeReturnInvoice   = model.DocTypeReturnInvoice
	DocTypePurchaseOrder   = model.DocTypePurchaseOrder
	DocTypePurchaseInvoice = model.DocTypePurchaseInvoice
)

// Re-export override types
const (
	OverrideTypeNone      = model.OverrideTypeNone
	OverrideTypeTaxAmount = model.OverrideTypeTaxAmount
	OverrideTypeExemption = model.OverrideTypeExemption
	OverrideTypeTaxDate   = model.OverrideTypeTaxDate
)

// Re-export cancel codes
const (
	CancelCodeUnspecified         = model.CancelCodeUnspecified
	CancelCodePostFailed          = model.CancelCodePostFailed
	CancelCodeDocDeleted          = model.CancelCodeDocDeleted
	CancelCodeDocVoided           = model.CancelCodeDocVoided
	CancelCodeAdjustmentCancelled = model.CancelCodeAdjustmentCancelled
)

// Re-export document states
const (
	StateDraft     = model.StateDraft
	StateQuoted    = model.StateQuoted
	StateCommitted = model.StateCommitted
)

// Re-export error types
type (
	MissingRequiredFieldError = model.MissingRequiredFieldError
	UnknownAddressError       = model.UnknownAddressError
	ValidationError           = model.ValidationError
	InvalidTypeError          = codec.InvalidTypeError
)

var (
	// NewTaxDocument builds and validates a tax document header
	NewTaxDocument = model.NewTaxDocument
	// WithClock sets the clock used for date defaults
	WithClock = model.WithClock
	// WithStrictAddressRefs rejects lines that reference unknown address codes
	WithStrictAddressRefs = model.WithStrictAddressRefs
	// Void renders a cancellation payload
	Void = model.Void
	// Prune removes empty values from a payload at any depth
	Prune = wire.Prune
)
