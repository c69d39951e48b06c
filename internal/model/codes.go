package model

// Well-known item and tax codes
const (
	DefaultTaxCode    = "P0000000"
	NonTaxableTaxCode = "NT"
	ShippingItemCode  = "SHIPPING"
	ShippingTaxCode   = "FR020100"
	HandlingItemCode  = "HANDLING"
	HandlingTaxCode   = "OH010000"
)

// Document defaults
const (
	DefaultCompanyCode  = "SOC"
	DefaultCustomerCode = "TEMPCODE"
	DefaultCurrencyCode = "USD"
	DefaultCountry      = "US"
	DefaultReason       = "Imported From External System"

	// MaxDescriptionLength is the longest line description the service accepts
	MaxDescriptionLength = 255
)

// DocType identifies the kind of tax document
type DocType string

const (
	DocTypeSalesOrder      DocType = "SalesOrder"
	DocTypeSalesInvoice    DocType = "SalesInvoice"
	DocTypeReturnOrder     DocType = "ReturnOrder"
	DocTypeReturnInvoice   DocType = "ReturnInvoice"
	DocTypePurchaseOrder   DocType = "PurchaseOrder"
	DocTypePurchaseInvoice DocType = "PurchaseInvoice"
)

// DetailLevel controls how much detail the service returns
type DetailLevel string

const (
	DetailLevelSummary    DetailLevel = "Summary"
	DetailLevelDocument   DetailLevel = "Document"
	DetailLevelLine       DetailLevel = "Line"
	DetailLevelTax        DetailLevel = "Tax"
	DetailLevelDiagnostic DetailLevel = "Diagnostic"
)

// OverrideType selects what a tax override replaces
type OverrideType string

const (
	OverrideTypeNone      OverrideType = "None"
	OverrideTypeTaxAmount OverrideType = "TaxAmount"
	OverrideTypeExemption OverrideType = "Exemption"
	OverrideTypeTaxDate   OverrideType = "TaxDate"
)

// CancelCode gives the reason a committed document is cancelled
type CancelCode string

const (
	CancelCodeUnspecified         CancelCode = "Unspecified"
	CancelCodePostFailed          CancelCode = "PostFailed"
	CancelCodeDocDeleted          CancelCode = "DocDeleted"
	CancelCodeDocVoided           CancelCode = "DocVoided"
	CancelCodeAdjustmentCancelled CancelCode = "AdjustmentCancelled"
)

// State is the lifecycle position of a tax document
type State string

const (
	StateDraft     State = "Draft"
	StateQuoted    State = "Quoted"
	StateCommitted State = "Committed"
)
