package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/avalara-go/internal/codec"
	money "github.com/rezonia/avalara-go/internal/decimal"
	"github.com/rezonia/avalara-go/internal/wire"
)

// DocumentFields are the caller-supplied header values of a tax document
type DocumentFields struct {
	CustomerCode string
	CompanyCode  string
	DetailLevel  DetailLevel
	CurrencyCode string
	DocCode      string
	// DocDate defaults to the current day when zero
	DocDate time.Time
	DocType DocType
	Commit  bool

	BusinessIdentificationNo string
	Client                   string
	CustomerUsageType        string
	Discount                 decimal.NullDecimal
	ExemptionNo              string
	LocationCode             string
	PosLaneCode              string
	PurchaseOrderNo          string
	ReferenceCode            string

	Extra Extra
}

// TaxDocument is the aggregate request describing a sales transaction.
// Addresses and lines are numbered from 1 in insertion order.
//
// A TaxDocument is not safe for concurrent mutation.
type TaxDocument struct {
	CustomerCode string
	CompanyCode  string
	DetailLevel  DetailLevel
	CurrencyCode string
	DocCode      string
	DocDate      time.Time
	DocType      DocType
	Commit       bool

	BusinessIdentificationNo string
	Client                   string
	CustomerUsageType        string
	Discount                 decimal.NullDecimal
	ExemptionNo              string
	LocationCode             string
	PosLaneCode              string
	PurchaseOrderNo          string
	ReferenceCode            string

	addresses []*Address
	lines     []*OrderLine
	extra     map[string]interface{}

	now        func() time.Time
	strictRefs bool
}

// Option configures a TaxDocument
type Option func(*TaxDocument)

// WithClock sets the clock used for date defaults
func WithClock(now func() time.Time) Option {
	return func(d *TaxDocument) {
		d.now = now
	}
}

// WithStrictAddressRefs makes AddLine reject address codes that were not
// returned by AddAddress
func WithStrictAddressRefs() Option {
	return func(d *TaxDocument) {
		d.strictRefs = true
	}
}

// NewTaxDocument builds and validates a tax document header
func NewTaxDocument(f DocumentFields, opts ...Option) (*TaxDocument, error) {
	d := &TaxDocument{now: time.Now}
	for _, opt := range opts {
		opt(d)
	}

	extra, err := f.Extra.encode()
	if err != nil {
		return nil, err
	}

	d.CustomerCode = orDefault(f.CustomerCode, DefaultCustomerCode)
	d.CompanyCode = orDefault(f.CompanyCode, DefaultCompanyCode)
	d.DetailLevel = DetailLevel(orDefault(string(f.DetailLevel), string(DetailLevelDocument)))
	d.CurrencyCode = orDefault(f.CurrencyCode, DefaultCurrencyCode)
	d.DocCode = strings.TrimSpace(f.DocCode)
	d.DocDate = f.DocDate
	d.DocType = DocType(strings.TrimSpace(string(f.DocType)))
	d.Commit = f.Commit
	d.BusinessIdentificationNo = strings.TrimSpace(f.BusinessIdentificationNo)
	d.Client = strings.TrimSpace(f.Client)
	d.CustomerUsageType = strings.TrimSpace(f.CustomerUsageType)
	d.Discount = f.Discount
	d.ExemptionNo = strings.TrimSpace(f.ExemptionNo)
	d.LocationCode = strings.TrimSpace(f.LocationCode)
	d.PosLaneCode = strings.TrimSpace(f.PosLaneCode)
	d.PurchaseOrderNo = strings.TrimSpace(f.PurchaseOrderNo)
	d.ReferenceCode = strings.TrimSpace(f.ReferenceCode)
	d.extra = extra

	if d.DocDate.IsZero() {
		d.DocDate = today(d.now)
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *TaxDocument) validate() error {
	switch {
	case d.CustomerCode == "":
		return NewMissingRequiredFieldError("TaxDocument", "CustomerCode")
	case d.DocCode == "":
		return NewMissingRequiredFieldError("TaxDocument", "DocCode")
	}
	return nil
}

// AddAddress appends an address and returns its code. Pass the code as
// DestinationCode or OriginCode of later lines.
func (d *TaxDocument) AddAddress(f AddressFields) (int, error) {
	code := len(d.addresses) + 1
	a, err := NewAddress(code, f)
	if err != nil {
		return 0, err
	}
	d.addresses = append(d.addresses, a)
	return code, nil
}

// AddLine appends an order line and returns its line number. A non-empty
// override is attached to this line only.
func (d *TaxDocument) AddLine(f LineFields, override *OverrideFields) (int, error) {
	number := len(d.lines) + 1
	line, err := NewOrderLine(number, f)
	if err != nil {
		return 0, err
	}

	if d.strictRefs {
		if !d.hasAddress(line.DestinationCode) {
			return 0, NewUnknownAddressError(number, "DestinationCode", line.DestinationCode)
		}
		if line.OriginCode != 0 && !d.hasAddress(line.OriginCode) {
			return 0, NewUnknownAddressError(number, "OriginCode", line.OriginCode)
		}
	}

	if override != nil && !override.IsZero() {
		o, err := newTaxOverride(*override, d.now)
		if err != nil {
			return 0, err
		}
		line.Override = o
	}

	d.lines = append(d.lines, line)
	return number, nil
}

func (d *TaxDocument) hasAddress(code int) bool {
	return code > 0 && code <= len(d.addresses)
}

// Addresses returns the document addresses in code order
func (d *TaxDocument) Addresses() []*Address {
	out := make([]*Address, len(d.addresses))
	copy(out, d.addresses)
	return out
}

// Lines returns the document lines in line-number order
func (d *TaxDocument) Lines() []*OrderLine {
	out := make([]*OrderLine, len(d.lines))
	copy(out, d.lines)
	return out
}

// TotalAmount sums the amounts of all lines that carry one
func (d *TaxDocument) TotalAmount() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(d.lines))
	for _, l := range d.lines {
		if l.Amount.Valid {
			amounts = append(amounts, l.Amount.Decimal)
		}
	}
	return money.Sum(amounts)
}

// State reports where the document is in the quote/commit lifecycle
func (d *TaxDocument) State() State {
	switch {
	case d.DocType == DocTypeSalesInvoice && d.Commit:
		return StateCommitted
	case d.DocType == DocTypeSalesOrder && !d.Commit:
		return StateQuoted
	default:
		return StateDraft
	}
}

// FinalizeForQuote marks the document as an uncommitted sales order and
// renders it. The service records nothing for a quote.
func (d *TaxDocument) FinalizeForQuote() (wire.Object, error) {
	d.DocType = DocTypeSalesOrder
	d.Commit = false
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d.Payload(), nil
}

// FinalizeForCommit marks the document as a committed sales invoice and
// renders it.
func (d *TaxDocument) FinalizeForCommit() (wire.Object, error) {
	d.DocType = DocTypeSalesInvoice
	d.Commit = true
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d.Payload(), nil
}

// Payload renders the document in its current state
func (d *TaxDocument) Payload() wire.Object {
	addresses := make([]wire.Object, 0, len(d.addresses))
	for _, a := range d.addresses {
		addresses = append(addresses, a.Payload())
	}
	lines := make([]wire.Object, 0, len(d.lines))
	for _, l := range d.lines {
		lines = append(lines, l.Payload())
	}

	return wire.Render([]wire.Field{
		wire.F("CustomerCode", codec.String(d.CustomerCode)),
		wire.F("CompanyCode", codec.String(d.CompanyCode)),
		wire.F("DetailLevel", codec.String(string(d.DetailLevel))),
		wire.F("CurrencyCode", codec.String(d.CurrencyCode)),
		wire.F("DocCode", codec.String(d.DocCode)),
		wire.F("DocType", codec.String(string(d.DocType))),
		wire.F("DocDate", codec.FormatDate(d.DocDate)),
		wire.F("Commit", codec.Bool(d.Commit)),
		wire.F("BusinessIdentificationNo", codec.String(d.BusinessIdentificationNo)),
		wire.F("Client", codec.String(d.Client)),
		wire.F("CustomerUsageType", codec.String(d.CustomerUsageType)),
		wire.F("Discount", codec.Decimal(d.Discount, money.GeneralPlaces)),
		wire.F("ExemptionNo", codec.String(d.ExemptionNo)),
		wire.F("LocationCode", codec.String(d.LocationCode)),
		wire.F("PosLaneCode", codec.String(d.PosLaneCode)),
		wire.F("PurchaseOrderNo", codec.String(d.PurchaseOrderNo)),
		wire.F("ReferenceCode", codec.String(d.ReferenceCode)),
		wire.F("Addresses", addresses),
		wire.F("Lines", lines),
	}, d.extra)
}
