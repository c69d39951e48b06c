// Package request decodes JSON tax documents and turns them into model
// entities. It is shared by the CLI and the HTTP server.
package request

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rezonia/avalara-go/internal/codec"
	"github.com/rezonia/avalara-go/internal/model"
)

// Document is the JSON form of a tax document. Lines reference addresses
// by their 1-based position in Addresses.
type Document struct {
	CustomerCode             string                 `json:"customer_code,omitempty"`
	CompanyCode              string                 `json:"company_code,omitempty"`
	DetailLevel              string                 `json:"detail_level,omitempty"`
	CurrencyCode             string                 `json:"currency_code,omitempty"`
	DocCode                  string                 `json:"doc_code,omitempty"`
	DocDate                  string                 `json:"doc_date,omitempty"`
	BusinessIdentificationNo string                 `json:"business_identification_no,omitempty"`
	Client                   string                 `json:"client,omitempty"`
	CustomerUsageType        string                 `json:"customer_usage_type,omitempty"`
	Discount                 decimal.NullDecimal    `json:"discount"`
	ExemptionNo              string                 `json:"exemption_no,omitempty"`
	LocationCode             string                 `json:"location_code,omitempty"`
	PosLaneCode              string                 `json:"pos_lane_code,omitempty"`
	PurchaseOrderNo          string                 `json:"purchase_order_no,omitempty"`
	ReferenceCode            string                 `json:"reference_code,omitempty"`
	Addresses                []Address              `json:"addresses,omitempty"`
	Lines                    []Line                 `json:"lines,omitempty"`
	Extra                    map[string]interface{} `json:"extra,omitempty"`
}

// Address is the JSON form of an address
type Address struct {
	Line1       string                 `json:"line1,omitempty"`
	Line2       string                 `json:"line2,omitempty"`
	Line3       string                 `json:"line3,omitempty"`
	City        string                 `json:"city,omitempty"`
	Region      string                 `json:"region,omitempty"`
	Country     string                 `json:"country,omitempty"`
	PostalCode  string                 `json:"postal_code,omitempty"`
	Latitude    decimal.NullDecimal    `json:"latitude"`
	Longitude   decimal.NullDecimal    `json:"longitude"`
	TaxRegionID int                    `json:"tax_region_id,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

// Line is the JSON form of an order line
type Line struct {
	Destination              int                    `json:"destination"`
	Origin                   int                    `json:"origin"`
	ItemCode                 string                 `json:"item_code,omitempty"`
	TaxCode                  string                 `json:"tax_code,omitempty"`
	CustomerUsageType        string                 `json:"customer_usage_type,omitempty"`
	BusinessIdentificationNo string                 `json:"business_identification_no,omitempty"`
	Description              string                 `json:"description,omitempty"`
	Qty                      int                    `json:"qty,omitempty"`
	Amount                   decimal.NullDecimal    `json:"amount"`
	Price                    decimal.NullDecimal    `json:"price"`
	Discounted               bool                   `json:"discounted,omitempty"`
	TaxIncluded              bool                   `json:"tax_included,omitempty"`
	Ref1                     string                 `json:"ref1,omitempty"`
	Ref2                     string                 `json:"ref2,omitempty"`
	Override                 *Override              `json:"override,omitempty"`
	Extra                    map[string]interface{} `json:"extra,omitempty"`
}

// Override is the JSON form of a line tax override
type Override struct {
	Reason string                 `json:"reason,omitempty"`
	Type   string                 `json:"type,omitempty"`
	Date   string                 `json:"date,omitempty"`
	Amount decimal.NullDecimal    `json:"amount"`
	Extra  map[string]interface{} `json:"extra,omitempty"`
}

// Cancel is the JSON form of a void request
type Cancel struct {
	DocCode     string `json:"doc_code"`
	DocType     string `json:"doc_type,omitempty"`
	CompanyCode string `json:"company_code,omitempty"`
	CancelCode  string `json:"cancel_code,omitempty"`
}

// Decode reads a Document. Unknown keys are rejected.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := decodeStrict(r, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DecodeCancel reads a Cancel. Unknown keys are rejected.
func DecodeCancel(r io.Reader) (*Cancel, error) {
	var c Cancel
	if err := decodeStrict(r, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeStrict(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	return nil
}

// EnsureDocCode assigns a random document code when none is set and
// returns the code in use
func (d *Document) EnsureDocCode() string {
	if strings.TrimSpace(d.DocCode) == "" {
		d.DocCode = uuid.New().String()
	}
	return d.DocCode
}

// Build constructs a TaxDocument, adding addresses before lines
func (d *Document) Build(opts ...model.Option) (*model.TaxDocument, error) {
	docDate, err := parseDate("doc_date", d.DocDate)
	if err != nil {
		return nil, err
	}

	doc, err := model.NewTaxDocument(model.DocumentFields{
		CustomerCode:             d.CustomerCode,
		CompanyCode:              d.CompanyCode,
		DetailLevel:              model.DetailLevel(d.DetailLevel),
		CurrencyCode:             d.CurrencyCode,
		DocCode:                  d.DocCode,
		DocDate:                  docDate,
		BusinessIdentificationNo: d.BusinessIdentificationNo,
		Client:                   d.Client,
		CustomerUsageType:        d.CustomerUsageType,
		Discount:                 d.Discount,
		ExemptionNo:              d.ExemptionNo,
		LocationCode:             d.LocationCode,
		PosLaneCode:              d.PosLaneCode,
		PurchaseOrderNo:          d.PurchaseOrderNo,
		ReferenceCode:            d.ReferenceCode,
		Extra:                    d.Extra,
	}, opts...)
	if err != nil {
		return nil, err
	}

	for i, a := range d.Addresses {
		if _, err := doc.AddAddress(a.fields()); err != nil {
			return nil, fmt.Errorf("addresses[%d]: %w", i, err)
		}
	}

	for i, l := range d.Lines {
		override, err := l.Override.fields()
		if err != nil {
			return nil, fmt.Errorf("lines[%d]: %w", i, err)
		}
		if _, err := doc.AddLine(l.fields(), override); err != nil {
			return nil, fmt.Errorf("lines[%d]: %w", i, err)
		}
	}

	return doc, nil
}

// Fields converts the cancel request for model.Void
func (c *Cancel) Fields() model.CancelFields {
	return model.CancelFields{
		DocCode:     c.DocCode,
		DocType:     model.DocType(c.DocType),
		CompanyCode: c.CompanyCode,
		CancelCode:  model.CancelCode(c.CancelCode),
	}
}

func (a Address) fields() model.AddressFields {
	return model.AddressFields{
		Line1:       a.Line1,
		Line2:       a.Line2,
		Line3:       a.Line3,
		City:        a.City,
		Region:      a.Region,
		Country:     a.Country,
		PostalCode:  a.PostalCode,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		TaxRegionID: a.TaxRegionID,
		Extra:       a.Extra,
	}
}

func (l Line) fields() model.LineFields {
	return model.LineFields{
		DestinationCode:          l.Destination,
		OriginCode:               l.Origin,
		ItemCode:                 l.ItemCode,
		TaxCode:                  l.TaxCode,
		CustomerUsageType:        l.CustomerUsageType,
		BusinessIdentificationNo: l.BusinessIdentificationNo,
		Description:              l.Description,
		Qty:                      l.Qty,
		Amount:                   l.Amount,
		Price:                    l.Price,
		Discounted:               l.Discounted,
		TaxIncluded:              l.TaxIncluded,
		Ref1:                     l.Ref1,
		Ref2:                     l.Ref2,
		Extra:                    l.Extra,
	}
}

func (o *Override) fields() (*model.OverrideFields, error) {
	if o == nil {
		return nil, nil
	}
	date, err := parseDate("override.date", o.Date)
	if err != nil {
		return nil, err
	}
	return &model.OverrideFields{
		Reason: o.Reason,
		Type:   model.OverrideType(o.Type),
		Date:   date,
		Amount: o.Amount,
		Extra:  o.Extra,
	}, nil
}

func parseDate(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := codec.ParseDate(s)
	if err != nil {
		return time.Time{}, model.NewValidationError(field, s, "date", "must be YYYY-MM-DD or RFC 3339", err)
	}
	return t, nil
}
