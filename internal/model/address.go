package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/avalara-go/internal/codec"
	money "github.com/rezonia/avalara-go/internal/decimal"
	"github.com/rezonia/avalara-go/internal/wire"
)

// AddressFields are the caller-supplied values for an address
type AddressFields struct {
	Line1 string
	Line2 string
	Line3 string
	// City is required unless the service can resolve the address otherwise
	City string
	// Region is the state or province
	Region string
	// Country is an ISO 3166 alpha-2 code, "US" when empty
	Country    string
	PostalCode string

	Latitude    decimal.NullDecimal
	Longitude   decimal.NullDecimal
	TaxRegionID int

	Extra Extra
}

// Address is an origin or destination referenced by order lines through its code
type Address struct {
	Code        int
	Line1       string
	Line2       string
	Line3       string
	City        string
	Region      string
	Country     string
	PostalCode  string
	Latitude    decimal.NullDecimal
	Longitude   decimal.NullDecimal
	TaxRegionID int

	extra map[string]interface{}
}

// NewAddress builds and validates an address with the given code.
// Empty leading lines are repaired before the required fields are checked.
func NewAddress(code int, f AddressFields) (*Address, error) {
	extra, err := f.Extra.encode()
	if err != nil {
		return nil, err
	}

	a := &Address{
		Code:        code,
		Line1:       strings.TrimSpace(f.Line1),
		Line2:       strings.TrimSpace(f.Line2),
		Line3:       strings.TrimSpace(f.Line3),
		City:        strings.TrimSpace(f.City),
		Region:      strings.TrimSpace(f.Region),
		Country:     orDefault(f.Country, DefaultCountry),
		PostalCode:  strings.TrimSpace(f.PostalCode),
		Latitude:    f.Latitude,
		Longitude:   f.Longitude,
		TaxRegionID: f.TaxRegionID,
		extra:       extra,
	}

	a.repairLines()

	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// repairLines shifts lines up when line 1 (and possibly line 2) is empty
func (a *Address) repairLines() {
	if a.Line1 == "" && a.Line2 != "" {
		a.Line1, a.Line2, a.Line3 = a.Line2, a.Line3, ""
	}
	if a.Line1 == "" && a.Line2 == "" && a.Line3 != "" {
		a.Line1, a.Line3 = a.Line3, ""
	}
}

func (a *Address) validate() error {
	switch {
	case a.Code <= 0:
		return NewMissingRequiredFieldError("Address", "AddressCode")
	case a.Line1 == "":
		return NewMissingRequiredFieldError("Address", "Line1")
	case a.City == "":
		return NewMissingRequiredFieldError("Address", "City")
	case a.Region == "":
		return NewMissingRequiredFieldError("Address", "Region")
	case a.PostalCode == "":
		return NewMissingRequiredFieldError("Address", "PostalCode")
	}
	return nil
}

// Payload renders the address for the wire
func (a *Address) Payload() wire.Object {
	return wire.Render([]wire.Field{
		wire.F("AddressCode", codec.Int(a.Code)),
		wire.F("Line1", codec.String(a.Line1)),
		wire.F("Line2", codec.String(a.Line2)),
		wire.F("Line3", codec.String(a.Line3)),
		wire.F("City", codec.String(a.City)),
		wire.F("Region", codec.String(a.Region)),
		wire.F("Country", codec.String(a.Country)),
		wire.F("PostalCode", codec.String(a.PostalCode)),
		wire.F("Latitude", codec.Decimal(a.Latitude, money.GeneralPlaces)),
		wire.F("Longitude", codec.Decimal(a.Longitude, money.GeneralPlaces)),
		wire.F("TaxRegionId", codec.Int(a.TaxRegionID)),
	}, a.extra)
}
