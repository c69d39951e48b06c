package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/avalara-go/internal/codec"
	money "github.com/rezonia/avalara-go/internal/decimal"
	"github.com/rezonia/avalara-go/internal/wire"
)

// LineFields are the caller-supplied values for an order line
type LineFields struct {
	// DestinationCode and OriginCode reference codes returned by AddAddress
	DestinationCode int
	OriginCode      int

	ItemCode                 string
	TaxCode                  string
	CustomerUsageType        string
	BusinessIdentificationNo string
	Description              string

	// Qty defaults to 1 when zero
	Qty int
	// Amount is the extended line amount. When unset and Price is set it is
	// derived as round_half_up(Price, 2) * Qty.
	Amount decimal.NullDecimal
	Price  decimal.NullDecimal

	Discounted  bool
	TaxIncluded bool
	Ref1        string
	Ref2        string

	Extra Extra
}

// OrderLine is a single taxable line. A line with a non-nil Override is
// rendered with a TaxOverride sub-object; lines without one never are.
type OrderLine struct {
	Number                   int
	DestinationCode          int
	OriginCode               int
	ItemCode                 string
	TaxCode                  string
	CustomerUsageType        string
	BusinessIdentificationNo string
	Description              string
	Qty                      int
	Amount                   decimal.NullDecimal
	Discounted               bool
	TaxIncluded              bool
	Ref1                     string
	Ref2                     string

	Override *TaxOverride

	extra map[string]interface{}
}

// NewOrderLine builds and validates an order line with the given number
func NewOrderLine(number int, f LineFields) (*OrderLine, error) {
	extra, err := f.Extra.encode()
	if err != nil {
		return nil, err
	}

	l := &OrderLine{
		Number:                   number,
		DestinationCode:          f.DestinationCode,
		OriginCode:               f.OriginCode,
		ItemCode:                 strings.TrimSpace(f.ItemCode),
		TaxCode:                  orDefault(f.TaxCode, DefaultTaxCode),
		CustomerUsageType:        strings.TrimSpace(f.CustomerUsageType),
		BusinessIdentificationNo: strings.TrimSpace(f.BusinessIdentificationNo),
		Description:              truncate(strings.TrimSpace(f.Description), MaxDescriptionLength),
		Qty:                      f.Qty,
		Amount:                   f.Amount,
		Discounted:               f.Discounted,
		TaxIncluded:              f.TaxIncluded,
		Ref1:                     strings.TrimSpace(f.Ref1),
		Ref2:                     strings.TrimSpace(f.Ref2),
		extra:                    extra,
	}
	if l.Qty == 0 {
		l.Qty = 1
	}

	if f.Price.Valid && !l.Amount.Valid {
		l.Amount = money.Present(money.LineAmount(f.Price.Decimal, l.Qty))
	}

	switch {
	case l.Number <= 0:
		return nil, NewMissingRequiredFieldError("OrderLine", "LineNo")
	case l.DestinationCode <= 0:
		return nil, NewMissingRequiredFieldError("OrderLine", "DestinationCode")
	case l.ItemCode == "":
		return nil, NewMissingRequiredFieldError("OrderLine", "ItemCode")
	}
	return l, nil
}

// Overridden reports whether the line carries a tax override
func (l *OrderLine) Overridden() bool {
	return l.Override != nil
}

// Payload renders the line for the wire
func (l *OrderLine) Payload() wire.Object {
	fields := []wire.Field{
		wire.F("LineNo", codec.Int(l.Number)),
		wire.F("DestinationCode", codec.Int(l.DestinationCode)),
		wire.F("OriginCode", codec.Int(l.OriginCode)),
		wire.F("ItemCode", codec.String(l.ItemCode)),
		wire.F("TaxCode", codec.String(l.TaxCode)),
		wire.F("CustomerUsageType", codec.String(l.CustomerUsageType)),
		wire.F("BusinessIdentificationNo", codec.String(l.BusinessIdentificationNo)),
		wire.F("Description", codec.String(l.Description)),
		wire.F("Qty", codec.Int(l.Qty)),
		wire.F("Amount", codec.Decimal(l.Amount, money.AmountPlaces)),
		wire.F("Discounted", codec.Bool(l.Discounted)),
		wire.F("TaxIncluded", codec.Bool(l.TaxIncluded)),
		wire.F("Ref1", codec.String(l.Ref1)),
		wire.F("Ref2", codec.String(l.Ref2)),
	}
	if l.Override != nil {
		fields = append(fields, wire.F("TaxOverride", l.Override.Payload()))
	}
	return wire.Render(fields, l.extra)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
