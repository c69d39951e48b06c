package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/avalara-go/internal/codec"
	money "github.com/rezonia/avalara-go/internal/decimal"
	"github.com/rezonia/avalara-go/internal/wire"
)

// OverrideFields are the caller-supplied values for a tax override
type OverrideFields struct {
	Reason string
	Type   OverrideType
	// Date defaults to the current day when zero
	Date   time.Time
	Amount decimal.NullDecimal

	Extra Extra
}

// IsZero reports whether no override value was supplied at all
func (f OverrideFields) IsZero() bool {
	return strings.TrimSpace(f.Reason) == "" &&
		strings.TrimSpace(string(f.Type)) == "" &&
		f.Date.IsZero() &&
		!f.Amount.Valid &&
		len(f.Extra) == 0
}

// TaxOverride replaces the service-calculated tax of a single line
type TaxOverride struct {
	Reason string
	Type   OverrideType
	Date   time.Time
	Amount decimal.NullDecimal

	extra map[string]interface{}
}

// NewTaxOverride builds and validates a tax override
func NewTaxOverride(f OverrideFields) (*TaxOverride, error) {
	return newTaxOverride(f, time.Now)
}

func newTaxOverride(f OverrideFields, now func() time.Time) (*TaxOverride, error) {
	extra, err := f.Extra.encode()
	if err != nil {
		return nil, err
	}

	o := &TaxOverride{
		Reason: orDefault(f.Reason, DefaultReason),
		Type:   OverrideType(orDefault(string(f.Type), string(OverrideTypeTaxAmount))),
		Date:   f.Date,
		Amount: f.Amount,
		extra:  extra,
	}
	if o.Date.IsZero() {
		o.Date = today(now)
	}

	switch {
	case o.Reason == "":
		return nil, NewMissingRequiredFieldError("TaxOverride", "Reason")
	case o.Type == "":
		return nil, NewMissingRequiredFieldError("TaxOverride", "TaxOverrideType")
	}
	return o, nil
}

// Payload renders the override for the wire
func (o *TaxOverride) Payload() wire.Object {
	return wire.Render([]wire.Field{
		wire.F("Reason", codec.String(o.Reason)),
		wire.F("TaxOverrideType", codec.String(string(o.Type))),
		wire.F("TaxDate", codec.FormatDate(o.Date)),
		wire.F("TaxAmount", codec.Decimal(o.Amount, money.AmountPlaces)),
	}, o.extra)
}
