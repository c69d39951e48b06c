package model_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/avalara-go/internal/model"
	"github.com/rezonia/avalara-go/internal/wire"
)

func TestNewOrderLine_Defaults(t *testing.T) {
	l, err := model.NewOrderLine(1, model.LineFields{DestinationCode: 1, ItemCode: "SKU"})
	require.NoError(t, err)

	assert.Equal(t, 1, l.Qty)
	assert.Equal(t, model.DefaultTaxCode, l.TaxCode)
	assert.False(t, l.Amount.Valid)
	assert.False(t, l.Overridden())
}

func TestNewOrderLine_DerivesAmount(t *testing.T) {
	tests := []struct {
		name     string
		fields   model.LineFields
		expected string
	}{
		{
			name:     "price times qty",
			fields:   model.LineFields{Qty: 5, Price: decimal.NewNullDecimal(decimal.NewFromInt(15))},
			expected: "75.00",
		},
		{
			name:     "price rounded half up first",
			fields:   model.LineFields{Qty: 2, Price: decimal.NewNullDecimal(decimal.RequireFromString("1.005"))},
			expected: "2.02",
		},
		{
			name:     "default qty",
			fields:   model.LineFields{Price: decimal.NewNullDecimal(decimal.RequireFromString("9.99"))},
			expected: "9.99",
		},
		{
			name: "explicit amount wins",
			fields: model.LineFields{
				Qty:    5,
				Price:  decimal.NewNullDecimal(decimal.NewFromInt(15)),
				Amount: decimal.NewNullDecimal(decimal.NewFromInt(10)),
			},
			expected: "10.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.fields
			f.DestinationCode = 1
			f.ItemCode = "SKU"

			l, err := model.NewOrderLine(1, f)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l.Payload()["Amount"])
		})
	}
}

func TestNewOrderLine_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		number int
		fields model.LineFields
		field  string
	}{
		{"line number", 0, model.LineFields{DestinationCode: 1, ItemCode: "SKU"}, "LineNo"},
		{"destination", 1, model.LineFields{ItemCode: "SKU"}, "DestinationCode"},
		{"item code", 1, model.LineFields{DestinationCode: 1, ItemCode: "  "}, "ItemCode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewOrderLine(tt.number, tt.fields)
			var missing *model.MissingRequiredFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, "OrderLine", missing.Entity)
			assert.Equal(t, tt.field, missing.Field)
		})
	}
}

func TestNewOrderLine_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("é", model.MaxDescriptionLength+20)
	l, err := model.NewOrderLine(1, model.LineFields{
		DestinationCode: 1,
		ItemCode:        "SKU",
		Description:     long,
	})
	require.NoError(t, err)
	assert.Equal(t, model.MaxDescriptionLength, len([]rune(l.Description)))
}

func TestOrderLine_PayloadFlags(t *testing.T) {
	l, err := model.NewOrderLine(4, model.LineFields{
		DestinationCode:   2,
		OriginCode:        1,
		ItemCode:          model.ShippingItemCode,
		TaxCode:           model.ShippingTaxCode,
		CustomerUsageType: "G",
		Qty:               1,
		Amount:            decimal.NewNullDecimal(decimal.RequireFromString("4.995")),
		Discounted:        true,
		TaxIncluded:       true,
		Ref1:              "order-9",
		Extra:             model.Extra{"RevAcct": "4000"},
	})
	require.NoError(t, err)

	assert.Equal(t, wire.Object{
		"LineNo":            4,
		"DestinationCode":   2,
		"OriginCode":        1,
		"ItemCode":          "SHIPPING",
		"TaxCode":           "FR020100",
		"CustomerUsageType": "G",
		"Qty":               1,
		"Amount":            "5.00",
		"Discounted":        true,
		"TaxIncluded":       true,
		"Ref1":              "order-9",
		"RevAcct":           "4000",
	}, l.Payload())
}

func TestNewTaxOverride_Defaults(t *testing.T) {
	o, err := model.NewTaxOverride(model.OverrideFields{
		Amount: decimal.NewNullDecimal(decimal.NewFromFloat(1.5)),
	})
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, model.DefaultReason, o.Reason)
	assert.Equal(t, model.OverrideTypeTaxAmount, o.Type)
	assert.Equal(t, now.Year(), o.Date.Year())
	assert.Equal(t, now.YearDay(), o.Date.YearDay())
	assert.Equal(t, "1.50", o.Payload()["TaxAmount"])
}

func TestNewTaxOverride_CallerValues(t *testing.T) {
	o, err := model.NewTaxOverride(model.OverrideFields{
		Reason: " Return ",
		Type:   model.OverrideTypeTaxDate,
		Date:   time.Date(2015, 12, 31, 18, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, wire.Object{
		"Reason":          "Return",
		"TaxOverrideType": "TaxDate",
		"TaxDate":         "2015-12-31",
	}, o.Payload())
}

func TestOverrideFields_IsZero(t *testing.T) {
	assert.True(t, model.OverrideFields{}.IsZero())
	assert.True(t, model.OverrideFields{Reason: "  "}.IsZero())
	assert.False(t, model.OverrideFields{Amount: decimal.NewNullDecimal(decimal.Zero)}.IsZero())
}

func TestVoid(t *testing.T) {
	payload, err := model.Void(model.CancelFields{DocCode: "5"})
	require.NoError(t, err)
	assert.Equal(t, wire.Object{
		"CancelCode":  "DocVoided",
		"CompanyCode": "SOC",
		"DocCode":     "5",
		"DocType":     "SalesInvoice",
	}, payload)

	payload, err = model.Void(model.CancelFields{
		DocCode:     "7",
		DocType:     model.DocTypeReturnInvoice,
		CompanyCode: "ACME",
		CancelCode:  model.CancelCodeDocDeleted,
	})
	require.NoError(t, err)
	assert.Equal(t, "ReturnInvoice", payload["DocType"])
	assert.Equal(t, "ACME", payload["CompanyCode"])
	assert.Equal(t, "DocDeleted", payload["CancelCode"])

	_, err = model.Void(model.CancelFields{})
	var missing *model.MissingRequiredFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "DocCode", missing.Field)
}

func TestErrors(t *testing.T) {
	err := model.NewMissingRequiredFieldError("Address", "City")
	assert.Contains(t, err.Error(), "Address")
	assert.Contains(t, err.Error(), "City")

	unknown := model.NewUnknownAddressError(2, "OriginCode", 9)
	assert.Contains(t, unknown.Error(), "line 2")
	assert.Contains(t, unknown.Error(), "9")

	cause := assert.AnError
	verr := model.NewValidationError("DocDate", "tomorrow", "date", "must be YYYY-MM-DD", cause)
	assert.Contains(t, verr.Error(), "DocDate")
	assert.Contains(t, verr.Error(), "tomorrow")
	require.ErrorIs(t, verr, cause)
}
