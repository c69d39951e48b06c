package model

import (
	"strings"

	"github.com/rezonia/avalara-go/internal/codec"
	"github.com/rezonia/avalara-go/internal/wire"
)

// CancelFields identify a previously submitted document to void
type CancelFields struct {
	DocCode     string
	DocType     DocType
	CompanyCode string
	CancelCode  CancelCode
}

// Void renders a cancellation request. DocType defaults to SalesInvoice,
// CompanyCode to "SOC" and CancelCode to DocVoided.
func Void(f CancelFields) (wire.Object, error) {
	docCode := strings.TrimSpace(f.DocCode)
	if docCode == "" {
		return nil, NewMissingRequiredFieldError("CancelRequest", "DocCode")
	}

	return wire.Render([]wire.Field{
		wire.F("CancelCode", codec.String(orDefault(string(f.CancelCode), string(CancelCodeDocVoided)))),
		wire.F("CompanyCode", codec.String(orDefault(f.CompanyCode, DefaultCompanyCode))),
		wire.F("DocCode", codec.String(docCode)),
		wire.F("DocType", codec.String(orDefault(string(f.DocType), string(DocTypeSalesInvoice)))),
	}, nil), nil
}
