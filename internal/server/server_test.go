package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/avalara-go/internal/client"
	"github.com/rezonia/avalara-go/internal/model"
	"github.com/rezonia/avalara-go/internal/server"
	"github.com/rezonia/avalara-go/internal/transport"
)

const documentJSON = `{
	"doc_code": "INV-1",
	"doc_date": "2016-05-05",
	"addresses": [
		{"line1": "123 some street name", "city": "a city", "region": "WA", "postal_code": "81344"}
	],
	"lines": [
		{"origin": 1, "destination": 1, "item_code": "12345", "price": "10.005", "qty": 2}
	]
}`

type fakeService struct {
	lastDoc    *model.TaxDocument
	lastCancel model.CancelFields
	lastQuery  client.AddressQuery
	lastCoords []decimal.Decimal
	err        error
}

func (f *fakeService) respond() (transport.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return transport.Response{"ResultCode": "Success"}, nil
}

func (f *fakeService) GetTax(_ context.Context, doc *model.TaxDocument) (transport.Response, error) {
	if _, err := doc.FinalizeForQuote(); err != nil {
		return nil, err
	}
	f.lastDoc = doc
	return f.respond()
}

func (f *fakeService) CommitTax(_ context.Context, doc *model.TaxDocument) (transport.Response, error) {
	if _, err := doc.FinalizeForCommit(); err != nil {
		return nil, err
	}
	f.lastDoc = doc
	return f.respond()
}

func (f *fakeService) VoidDocument(_ context.Context, c model.CancelFields) (transport.Response, error) {
	f.lastCancel = c
	return f.respond()
}

func (f *fakeService) ValidateAddress(_ context.Context, q client.AddressQuery) (transport.Response, error) {
	f.lastQuery = q
	return f.respond()
}

func (f *fakeService) EstimateTax(_ context.Context, lat, lon, amount decimal.Decimal) (transport.Response, error) {
	f.lastCoords = []decimal.Decimal{lat, lon, amount}
	return f.respond()
}

func newTestServer(service server.TaxService) *server.Server {
	config := &server.Config{
		Address: ":8080",
		Debug:   true,
	}
	return server.NewServer(config, service, nil)
}

func do(t *testing.T, srv *server.Server, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(nil)

	w, response := do(t, srv, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
	assert.Equal(t, false, response["submitter"])
}

func TestPreviewEndpoint(t *testing.T) {
	srv := newTestServer(nil)

	w, response := do(t, srv, http.MethodPost, "/api/v1/documents/preview", documentJSON)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "INV-1", response["doc_code"])
	assert.Equal(t, "Quoted", response["state"])
	assert.Equal(t, "20.02", response["total_amount"])

	payload := response["payload"].(map[string]interface{})
	assert.Equal(t, "SalesOrder", payload["DocType"])
	assert.NotContains(t, payload, "Commit")

	lines := payload["Lines"].([]interface{})
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "20.02", line["Amount"])
	assert.Equal(t, float64(1), line["LineNo"])
}

func TestPreviewEndpoint_Modes(t *testing.T) {
	tests := []struct {
		mode    string
		status  int
		state   string
		docType interface{}
	}{
		{"draft", http.StatusOK, "Draft", nil},
		{"quote", http.StatusOK, "Quoted", "SalesOrder"},
		{"commit", http.StatusOK, "Committed", "SalesInvoice"},
		{"final", http.StatusBadRequest, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			srv := newTestServer(nil)

			w, response := do(t, srv, http.MethodPost, "/api/v1/documents/preview?mode="+tt.mode, documentJSON)
			require.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				assert.NotEmpty(t, response["error"])
				return
			}

			assert.Equal(t, tt.state, response["state"])
			payload := response["payload"].(map[string]interface{})
			assert.Equal(t, tt.docType, payload["DocType"])
		})
	}
}

func TestPreviewEndpoint_GenerateCode(t *testing.T) {
	srv := newTestServer(nil)

	w, response := do(t, srv, http.MethodPost, "/api/v1/documents/preview?generate_code=true", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["doc_code"], 36)
}

func TestPreviewEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		field  interface{}
	}{
		{"malformed json", `{`, http.StatusBadRequest, nil},
		{"unknown key", `{"doc_code":"A","bogus":1}`, http.StatusBadRequest, nil},
		{"missing doc code", `{}`, http.StatusUnprocessableEntity, "DocCode"},
		{"missing item code", `{"doc_code":"A","lines":[{"destination":1}]}`, http.StatusUnprocessableEntity, "ItemCode"},
		{"bad date", `{"doc_code":"A","doc_date":"yesterday"}`, http.StatusUnprocessableEntity, "doc_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(nil)

			w, response := do(t, srv, http.MethodPost, "/api/v1/documents/preview", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, response["error"])
			assert.Equal(t, tt.field, response["field"])
		})
	}
}

func TestPreviewEndpoint_StrictAddressRefs(t *testing.T) {
	srv := server.NewServer(&server.Config{StrictAddressRefs: true}, nil, nil)

	body := `{"doc_code":"A","lines":[{"origin":1,"destination":1,"item_code":"X"}]}`
	w, response := do(t, srv, http.MethodPost, "/api/v1/documents/preview", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "DestinationCode", response["field"])
}

func TestSubmitEndpoints_RequireService(t *testing.T) {
	srv := newTestServer(nil)

	for _, target := range []string{"/api/v1/documents/quote", "/api/v1/documents/commit", "/api/v1/documents/void"} {
		w, _ := do(t, srv, http.MethodPost, target, documentJSON)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, target)
	}
}

func TestQuoteEndpoint(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(svc)

	w, response := do(t, srv, http.MethodPost, "/api/v1/documents/quote", documentJSON)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Quoted", response["state"])
	assert.Equal(t, "Success", response["response"].(map[string]interface{})["ResultCode"])
	require.NotNil(t, svc.lastDoc)
	assert.Equal(t, "INV-1", svc.lastDoc.DocCode)
}

func TestCommitEndpoint(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(svc)

	w, response := do(t, srv, http.MethodPost, "/api/v1/documents/commit", documentJSON)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Committed", response["state"])
	assert.Equal(t, model.StateCommitted, svc.lastDoc.State())
}

func TestVoidEndpoint(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(svc)

	w, response := do(t, srv, http.MethodPost, "/api/v1/documents/void", `{"doc_code":"INV-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-1", response["doc_code"])
	assert.Equal(t, "INV-1", svc.lastCancel.DocCode)
}

func TestValidateAddressEndpoint(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(svc)

	w, _ := do(t, srv, http.MethodGet, "/api/v1/address/validate?line1=1+Main+St&postal_code=98101", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1 Main St", svc.lastQuery.Line1)
	assert.Equal(t, "US", svc.lastQuery.Country)
	assert.Equal(t, "98101", svc.lastQuery.PostalCode)
}

func TestEstimateEndpoint(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(svc)

	w, _ := do(t, srv, http.MethodGet, "/api/v1/tax/estimate?latitude=47.6&longitude=-122.3&sale_amount=100", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.lastCoords, 3)
	assert.Equal(t, "47.6", svc.lastCoords[0].String())
	assert.Equal(t, "-122.3", svc.lastCoords[1].String())
	assert.Equal(t, "100", svc.lastCoords[2].String())

	w, response := do(t, srv, http.MethodGet, "/api/v1/tax/estimate?latitude=north", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "latitude", response["field"])
}

func TestSubmitEndpoint_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"service error", &client.ServiceError{Endpoint: "tax/get", Messages: []string{"bad"}}, http.StatusUnprocessableEntity},
		{"http error", &transport.HTTPError{StatusCode: http.StatusUnauthorized}, http.StatusBadGateway},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeService{err: tt.err})

			w, response := do(t, srv, http.MethodPost, "/api/v1/documents/quote", documentJSON)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, response["error"])
		})
	}
}
