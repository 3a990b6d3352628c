package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielGalvanS/FinanZapp/internal/docai"
	"github.com/DanielGalvanS/FinanZapp/internal/extract"
	"github.com/DanielGalvanS/FinanZapp/internal/models"
	"github.com/DanielGalvanS/FinanZapp/internal/tax"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h := NewHandler(&models.Config{Port: 8080, Host: "127.0.0.1"}, nil)
	return h.SetupRoutes()
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestValidateRFCEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/ocr/validate-rfc", ValidateRFCRequest{RFC: "abc-123456-xy9"})

	require.Equal(t, http.StatusOK, rec.Code)

	var got tax.RFCValidation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Valid)
	assert.Equal(t, tax.RFCKindLegalEntity, got.Kind)
}

func TestValidateRFCEndpointInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ocr/validate-rfc", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculateTaxEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/ocr/calculate-tax", map[string]string{"subtotal": "100"})

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.JSONEq(t, `"16"`, string(got["iva"]))
	assert.JSONEq(t, `"116"`, string(got["total"]))
}

func TestCheckDeductibleEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/ocr/check-deductible", CheckDeductibleRequest{
		Category:   "food",
		HasRFC:     true,
		HasInvoice: true,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var got tax.DeductibilityVerdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Deductible)
	assert.Equal(t, []string{"Cumple requisitos básicos"}, got.Reasons)
	assert.Len(t, got.Recommendations, 2)
}

func TestBuildScanResponseTaxBreakdownTiers(t *testing.T) {
	h := NewHandler(&models.Config{}, nil)

	tests := []struct {
		name         string
		entities     []docai.Entity
		wantSubtotal string
		wantIVA      string
	}{
		{
			name: "printed tax wins",
			entities: []docai.Entity{
				{Type: docai.EntityTotalAmount, MentionText: "116.00"},
				{Type: docai.EntityTotalTaxAmount, MentionText: "16.00"},
				{Type: docai.EntityNetAmount, MentionText: "99.00"}, // ignored, tax is explicit
			},
			wantSubtotal: "100",
			wantIVA:      "16",
		},
		{
			name: "printed subtotal backs out the tax",
			entities: []docai.Entity{
				{Type: docai.EntityTotalAmount, MentionText: "116.00"},
				{Type: docai.EntityNetAmount, MentionText: "100.00"},
			},
			wantSubtotal: "100",
			wantIVA:      "16",
		},
		{
			name: "subtotal above total is ignored",
			entities: []docai.Entity{
				{Type: docai.EntityTotalAmount, MentionText: "58.50"},
				{Type: docai.EntityNetAmount, MentionText: "999.00"},
			},
			wantSubtotal: "50.43",
			wantIVA:      "8.07",
		},
		{
			name: "total alone assumes 16 percent included",
			entities: []docai.Entity{
				{Type: docai.EntityTotalAmount, MentionText: "58.50"},
			},
			wantSubtotal: "50.43",
			wantIVA:      "8.07",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &docai.RawOcrOutput{FullText: "GRACIAS POR SU VISITA", Entities: tt.entities}
			result := extract.NewPostProcessor().Process(raw)
			hints := extract.CollectHints(raw.Entities)

			resp := h.buildScanResponse(raw, result, hints)

			require.NotNil(t, resp.TaxBreakdown)
			assert.True(t, resp.TaxBreakdown.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)),
				"subtotal = %s", resp.TaxBreakdown.Subtotal)
			assert.True(t, resp.TaxBreakdown.IVA.Equal(decimal.RequireFromString(tt.wantIVA)),
				"iva = %s", resp.TaxBreakdown.IVA)
			assert.True(t, resp.TaxBreakdown.Subtotal.Add(resp.TaxBreakdown.IVA).Equal(*result.TotalAmount.Value))
		})
	}
}

func TestScanReceiptRejectsMissingFile(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ocr/scan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
