package extract

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielGalvanS/FinanZapp/internal/docai"
	"github.com/DanielGalvanS/FinanZapp/internal/patterns"
)

func TestProcessConvenienceStoreReceipt(t *testing.T) {
	p := NewPostProcessor()

	ocr := &docai.RawOcrOutput{
		FullText: "CADENA COMERCIAL OXXO S.A. DE C.V.\n" +
			"RFC: OXX970814HS9\n" +
			"TIENDA 50123 MONTERREY\n" +
			"COCA COLA 600ML $18.50\n" +
			"SABRITAS $21.93\n" +
			"TOTAL $58.50\n" +
			"GRACIAS POR SU COMPRA",
	}

	result := p.Process(ocr)

	require.True(t, result.Merchant.Found())
	assert.Equal(t, "OXXO", *result.Merchant.Value)
	assert.Equal(t, 0.95, result.Merchant.Confidence)

	require.True(t, result.RFC.Found())
	assert.Equal(t, "OXX970814HS9", *result.RFC.Value)
	assert.Equal(t, 0.85, result.RFC.Confidence)

	require.True(t, result.TotalAmount.Found())
	assert.True(t, result.TotalAmount.Value.Equal(decimal.RequireFromString("58.50")),
		"amount = %s", result.TotalAmount.Value)
	assert.Equal(t, 0.75, result.TotalAmount.Confidence)

	assert.False(t, result.Date.Found())
	assert.Zero(t, result.Date.Confidence)

	require.True(t, result.Category.Found())
	assert.Equal(t, patterns.CategoryFood, *result.Category.Value)
	assert.Equal(t, 0.95, result.Category.Confidence)

	// 0.95*0.3 + 0.85*0.2 + 0.75*0.3 + 0*0.1 + 0.95*0.1
	assert.InDelta(t, 0.775, result.OverallConfidence, 1e-9)
	assert.Equal(t, QualityEnhanced, result.ProcessingQuality)
}

func TestProcessUsesProviderEntities(t *testing.T) {
	p := NewPostProcessor()

	ocr := &docai.RawOcrOutput{
		FullText: "GRACIAS POR SU VISITA\nFOLIO 8841",
		Entities: []docai.Entity{
			{Type: docai.EntitySupplierName, MentionText: "Tortas El Paisa"},
			{Type: docai.EntityTotalAmount, MentionText: "$145.00"},
			{Type: docai.EntityReceiptDate, MentionText: "2024-03-15"},
		},
	}

	result := p.Process(ocr)

	require.True(t, result.Merchant.Found())
	assert.Equal(t, "Tortas El Paisa", *result.Merchant.Value)
	assert.Equal(t, 0.6, result.Merchant.Confidence)

	assert.False(t, result.RFC.Found())

	require.True(t, result.TotalAmount.Found())
	assert.True(t, result.TotalAmount.Value.Equal(decimal.RequireFromString("145.00")))
	assert.Equal(t, 0.9, result.TotalAmount.Confidence)

	require.True(t, result.Date.Found())
	assert.True(t, result.Date.Value.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0.85, result.Date.Confidence)

	require.True(t, result.Category.Found())
	assert.Equal(t, patterns.CategoryOther, *result.Category.Value)
	assert.Equal(t, 0.5, result.Category.Confidence)

	// 0.6*0.3 + 0 + 0.9*0.3 + 0.85*0.1 + 0.5*0.1
	assert.InDelta(t, 0.585, result.OverallConfidence, 1e-9)
	assert.Equal(t, QualityStandard, result.ProcessingQuality)
}

func TestProcessEmptyScan(t *testing.T) {
	p := NewPostProcessor()

	result := p.Process(&docai.RawOcrOutput{})

	assert.False(t, result.Merchant.Found())
	assert.False(t, result.RFC.Found())
	assert.False(t, result.TotalAmount.Found())
	assert.False(t, result.Date.Found())

	// The classifier still answers, everything else carries zero confidence
	require.True(t, result.Category.Found())
	assert.Equal(t, patterns.CategoryOther, *result.Category.Value)

	assert.InDelta(t, 0.05, result.OverallConfidence, 1e-9)
	assert.Equal(t, QualityStandard, result.ProcessingQuality)
}
