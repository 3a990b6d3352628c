package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeIVA(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		wantIVA  string
		wantTot  string
	}{
		{name: "round subtotal", subtotal: "100", wantIVA: "16", wantTot: "116"},
		{name: "cents round half up", subtotal: "50.41", wantIVA: "8.07", wantTot: "58.48"},
		{name: "one centavo", subtotal: "0.01", wantIVA: "0", wantTot: "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal := decimal.RequireFromString(tt.subtotal)
			got := ComputeIVA(subtotal)

			assert.True(t, got.IVA.Equal(decimal.RequireFromString(tt.wantIVA)),
				"iva = %s", got.IVA)
			assert.True(t, got.Total.Equal(decimal.RequireFromString(tt.wantTot)),
				"total = %s", got.Total)
			assert.True(t, got.Subtotal.Add(got.IVA).Equal(got.Total))
		})
	}
}

func TestExtractIVAFromTotal(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		wantSubtotal string
		wantIVA      string
	}{
		{name: "clean total", total: "116", wantSubtotal: "100", wantIVA: "16"},
		{name: "oxxo receipt", total: "58.50", wantSubtotal: "50.43", wantIVA: "8.07"},
		{name: "small total", total: "1.16", wantSubtotal: "1", wantIVA: "0.16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			got := ExtractIVAFromTotal(total)

			assert.True(t, got.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)),
				"subtotal = %s", got.Subtotal)
			assert.True(t, got.IVA.Equal(decimal.RequireFromString(tt.wantIVA)),
				"iva = %s", got.IVA)
			// IVA is the remainder, so the parts always reassemble exactly
			assert.True(t, got.Subtotal.Add(got.IVA).Equal(total))
		})
	}
}

func TestExtractIVAFromTotalReassembles(t *testing.T) {
	// Awkward totals where 2-decimal rounding would otherwise lose a centavo
	for _, raw := range []string{"99.99", "0.03", "123.45", "58.50", "1000000.01"} {
		total := decimal.RequireFromString(raw)
		got := ExtractIVAFromTotal(total)
		require.True(t, got.Subtotal.Add(got.IVA).Equal(total),
			"total %s: %s + %s != %s", raw, got.Subtotal, got.IVA, total)
	}
}

func TestComputeIVARoundTrip(t *testing.T) {
	tolerance := decimal.RequireFromString("0.01")

	for _, raw := range []string{"100", "50.41", "0.99", "333.33", "8712.07"} {
		subtotal := decimal.RequireFromString(raw)
		back := ExtractIVAFromTotal(ComputeIVA(subtotal).Total)

		diff := back.Subtotal.Sub(subtotal).Abs()
		require.True(t, diff.LessThanOrEqual(tolerance),
			"subtotal %s came back as %s", subtotal, back.Subtotal)
	}
}

func TestSplitKnownTax(t *testing.T) {
	got := SplitKnownTax(decimal.RequireFromString("116"), decimal.RequireFromString("16"))

	assert.True(t, got.Subtotal.Equal(decimal.RequireFromString("100")))
	assert.True(t, got.IVA.Equal(decimal.RequireFromString("16")))
	assert.True(t, got.Total.Equal(decimal.RequireFromString("116")))
	assert.True(t, got.IVARate.Equal(IVARate))
}
