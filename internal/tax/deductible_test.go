package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DanielGalvanS/FinanZapp/internal/patterns"
)

func TestEvaluateDeductibility(t *testing.T) {
	tests := []struct {
		name            string
		category        string
		hasRFC          bool
		hasInvoice      bool
		wantDeductible  bool
		wantReasons     []string
		wantRecsCount   int
		wantCategoryOK  bool
	}{
		{
			name:           "food with rfc and invoice",
			category:       patterns.CategoryFood,
			hasRFC:         true,
			hasInvoice:     true,
			wantDeductible: true,
			wantReasons:    []string{"Cumple requisitos básicos"},
			wantRecsCount:  2,
			wantCategoryOK: true,
		},
		{
			name:           "transport with rfc and invoice",
			category:       patterns.CategoryTransport,
			hasRFC:         true,
			hasInvoice:     true,
			wantDeductible: true,
			wantReasons:    []string{"Cumple requisitos básicos"},
			wantRecsCount:  1,
			wantCategoryOK: true,
		},
		{
			name:           "entertainment never deductible",
			category:       patterns.CategoryEntertainment,
			hasRFC:         true,
			hasInvoice:     true,
			wantDeductible: false,
			wantReasons:    []string{"Categoría 'entertainment' no es deducible"},
			wantCategoryOK: false,
		},
		{
			name:           "missing invoice",
			category:       patterns.CategoryFood,
			hasRFC:         true,
			hasInvoice:     false,
			wantDeductible: false,
			wantReasons:    []string{"No tiene factura (CFDI)"},
			wantRecsCount:  2,
			wantCategoryOK: true,
		},
		{
			name:           "missing rfc with invoice",
			category:       patterns.CategoryFood,
			hasRFC:         false,
			hasInvoice:     true,
			wantDeductible: false,
			wantReasons:    []string{"No tiene RFC válido"},
			wantRecsCount:  2,
			wantCategoryOK: true,
		},
		{
			name:           "missing rfc and invoice",
			category:       patterns.CategoryHealth,
			hasRFC:         false,
			hasInvoice:     false,
			wantDeductible: false,
			wantReasons:    []string{"No tiene RFC válido", "No tiene factura (CFDI)"},
			wantCategoryOK: true,
		},
		{
			name:           "unlisted category needs review but does not fail",
			category:       patterns.CategoryOther,
			hasRFC:         true,
			hasInvoice:     true,
			wantDeductible: true,
			wantReasons:    []string{"Categoría 'other' requiere revisión"},
			wantCategoryOK: false,
		},
		{
			name:           "personal never deductible",
			category:       patterns.CategoryPersonal,
			hasRFC:         true,
			hasInvoice:     true,
			wantDeductible: false,
			wantReasons:    []string{"Categoría 'personal' no es deducible"},
			wantCategoryOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateDeductibility(tt.category, tt.hasRFC, tt.hasInvoice)

			assert.Equal(t, tt.wantDeductible, got.Deductible)
			assert.Equal(t, tt.wantReasons, got.Reasons)
			assert.Len(t, got.Recommendations, tt.wantRecsCount)
			assert.Equal(t, tt.hasRFC, got.RequirementsMet.HasRFC)
			assert.Equal(t, tt.hasInvoice, got.RequirementsMet.HasInvoice)
			assert.Equal(t, tt.wantCategoryOK, got.RequirementsMet.CategoryAllowed)
		})
	}
}

func TestEvaluateDeductibilityFoodRecommendations(t *testing.T) {
	got := EvaluateDeductibility(patterns.CategoryFood, true, true)

	assert.Equal(t, []string{
		"Máximo 8.5% de ingresos acumulables",
		"Debe estar relacionado con actividad empresarial",
	}, got.Recommendations)
}
