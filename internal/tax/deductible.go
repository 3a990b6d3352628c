package tax

import (
	"fmt"

	"github.com/DanielGalvanS/FinanZapp/internal/patterns"
)

// RequirementsMet reports which individual SAT requirements an expense
// satisfies.
type RequirementsMet struct {
	HasRFC          bool `json:"hasRfc"`
	HasInvoice      bool `json:"hasInvoice"`
	CategoryAllowed bool `json:"categoryAllowed"`
}

// DeductibilityVerdict is the outcome of evaluating an expense against the
// SAT deductibility rules.
type DeductibilityVerdict struct {
	Deductible      bool            `json:"deductible"`
	Reasons         []string        `json:"reasons"`
	Recommendations []string        `json:"recommendations"`
	RequirementsMet RequirementsMet `json:"requirementsMet"`
}

// Categories that SAT typically accepts as deductible business expenses.
var deductibleCategories = []string{
	patterns.CategoryFood,
	patterns.CategoryTransport,
	patterns.CategoryHealth,
	patterns.CategoryEducation,
	patterns.CategoryProfessionalServices,
}

// Categories that are never deductible.
var nonDeductibleCategories = []string{
	patterns.CategoryEntertainment,
	patterns.CategoryPersonal,
}

// EvaluateDeductibility decides whether an expense qualifies for deduction.
// Base requirement: a valid RFC and a CFDI invoice. The category then gates
// the verdict: deny-listed categories always fail, allow-listed categories
// pass, anything else is flagged for review without failing on its own.
func EvaluateDeductibility(category string, hasRFC, hasInvoice bool) DeductibilityVerdict {
	reasons := []string{}
	deductible := true

	if !hasRFC {
		deductible = false
		reasons = append(reasons, "No tiene RFC válido")
	}

	if !hasInvoice {
		deductible = false
		reasons = append(reasons, "No tiene factura (CFDI)")
	}

	if contains(nonDeductibleCategories, category) {
		deductible = false
		reasons = append(reasons, fmt.Sprintf("Categoría '%s' no es deducible", category))
	} else if !contains(deductibleCategories, category) {
		reasons = append(reasons, fmt.Sprintf("Categoría '%s' requiere revisión", category))
	}

	recommendations := []string{}
	if category == patterns.CategoryFood {
		recommendations = append(recommendations,
			"Máximo 8.5% de ingresos acumulables",
			"Debe estar relacionado con actividad empresarial")
	}
	if category == patterns.CategoryTransport {
		recommendations = append(recommendations, "Solo transporte relacionado con trabajo")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Cumple requisitos básicos")
	}

	return DeductibilityVerdict{
		Deductible:      deductible && hasRFC && hasInvoice,
		Reasons:         reasons,
		Recommendations: recommendations,
		RequirementsMet: RequirementsMet{
			HasRFC:          hasRFC,
			HasInvoice:      hasInvoice,
			CategoryAllowed: contains(deductibleCategories, category),
		},
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
