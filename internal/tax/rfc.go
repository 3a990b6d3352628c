// Package tax implements the Mexican tax rules used across the service:
// RFC structural validation, IVA (16%) breakdowns and SAT deductibility
// checks. Every function is pure and callable without running the OCR
// pipeline.
package tax

import (
	"strings"

	"github.com/DanielGalvanS/FinanZapp/internal/patterns"
)

// RFC kinds reported by ValidateRFC.
const (
	RFCKindIndividual  = "individual"   // persona fisica, 13 characters
	RFCKindLegalEntity = "legal-entity" // persona moral, 12 characters
)

// RFCValidation is the structured result of validating an RFC.
type RFCValidation struct {
	Valid  bool   `json:"valid"`
	Kind   string `json:"kind,omitempty"`
	Length int    `json:"length,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ValidateRFC checks the structural shape of a Mexican RFC. It normalizes
// case, hyphens and spaces first. Invalid input is reported in the result,
// never as an error.
func ValidateRFC(rfc string) RFCValidation {
	if rfc == "" {
		return RFCValidation{Valid: false, Error: "RFC vacío"}
	}

	normalized := NormalizeRFC(rfc)

	switch {
	case patterns.RFCIndividual.MatchString(normalized):
		return RFCValidation{Valid: true, Kind: RFCKindIndividual, Length: len([]rune(normalized))}
	case patterns.RFCLegalEntity.MatchString(normalized):
		return RFCValidation{Valid: true, Kind: RFCKindLegalEntity, Length: len([]rune(normalized))}
	default:
		return RFCValidation{Valid: false, Error: "Formato de RFC inválido"}
	}
}

// NormalizeRFC uppercases an RFC and strips hyphens and spaces.
func NormalizeRFC(rfc string) string {
	normalized := strings.ToUpper(strings.TrimSpace(rfc))
	normalized = strings.ReplaceAll(normalized, "-", "")
	return strings.ReplaceAll(normalized, " ", "")
}
