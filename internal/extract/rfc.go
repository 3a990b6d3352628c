package extract

import (
	"strings"

	"github.com/DanielGalvanS/FinanZapp/internal/patterns"
	"github.com/DanielGalvanS/FinanZapp/internal/tax"
)

const (
	rfcHintConfidence  = 0.9
	rfcRegexConfidence = 0.85
)

// ExtractRFC resolves the supplier RFC. A shape-valid provider hint wins;
// otherwise the text is scanned with the RFC pattern variants and the first
// shape-valid candidate is returned, hyphens stripped and uppercased. A hint
// that fails validation is not an error, it just falls through.
func (p *PostProcessor) ExtractRFC(fullText, providerHint string) FieldResult[string] {
	if providerHint != "" {
		normalized := tax.NormalizeRFC(providerHint)
		if tax.ValidateRFC(normalized).Valid {
			return found(normalized, rfcHintConfidence)
		}
	}

	upper := strings.ToUpper(fullText)
	for _, pattern := range patterns.RFCPatterns {
		for _, m := range pattern.FindAllStringSubmatch(upper, -1) {
			candidate := strings.ReplaceAll(m[0], "-", "")
			if tax.ValidateRFC(candidate).Valid {
				return found(candidate, rfcRegexConfidence)
			}
		}
	}

	return absent[string]()
}
