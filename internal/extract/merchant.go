package extract

import (
	"strings"

	"github.com/DanielGalvanS/FinanZapp/internal/patterns"
)

// Confidence assigned when the provider's merchant hint is used as-is.
const merchantHintConfidence = 0.6

// Confidence assigned when only a corporate-suffix match identifies the name.
const merchantSuffixConfidence = 0.5

// ExtractMerchant resolves the merchant name. Priority: the known-merchant
// table (first keyword hit wins, table order), then the provider hint
// verbatim, then a corporate-suffix pattern ("X S.A. DE C.V."). When nothing
// matches the result is absent with zero confidence.
func (p *PostProcessor) ExtractMerchant(fullText, providerHint string) FieldResult[string] {
	upper := strings.ToUpper(fullText)

	for _, merchant := range patterns.KnownMerchants {
		for _, keyword := range merchant.Keywords {
			if strings.Contains(upper, strings.ToUpper(keyword)) {
				return found(merchant.Name, merchant.Confidence)
			}
		}
	}

	if hint := strings.TrimSpace(providerHint); hint != "" {
		return found(hint, merchantHintConfidence)
	}

	if m := patterns.CompanySuffix.FindStringSubmatch(fullText); m != nil {
		return found(strings.TrimSpace(m[1]), merchantSuffixConfidence)
	}

	return absent[string]()
}
