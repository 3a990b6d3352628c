package extract

import (
	"strings"

	"github.com/DanielGalvanS/FinanZapp/internal/patterns"
)

const (
	categoryKeywordConfidence = 0.7
	categoryDefaultConfidence = 0.5
)

// SuggestCategory classifies the expense. A resolved merchant that appears
// in the known-merchant table reuses that entry's category and confidence;
// otherwise the text is scanned against the category keyword rules in
// declaration order. With no signal at all the category is "other" at 0.5 —
// deliberately nonzero, unlike every other extractor's no-signal case.
func (p *PostProcessor) SuggestCategory(merchantName, fullText string) FieldResult[string] {
	if merchantName != "" {
		merchantUpper := strings.ToUpper(merchantName)
		for _, merchant := range patterns.KnownMerchants {
			if strings.Contains(merchantUpper, strings.ToUpper(merchant.Name)) {
				return found(merchant.Category, merchant.Confidence)
			}
		}
	}

	textUpper := strings.ToUpper(fullText)
	for _, rule := range patterns.CategoryRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(textUpper, strings.ToUpper(keyword)) {
				return found(rule.Category, categoryKeywordConfidence)
			}
		}
	}

	return found(patterns.CategoryOther, categoryDefaultConfidence)
}
