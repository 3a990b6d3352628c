package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DanielGalvanS/FinanZapp/internal/patterns"
)

const (
	amountHintConfidence  = 0.9
	amountRegexConfidence = 0.75
)

// Sanity bounds for regex-extracted amounts; values outside are OCR noise.
var (
	amountMin = decimal.New(1, -2)     // 0.01
	amountMax = decimal.New(999999, 0) // 999999
)

// ExtractAmount resolves the receipt total. A positive provider hint is
// trusted outright. Otherwise every labeled or $-prefixed amount in the text
// is collected and the maximum in-bounds value is returned — receipts list
// both a subtotal and a total, and the total is the larger one.
func (p *PostProcessor) ExtractAmount(fullText string, providerHint *decimal.Decimal) FieldResult[decimal.Decimal] {
	if providerHint != nil && providerHint.IsPositive() {
		return found(*providerHint, amountHintConfidence)
	}

	var max *decimal.Decimal
	for _, pattern := range patterns.AmountPatterns {
		for _, m := range pattern.FindAllStringSubmatch(fullText, -1) {
			raw := strings.ReplaceAll(m[1], ",", "")
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				continue
			}
			if amount.LessThan(amountMin) || amount.GreaterThan(amountMax) {
				continue
			}
			if max == nil || amount.GreaterThan(*max) {
				v := amount
				max = &v
			}
		}
	}

	if max != nil {
		return found(*max, amountRegexConfidence)
	}

	return absent[decimal.Decimal]()
}
