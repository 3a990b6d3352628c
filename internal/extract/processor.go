package extract

import (
	"github.com/DanielGalvanS/FinanZapp/internal/docai"
)

// PostProcessor runs the full extraction pipeline over a provider scan.
// It holds only the read-only pattern tables, so one instance is safely
// shared across concurrent requests.
type PostProcessor struct{}

// NewPostProcessor creates the extraction engine.
func NewPostProcessor() *PostProcessor {
	return &PostProcessor{}
}

// Process reconciles the provider output into a single ExtractionResult.
// Stage order is fixed: field extractors, then the classifier (which needs
// the resolved merchant), then confidence fusion. The same input always
// produces the same result.
func (p *PostProcessor) Process(ocr *docai.RawOcrOutput) *ExtractionResult {
	hints := CollectHints(ocr.Entities)

	merchant := p.ExtractMerchant(ocr.FullText, hints.Merchant)
	rfc := p.ExtractRFC(ocr.FullText, hints.RFC)
	amount := p.ExtractAmount(ocr.FullText, hints.Total)
	date := p.ExtractDate(ocr.FullText, hints.Date)

	merchantName := ""
	if merchant.Found() {
		merchantName = *merchant.Value
	}
	category := p.SuggestCategory(merchantName, ocr.FullText)

	overall := FuseConfidence(
		merchant.Confidence,
		rfc.Confidence,
		amount.Confidence,
		date.Confidence,
		category.Confidence,
	)

	return &ExtractionResult{
		Merchant:          merchant,
		RFC:               rfc,
		TotalAmount:       amount,
		Date:              date,
		Category:          category,
		OverallConfidence: overall,
		ProcessingQuality: QualityFor(overall),
	}
}
