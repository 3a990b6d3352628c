// Package extract is the receipt data extraction and confidence-fusion
// engine. It reconciles the upstream provider's entities against text-level
// regex evidence and the pattern library, producing one value-plus-confidence
// pair per field and a fused overall score.
package extract

import (
	"time"

	"github.com/shopspring/decimal"
)

// FieldResult pairs an extracted value with a confidence score in [0,1].
// Value is nil exactly when nothing was found, in which case Confidence is
// 0.0. The one sanctioned exception is the category default ("other", 0.5).
type FieldResult[T any] struct {
	Value      *T      `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Found reports whether a value was extracted.
func (f FieldResult[T]) Found() bool { return f.Value != nil }

// found builds a populated FieldResult.
func found[T any](value T, confidence float64) FieldResult[T] {
	return FieldResult[T]{Value: &value, Confidence: confidence}
}

// absent builds an empty FieldResult with zero confidence.
func absent[T any]() FieldResult[T] {
	return FieldResult[T]{}
}

// Processing quality labels derived from the fused confidence.
const (
	QualityEnhanced = "enhanced"
	QualityStandard = "standard"
)

// ExtractionResult is the engine's output for one receipt. It is built once
// per scan and never mutated afterwards.
type ExtractionResult struct {
	Merchant    FieldResult[string]          `json:"merchant"`
	RFC         FieldResult[string]          `json:"rfc"`
	TotalAmount FieldResult[decimal.Decimal] `json:"totalAmount"`
	Date        FieldResult[time.Time]       `json:"date"`
	Category    FieldResult[string]          `json:"category"`

	OverallConfidence float64 `json:"overallConfidence"`
	ProcessingQuality string  `json:"processingQuality"`
}

// LineItem is one itemized line from the receipt. Items without both a
// description and an amount are dropped during hint collection.
type LineItem struct {
	Description string           `json:"description"`
	Quantity    int              `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
}
