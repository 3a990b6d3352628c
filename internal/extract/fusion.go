package extract

// Field weights for confidence fusion. They encode the observed relative
// reliability of each signal source and must not change: output parity
// depends on them. They sum to 1.0.
const (
	weightMerchant = 0.30
	weightRFC      = 0.20
	weightAmount   = 0.30
	weightDate     = 0.10
	weightCategory = 0.10
)

// Threshold above which processing counts as enhanced quality.
const enhancedThreshold = 0.7

// FuseConfidence blends the five field confidences into one overall score
// in [0,1]. Monotonic in every input.
func FuseConfidence(merchant, rfc, amount, date, category float64) float64 {
	return merchant*weightMerchant +
		rfc*weightRFC +
		amount*weightAmount +
		date*weightDate +
		category*weightCategory
}

// QualityFor labels a fused confidence score.
func QualityFor(overall float64) string {
	if overall > enhancedThreshold {
		return QualityEnhanced
	}
	return QualityStandard
}
