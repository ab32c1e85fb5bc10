package parser

import "github.com/finsight/receipt-pipeline/internal/extract"

// Field weights for receipt-level confidence. Missing fields contribute zero
// to their weighted term but stay in the denominator, so a sparse receipt
// scores low even when its resolved fields are individually strong. The
// weights are configurable defaults, not tuned values.
var fieldWeights = map[string]float64{
	extract.FieldTotal:    0.35,
	extract.FieldMerchant: 0.30,
	extract.FieldDate:     0.15,
	extract.FieldTax:      0.10,
	extract.FieldItems:    0.10,
}

// ScoreConfidence aggregates per-field confidences into a single receipt
// confidence in [0,1]. The combination is a fixed weighted sum, so adding a
// high-confidence field to an otherwise identical receipt never lowers the
// result.
func ScoreConfidence(fieldConfidence map[string]float64) float64 {
	score := 0.0
	for field, weight := range fieldWeights {
		score += weight * fieldConfidence[field]
	}
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}
