package claimtext

import (
	"github.com/MeKo-Tech/claimlens/internal/document"
)

// CalculateConfidence aggregates per-token confidences into document-level
// metrics. An empty token set yields all-zero metrics.
func (n *Normalizer) CalculateConfidence(tokens []document.Token) document.ConfidenceMetrics {
	if len(tokens) == 0 {
		return document.ConfidenceMetrics{}
	}

	m := document.ConfidenceMetrics{
		Min:             tokens[0].Confidence,
		Max:             tokens[0].Confidence,
		TotalDetections: len(tokens),
	}

	var sum float64
	for _, t := range tokens {
		sum += t.Confidence
		if t.Confidence < m.Min {
			m.Min = t.Confidence
		}
		if t.Confidence > m.Max {
			m.Max = t.Confidence
		}
		if t.Confidence < n.cfg.LowConfidenceThreshold {
			m.LowConfidenceCount++
		}
	}
	m.Average = sum / float64(len(tokens))

	return m
}
