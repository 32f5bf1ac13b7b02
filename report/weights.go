package report

import (
	"encoding/json"
	"os"
)

// Weights maps module table names to their share of the overall health
// score. The exact weighting is configuration, not code: REPORT_WEIGHTS in
// the environment holds a JSON object, e.g.
// {"risk_controls": 2, "customer_feedbacks": 0.5}; unlisted modules weigh 1.
type Weights map[string]float64

func (w Weights) For(module string) float64 {
	if v, ok := w[module]; ok && v > 0 {
		return v
	}
	return 1
}

// LoadWeights reads REPORT_WEIGHTS from the environment. Absent or
// malformed config falls back to equal weights.
func LoadWeights() Weights {
	raw := os.Getenv("REPORT_WEIGHTS")
	if raw == "" {
		return Weights{}
	}
	var w Weights
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return Weights{}
	}
	return w
}
