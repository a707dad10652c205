package morphism

import (
	"math/rand"

	"github.com/ppiankov/vkm/internal/config"
	"github.com/ppiankov/vkm/internal/model"
)

// EquivalenceResult reports the outcome of an observational equivalence run.
type EquivalenceResult struct {
	Equivalent bool    `json:"equivalent"`
	PassRate   float64 `json:"pass_rate"`
	Trials     int     `json:"trials"`
}

// ObservationallyEquivalent probes both patches with a battery of
// pseudorandom structural queries and declares them equivalent when the
// fraction of agreeing probes meets the configured confidence. The probe
// sequence is fully determined by cfg.Seed, cfg.Trials, and cfg.Confidence:
// identical inputs always produce identical results. This is a contract,
// not a statistical estimate with run-to-run variance.
func ObservationallyEquivalent(a, b model.Patch, cfg config.EquivalenceConfig) EquivalenceResult {
	trials := cfg.Trials
	if trials <= 0 {
		trials = 1000
	}
	confidence := cfg.Confidence
	if confidence <= 0 {
		confidence = 0.95
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	passed := 0
	for i := 0; i < trials; i++ {
		switch rng.Intn(3) {
		case 0:
			// Distinct topic count.
			if len(a.TopicHistogram()) == len(b.TopicHistogram()) {
				passed++
			}
		case 1:
			// Facts above a pseudorandom confidence threshold in [0.5, 0.8].
			threshold := 0.5 + rng.Float64()*0.3
			if len(a.FactsAboveConfidence(threshold)) == len(b.FactsAboveConfidence(threshold)) {
				passed++
			}
		case 2:
			// Edge count.
			if len(a.Edges) == len(b.Edges) {
				passed++
			}
		}
	}

	rate := float64(passed) / float64(trials)
	return EquivalenceResult{
		Equivalent: rate >= confidence,
		PassRate:   rate,
		Trials:     trials,
	}
}
