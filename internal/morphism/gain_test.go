package morphism

import (
	"math"
	"testing"

	"github.com/ppiankov/vkm/internal/config"
	"github.com/ppiankov/vkm/internal/model"
)

func TestInformationGain_InRange(t *testing.T) {
	cases := []struct {
		name string
		from model.Patch
		to   model.Patch
	}{
		{"empty to empty", patchWithFacts("p1"), patchWithFacts("p2")},
		{"empty to many", patchWithFacts("p1"), patchWithFacts("p2",
			fact("a", 1), fact("b", 1), fact("c", 1), fact("d", 1), fact("e", 1),
			fact("f", 1), fact("g", 1), fact("h", 1), fact("i", 1), fact("j", 1),
			fact("k", 1), fact("l", 1))},
		{"mass removal", patchWithFacts("p1", fact("a", 0.9), fact("b", 0.9)), patchWithFacts("p2")},
		{"confidence swing", patchWithFacts("p1", fact("a", 0.0)), patchWithFacts("p2", fact("a", 1.0))},
	}

	for _, tc := range cases {
		m := Compute(tc.from, tc.to, Options{MotiveCounts: &MotiveCounts{From: 0, To: 100}})
		if m.InformationGain < 0 || m.InformationGain > 1 {
			t.Errorf("%s: gain %f out of [0,1]", tc.name, m.InformationGain)
		}
	}
}

// Scenario C's scoring half: a single shared fact moving 0.6 -> 0.9
// contributes a confidence score of 0.3.
func TestInformationGain_ConfidenceComponent(t *testing.T) {
	from := patchWithFacts("p1", fact("f1", 0.6))
	to := patchWithFacts("p2", fact("f1", 0.9))

	score := confidenceDelta(from, to)
	if math.Abs(score-0.3) > 1e-9 {
		t.Errorf("expected confidence score 0.3, got %f", score)
	}

	// Only the confidence term contributes: 0.3 weight * 0.3 score.
	m := Compute(from, to, Options{})
	if math.Abs(m.InformationGain-0.09) > 1e-9 {
		t.Errorf("expected gain 0.09, got %f", m.InformationGain)
	}
}

func TestInformationGain_NegativeDeltasIgnored(t *testing.T) {
	from := patchWithFacts("p1", fact("f1", 0.9), fact("f2", 0.5))
	to := patchWithFacts("p2", fact("f1", 0.1), fact("f2", 0.7))

	// Only f2's +0.2 counts, averaged over 2 shared facts.
	score := confidenceDelta(from, to)
	if math.Abs(score-0.1) > 1e-9 {
		t.Errorf("expected 0.1, got %f", score)
	}
}

func TestInformationGain_EmptyFromUsesFixedDenominator(t *testing.T) {
	from := patchWithFacts("p1")
	to := patchWithFacts("p2", fact("a", 0.5), fact("b", 0.5))

	m := Compute(from, to, Options{})
	// new_facts_score = 2/10, weighted by 0.3.
	if math.Abs(m.InformationGain-0.06) > 1e-9 {
		t.Errorf("expected gain 0.06, got %f", m.InformationGain)
	}
}

func TestInformationGain_ReorgPenalty(t *testing.T) {
	from := patchWithFacts("p1", fact("a", 0.5), fact("b", 0.5))
	to := patchWithFacts("p2", fact("a", 0.5), fact("b", 0.5))
	to.Edges = []model.Edge{
		{ID: "e1", From: "a", To: "b", Relation: model.RelationSupports, Strength: 0.5},
		{ID: "e2", From: "b", To: "a", Relation: model.RelationCauses, Strength: 0.5},
	}

	// No additions, no confidence movement, 5 motives gained: the motive
	// term is 0.4 and the penalty 0.1 * 2/10 = 0.02.
	m := Compute(from, to, Options{MotiveCounts: &MotiveCounts{From: 0, To: 5}})
	if math.Abs(m.InformationGain-0.38) > 1e-9 {
		t.Errorf("expected gain 0.38, got %f", m.InformationGain)
	}
}

func TestInformationGain_MotiveCountsOptional(t *testing.T) {
	from := patchWithFacts("p1", fact("a", 0.5))
	to := patchWithFacts("p2", fact("a", 0.5))

	m := Compute(from, to, Options{})
	if m.InformationGain != 0 {
		t.Errorf("expected zero gain without motive counts, got %f", m.InformationGain)
	}
}

func TestInformationGain_WeightsOverridable(t *testing.T) {
	from := patchWithFacts("p1", fact("a", 0.5))
	to := patchWithFacts("p2", fact("a", 0.5), fact("b", 0.5))

	weights := config.GainWeights{NewFacts: 1.0, Confidence: 0, Motives: 0, ReorgPenalty: 0}
	m := Compute(from, to, Options{Weights: &weights})

	// new_facts_score = min(1, 1/1) = 1, fully weighted.
	if math.Abs(m.InformationGain-1.0) > 1e-9 {
		t.Errorf("expected gain 1.0 with custom weights, got %f", m.InformationGain)
	}
}

func TestInformationGain_ZeroWeightsDisableScoring(t *testing.T) {
	from := patchWithFacts("p1", fact("a", 0.2))
	to := patchWithFacts("p2", fact("a", 0.9), fact("b", 0.5))

	// An explicit all-zero override must be honored, not treated as unset.
	weights := config.GainWeights{}
	m := Compute(from, to, Options{Weights: &weights, MotiveCounts: &MotiveCounts{From: 0, To: 5}})
	if m.InformationGain != 0 {
		t.Errorf("expected zero gain with zero weights, got %f", m.InformationGain)
	}

	// The same diff with nil weights falls back to the defaults.
	m = Compute(from, to, Options{MotiveCounts: &MotiveCounts{From: 0, To: 5}})
	if m.InformationGain == 0 {
		t.Error("expected nonzero gain with default weights")
	}
}
