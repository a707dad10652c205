package morphism

import (
	"math"

	"github.com/ppiankov/vkm/internal/config"
	"github.com/ppiankov/vkm/internal/model"
)

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// informationGain scores how much a transition adds to the knowledge body:
// a weighted sum of a new-facts ratio, the average positive confidence
// movement over shared facts, and motive growth, minus a penalty for
// edge-only reorganization. The result is clamped to [0,1].
func informationGain(from, to model.Patch, delta model.Delta, w config.GainWeights, counts *MotiveCounts) float64 {
	var newFactsScore float64
	if len(from.Facts) > 0 {
		newFactsScore = math.Min(1, float64(delta.FactsAdded)/float64(len(from.Facts)))
	} else {
		newFactsScore = math.Min(1, float64(delta.FactsAdded)/10)
	}

	confidenceScore := confidenceDelta(from, to)

	var motivesScore float64
	if counts != nil {
		motivesScore = clamp01(float64(counts.To-counts.From) / 5)
	}

	var penalty float64
	if delta.FactsAdded == 0 && delta.EdgesAdded > 0 {
		penalty = w.ReorgPenalty * clamp01(float64(delta.EdgesAdded)/10)
	}

	return clamp01(w.NewFacts*newFactsScore + w.Confidence*confidenceScore + w.Motives*motivesScore - penalty)
}

// confidenceDelta averages the positive confidence movement over the facts
// shared between the two patches, clamped to [0,1].
func confidenceDelta(from, to model.Patch) float64 {
	toFacts := to.FactIDs()

	var sum float64
	var shared int
	for _, f := range from.Facts {
		if !toFacts[f.ID] {
			continue
		}
		shared++
		newFact, _ := to.FactByID(f.ID)
		if d := newFact.Confidence - f.Confidence; d > 0 {
			sum += d
		}
	}

	if shared == 0 {
		return 0
	}
	return clamp01(sum / float64(shared))
}
