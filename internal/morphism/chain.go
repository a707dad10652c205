package morphism

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/vkm/internal/model"
)

// Chain composes an ordered list of morphisms into one composite morphism:
// operation lists concatenate in order, deltas sum component-wise, and the
// original list is retained for audit.
//
// Information gains are summed and clamped rather than re-derived from the
// endpoint patches. Summation can double-count information across
// overlapping reorganizations; it is kept because it preserves the chain as
// a faithful audit trail of its components.
func Chain(morphisms []model.Morphism) (model.Morphism, error) {
	if len(morphisms) == 0 {
		return model.Morphism{}, fmt.Errorf("cannot chain an empty morphism list")
	}

	for i := 1; i < len(morphisms); i++ {
		if morphisms[i-1].ToPatch != morphisms[i].FromPatch {
			return model.Morphism{}, fmt.Errorf(
				"morphisms do not compose: %s ends at %s but %s starts at %s",
				morphisms[i-1].ID, morphisms[i-1].ToPatch,
				morphisms[i].ID, morphisms[i].FromPatch)
		}
	}

	var ops []model.Operation
	var delta model.Delta
	var gain float64
	for _, m := range morphisms {
		ops = append(ops, m.Operations...)
		delta = delta.Add(m.Delta)
		gain += m.InformationGain
	}

	return model.Morphism{
		ID:              uuid.NewString(),
		FromPatch:       morphisms[0].FromPatch,
		ToPatch:         morphisms[len(morphisms)-1].ToPatch,
		Type:            model.MorphismComposite,
		Timestamp:       time.Now().UTC(),
		Operations:      ops,
		Delta:           delta,
		InformationGain: clamp01(gain),
		Chain:           append([]model.Morphism(nil), morphisms...),
	}, nil
}
