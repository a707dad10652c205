package morphism

import (
	"reflect"
	"testing"

	"github.com/ppiankov/vkm/internal/model"
)

func link(from, to string) model.Morphism {
	return model.Morphism{ID: from + "->" + to, FromPatch: from, ToPatch: to, Type: model.MorphismTransition}
}

func TestFindPath_Direct(t *testing.T) {
	path, found := FindPath("p1", "p2", []model.Morphism{link("p1", "p2")})
	if !found {
		t.Fatal("expected path")
	}
	if !reflect.DeepEqual(path, []string{"p1", "p2"}) {
		t.Errorf("unexpected path %v", path)
	}
}

func TestFindPath_MultiHop(t *testing.T) {
	morphisms := []model.Morphism{
		link("p1", "p2"),
		link("p2", "p3"),
		link("p3", "p4"),
	}

	path, found := FindPath("p1", "p4", morphisms)
	if !found {
		t.Fatal("expected path")
	}
	if !reflect.DeepEqual(path, []string{"p1", "p2", "p3", "p4"}) {
		t.Errorf("unexpected path %v", path)
	}
}

func TestFindPath_NoPath(t *testing.T) {
	morphisms := []model.Morphism{link("p1", "p2"), link("p3", "p4")}

	if _, found := FindPath("p1", "p4", morphisms); found {
		t.Error("expected no path across disconnected components")
	}
	// Morphisms are directed; no path against the arrow.
	if _, found := FindPath("p2", "p1", morphisms); found {
		t.Error("expected no reverse path")
	}
}

func TestFindPath_CycleTerminates(t *testing.T) {
	morphisms := []model.Morphism{
		link("p1", "p2"),
		link("p2", "p3"),
		link("p3", "p1"), // cycle
	}

	if _, found := FindPath("p1", "p9", morphisms); found {
		t.Error("expected no path out of the cycle")
	}

	path, found := FindPath("p2", "p1", morphisms)
	if !found {
		t.Fatal("expected path around the cycle")
	}
	if !reflect.DeepEqual(path, []string{"p2", "p3", "p1"}) {
		t.Errorf("unexpected path %v", path)
	}
}

func TestFindPath_SameEndpoint(t *testing.T) {
	path, found := FindPath("p1", "p1", nil)
	if !found || !reflect.DeepEqual(path, []string{"p1"}) {
		t.Errorf("expected trivial path, got %v found=%v", path, found)
	}
}

func TestChain(t *testing.T) {
	m1 := link("p1", "p2")
	m1.Operations = []model.Operation{{Kind: model.OpAddFact, FactID: "f1"}}
	m1.Delta = model.Delta{FactsAdded: 1}
	m1.InformationGain = 0.6

	m2 := link("p2", "p3")
	m2.Operations = []model.Operation{{Kind: model.OpAddEdge, EdgeID: "e1"}}
	m2.Delta = model.Delta{EdgesAdded: 1}
	m2.InformationGain = 0.7

	composite, err := Chain([]model.Morphism{m1, m2})
	if err != nil {
		t.Fatalf("chain failed: %v", err)
	}

	if composite.Type != model.MorphismComposite {
		t.Errorf("expected composite, got %s", composite.Type)
	}
	if composite.FromPatch != "p1" || composite.ToPatch != "p3" {
		t.Errorf("wrong endpoints: %s -> %s", composite.FromPatch, composite.ToPatch)
	}
	if len(composite.Operations) != 2 ||
		composite.Operations[0].Kind != model.OpAddFact ||
		composite.Operations[1].Kind != model.OpAddEdge {
		t.Errorf("operations not concatenated in order: %+v", composite.Operations)
	}
	want := model.Delta{FactsAdded: 1, EdgesAdded: 1}
	if composite.Delta != want {
		t.Errorf("expected summed delta %+v, got %+v", want, composite.Delta)
	}
	// 0.6 + 0.7 clamps to 1.0.
	if composite.InformationGain != 1.0 {
		t.Errorf("expected clamped gain 1.0, got %f", composite.InformationGain)
	}
	if len(composite.Chain) != 2 || composite.Chain[0].ID != m1.ID {
		t.Errorf("chain not retained for audit: %+v", composite.Chain)
	}
}

func TestChain_RejectsNonComposable(t *testing.T) {
	if _, err := Chain([]model.Morphism{link("p1", "p2"), link("p9", "p3")}); err == nil {
		t.Error("expected error for non-composing morphisms")
	}
}

func TestChain_RejectsEmpty(t *testing.T) {
	if _, err := Chain(nil); err == nil {
		t.Error("expected error for empty chain")
	}
}
