package extract

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/vkm/internal/model"
	"github.com/ppiankov/vkm/internal/morphism"
)

func TestHeuristicExtractor_KeywordMatch(t *testing.T) {
	e := NewHeuristicExtractor()

	text := "Laksa originated in the port cities of Southeast Asia. " +
		"The weather was pleasant that day. " +
		"The dish spread because traders carried it along the coast."

	facts, err := e.ExtractFacts(context.Background(), text)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if len(facts) != 2 {
		t.Fatalf("expected 2 facts, got %d: %+v", len(facts), facts)
	}
	if facts[0].Topic != "origin" {
		t.Errorf("expected origin topic, got %q", facts[0].Topic)
	}
	if facts[1].Topic != "causation" {
		t.Errorf("expected causation topic, got %q", facts[1].Topic)
	}
}

func TestHeuristicExtractor_StripsHTML(t *testing.T) {
	e := NewHeuristicExtractor()

	htmlDoc := `<html><body>
		<script>var x = "ignored originated text";</script>
		<p>Laksa originated in coastal trading ports of the region.</p>
	</body></html>`

	facts, err := e.ExtractFacts(context.Background(), htmlDoc)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(facts) != 1 {
		t.Fatalf("expected 1 fact, got %d: %+v", len(facts), facts)
	}
}

func TestHeuristicExtractor_EmptyInput(t *testing.T) {
	e := NewHeuristicExtractor()

	facts, err := e.ExtractFacts(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error for empty input, got %v", err)
	}
	if len(facts) != 0 {
		t.Errorf("expected no facts, got %d", len(facts))
	}
}

func TestNormalize_Defaults(t *testing.T) {
	raw := []RawFact{
		{Text: "valid", Confidence: 0.9, Topic: "history"},
		{Text: "bad confidence", Confidence: 1.7},
		{Text: "negative", Confidence: -0.2, Topic: "x"},
		{Text: "   "},
	}

	out := Normalize(raw)
	if len(out) != 3 {
		t.Fatalf("expected blank text dropped, got %d facts", len(out))
	}
	if out[0].Confidence != 0.9 || out[0].Topic != "history" {
		t.Errorf("valid fact altered: %+v", out[0])
	}
	if out[1].Confidence != DefaultConfidence || out[1].Topic != DefaultTopic {
		t.Errorf("expected defaults substituted, got %+v", out[1])
	}
	if out[2].Confidence != DefaultConfidence {
		t.Errorf("expected default for negative confidence, got %+v", out[2])
	}
}

func TestBuildPatch(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := []RawFact{
		{Text: "claim one", Confidence: 0.8, Topic: "a"},
		{Text: "claim two"},
	}

	p := BuildPatch("channel", "src-1", raw, now)

	if p.Source != "channel" || p.SourceID != "src-1" {
		t.Errorf("source not carried: %+v", p)
	}
	if len(p.Facts) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(p.Facts))
	}
	if p.Facts[0].ID == p.Facts[1].ID {
		t.Error("fact ids must be unique")
	}
	if p.Facts[1].Confidence != DefaultConfidence || p.Facts[1].Topic != DefaultTopic {
		t.Errorf("sparse fact not normalized: %+v", p.Facts[1])
	}
	if !p.Facts[0].ValidFrom.Equal(now) {
		t.Errorf("valid_from not stamped: %+v", p.Facts[0])
	}
}

func TestBuildPatch_StableFactIDs(t *testing.T) {
	raw := []RawFact{
		{Text: "water boils at 100C", Confidence: 0.9, Topic: "physics"},
		{Text: "ice melts at 0C", Confidence: 0.8, Topic: "physics"},
	}

	p1 := BuildPatch("doc.txt", "doc", raw, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	p2 := BuildPatch("doc.txt", "doc", raw, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))

	for i := range p1.Facts {
		if p1.Facts[i].ID != p2.Facts[i].ID {
			t.Errorf("fact %d: id changed across runs: %s vs %s", i, p1.Facts[i].ID, p2.Facts[i].ID)
		}
	}

	// The same claims under a different source identity are different facts.
	p3 := BuildPatch("other.txt", "other", raw, time.Now())
	if p3.Facts[0].ID == p1.Facts[0].ID {
		t.Error("fact ids must differ across sources")
	}

	m := morphism.Compute(p1, p2, morphism.Options{})
	if m.Type != model.MorphismTransition {
		t.Errorf("re-extracting identical claims should diff as transition, got %s", m.Type)
	}
	if len(m.Operations) != 0 {
		t.Errorf("expected no operations, got %d: %+v", len(m.Operations), m.Operations)
	}
}

func TestBuildPatch_ConfidenceChangeDiffsAsRefinement(t *testing.T) {
	now := time.Now()
	p1 := BuildPatch("doc.txt", "doc", []RawFact{
		{Text: "water boils at 100C", Confidence: 0.6, Topic: "physics"},
	}, now)
	p2 := BuildPatch("doc.txt", "doc", []RawFact{
		{Text: "water boils at 100C", Confidence: 0.9, Topic: "physics"},
	}, now.Add(time.Hour))

	m := morphism.Compute(p1, p2, morphism.Options{})
	if m.Type != model.MorphismRefinement {
		t.Errorf("expected refinement, got %s", m.Type)
	}
	if len(m.Operations) != 1 || m.Operations[0].Kind != model.OpUpdateConfidence {
		t.Errorf("expected one update-confidence op, got %+v", m.Operations)
	}
}

func TestBuildPatch_RepeatedClaimCollapses(t *testing.T) {
	raw := []RawFact{
		{Text: "claim one", Confidence: 0.5, Topic: "a"},
		{Text: "claim one", Confidence: 0.9, Topic: "a"},
	}

	p := BuildPatch("doc.txt", "doc", raw, time.Now())
	if len(p.Facts) != 1 {
		t.Fatalf("expected repeated claim collapsed to 1 fact, got %d", len(p.Facts))
	}
	if p.Facts[0].Confidence != 0.9 {
		t.Errorf("expected last occurrence kept, got %+v", p.Facts[0])
	}
}

func TestParseFactArray_ToleratesProse(t *testing.T) {
	reply := "Here are the claims:\n```json\n" +
		`[{"text":"a","confidence":0.7,"topic":"x"}]` + "\n```\nDone."

	facts, err := parseFactArray(reply)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(facts) != 1 || facts[0].Text != "a" {
		t.Errorf("unexpected parse result: %+v", facts)
	}
}

func TestParseFactArray_NoArray(t *testing.T) {
	if _, err := parseFactArray("no json here"); err == nil {
		t.Error("expected error for missing array")
	}
}
