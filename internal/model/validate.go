package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Violation describes one failed invariant.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationReport lists every violated invariant of a patch. Violations are
// reported, never silently repaired; the caller decides whether to reject.
type ValidationReport struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
}

func (r *ValidationReport) add(code, format string, args ...interface{}) {
	r.Violations = append(r.Violations, Violation{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// ValidatePatch checks every structural invariant of a patch: unique IDs,
// edge endpoints resolving to facts in the same patch, value ranges, at most
// one embedding per fact, and consistent vector lengths.
func ValidatePatch(p Patch) ValidationReport {
	report := ValidationReport{}
	fieldCheck := validator.New()

	if err := fieldCheck.Struct(p); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				report.add("field", "patch field %s violates %s", fe.Namespace(), fe.Tag())
			}
		}
	}

	factIDs := make(map[string]bool, len(p.Facts))
	for _, f := range p.Facts {
		if err := fieldCheck.Struct(f); err != nil {
			if errs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range errs {
					report.add("field", "fact %q field %s violates %s", f.ID, fe.Field(), fe.Tag())
				}
			}
		}
		if factIDs[f.ID] {
			report.add("duplicate-fact", "duplicate fact id %q", f.ID)
		}
		factIDs[f.ID] = true
	}

	edgeIDs := make(map[string]bool, len(p.Edges))
	for _, e := range p.Edges {
		if err := fieldCheck.Struct(e); err != nil {
			if errs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range errs {
					report.add("field", "edge %q field %s violates %s", e.ID, fe.Field(), fe.Tag())
				}
			}
		}
		if edgeIDs[e.ID] {
			report.add("duplicate-edge", "duplicate edge id %q", e.ID)
		}
		edgeIDs[e.ID] = true

		if !e.Relation.Valid() {
			report.add("bad-relation", "edge %q has unknown relation %q", e.ID, e.Relation)
		}
		if e.From != "" && !factIDs[e.From] {
			report.add("dangling-edge", "edge %q references missing fact %q", e.ID, e.From)
		}
		if e.To != "" && !factIDs[e.To] {
			report.add("dangling-edge", "edge %q references missing fact %q", e.ID, e.To)
		}
	}

	embeddingIDs := make(map[string]bool, len(p.Embeddings))
	embedded := make(map[string]bool, len(p.Embeddings))
	vectorLen := -1
	for _, em := range p.Embeddings {
		if embeddingIDs[em.ID] {
			report.add("duplicate-embedding", "duplicate embedding id %q", em.ID)
		}
		embeddingIDs[em.ID] = true

		if !factIDs[em.ClaimRef] {
			report.add("dangling-embedding", "embedding %q references missing fact %q", em.ID, em.ClaimRef)
		}
		if embedded[em.ClaimRef] {
			report.add("multiple-embeddings", "fact %q has more than one embedding", em.ClaimRef)
		}
		embedded[em.ClaimRef] = true

		if vectorLen == -1 {
			vectorLen = len(em.Vector)
		} else if len(em.Vector) != vectorLen {
			report.add("vector-length", "embedding %q has length %d, expected %d", em.ID, len(em.Vector), vectorLen)
		}
	}

	report.Valid = len(report.Violations) == 0
	return report
}
