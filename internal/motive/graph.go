package motive

import (
	"github.com/ppiankov/vkm/internal/model"
	"github.com/ppiankov/vkm/internal/vectormath"
)

// GraphEdge is a directed "analogous" relation between two motives. Every
// unordered pair above the threshold produces edges in both directions, so
// the relation is symmetric in practice.
type GraphEdge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Relation string  `json:"relation"`
	Strength float64 `json:"strength"`
}

// BuildGraph relates motives whose centroid similarity meets the threshold.
func BuildGraph(motives []model.Motive, threshold float64) []GraphEdge {
	var edges []GraphEdge
	for i, a := range motives {
		for j, b := range motives {
			if i == j {
				continue
			}
			sim, ok := vectormath.Cosine(a.Centroid, b.Centroid)
			if !ok || sim < threshold {
				continue
			}
			edges = append(edges, GraphEdge{
				From:     a.ID,
				To:       b.ID,
				Relation: "analogous",
				Strength: sim,
			})
		}
	}
	return edges
}
