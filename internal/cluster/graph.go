// Package cluster builds similarity graphs over a patch's embeddings and
// extracts connected components as candidate motives.
package cluster

import (
	"context"
	"sort"

	"github.com/ppiankov/vkm/internal/model"
	"github.com/ppiankov/vkm/internal/vectormath"
	"github.com/ppiankov/vkm/internal/worker"
)

// Graph is an undirected similarity graph over fact IDs. It is built fresh
// per call and never maintained incrementally.
type Graph struct {
	Nodes []string
	// Adj maps a fact ID to its neighbors and the similarity weight of
	// each edge. Entries are symmetric.
	Adj map[string]map[string]float64
}

type weightedEdge struct {
	a, b   string
	weight float64
}

// pairJob scores one chunk of the pairwise comparison set. Jobs share no
// mutable state; each returns its own edge list and the merge is a set
// union, so the result is independent of worker scheduling.
type pairJob struct {
	pairs      [][2]int
	embeddings []model.Embedding
	threshold  float64
}

type pairResult struct {
	edges []weightedEdge
}

func (r *pairResult) Err() error { return nil }

func (j *pairJob) Execute(ctx context.Context) worker.Result {
	res := &pairResult{}
	for _, pair := range j.pairs {
		ea := j.embeddings[pair[0]]
		eb := j.embeddings[pair[1]]

		sim, ok := vectormath.Cosine(ea.Vector, eb.Vector)
		if !ok {
			// Undefined similarity is below any threshold.
			continue
		}
		if sim >= j.threshold {
			res.edges = append(res.edges, weightedEdge{a: ea.ClaimRef, b: eb.ClaimRef, weight: sim})
		}
	}
	return res
}

// BuildSimilarityGraph compares every unordered pair of embeddings and adds
// an undirected edge where cosine similarity meets the threshold. This is
// O(n²) in the number of embedded facts; that is a documented scaling
// boundary of the engine, not a defect. The pairwise comparisons are split
// across a worker pool.
func BuildSimilarityGraph(embeddings []model.Embedding, threshold float64, workers int) *Graph {
	g := &Graph{
		Adj: make(map[string]map[string]float64, len(embeddings)),
	}
	for _, em := range embeddings {
		g.Nodes = append(g.Nodes, em.ClaimRef)
		if g.Adj[em.ClaimRef] == nil {
			g.Adj[em.ClaimRef] = make(map[string]float64)
		}
	}
	sort.Strings(g.Nodes)

	n := len(embeddings)
	if n < 2 {
		return g
	}

	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}

	if workers <= 0 {
		workers = 1
	}
	chunk := (len(pairs) + workers - 1) / workers

	pool := worker.NewPool(workers)
	pool.Start()
	for start := 0; start < len(pairs); start += chunk {
		end := start + chunk
		if end > len(pairs) {
			end = len(pairs)
		}
		pool.Submit(&pairJob{
			pairs:      pairs[start:end],
			embeddings: embeddings,
			threshold:  threshold,
		})
	}

	for _, res := range pool.Wait() {
		for _, e := range res.(*pairResult).edges {
			g.addEdge(e.a, e.b, e.weight)
		}
	}

	return g
}

func (g *Graph) addEdge(a, b string, weight float64) {
	if a == b {
		return
	}
	g.Adj[a][b] = weight
	g.Adj[b][a] = weight
}

// Neighbors returns the sorted neighbor IDs of a node.
func (g *Graph) Neighbors(id string) []string {
	out := make([]string, 0, len(g.Adj[id]))
	for n := range g.Adj[id] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// EdgeCount returns the number of undirected edges in the graph.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, neighbors := range g.Adj {
		total += len(neighbors)
	}
	return total / 2
}
