package cluster

import (
	"sort"

	"github.com/ppiankov/vkm/internal/config"
	"github.com/ppiankov/vkm/internal/model"
)

// ConnectedComponents returns the maximal connected components of the graph
// as sorted ID slices, themselves sorted by first member. The traversal is
// an iterative BFS with an explicit queue; the visited set is scoped to this
// call, never shared or kept between searches.
func ConnectedComponents(g *Graph) [][]string {
	visited := make(map[string]bool, len(g.Nodes))
	var components [][]string

	for _, start := range g.Nodes {
		if visited[start] {
			continue
		}

		var component []string
		queue := []string{start}
		visited[start] = true

		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			component = append(component, node)

			for _, next := range g.Neighbors(node) {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		sort.Strings(component)
		components = append(components, component)
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i][0] < components[j][0]
	})
	return components
}

// Result holds the clusters found in a patch. Warning is set instead of an
// error when the patch simply has nothing to cluster.
type Result struct {
	Clusters [][]string
	Warning  string
}

// BySimilarity clusters a patch's embedded facts: similarity graph, connected
// components, singletons discarded. Permuting the patch's embedding list
// yields the same set of clusters.
func BySimilarity(p model.Patch, cfg config.ClusterConfig) Result {
	if len(p.Embeddings) == 0 {
		return Result{Warning: "patch has no embeddings to cluster"}
	}

	g := BuildSimilarityGraph(p.Embeddings, cfg.Threshold, cfg.Workers)

	var clusters [][]string
	for _, component := range ConnectedComponents(g) {
		if len(component) >= 2 {
			clusters = append(clusters, component)
		}
	}

	return Result{Clusters: clusters}
}
