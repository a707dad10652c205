package morphism

import (
	"sort"

	"github.com/ppiankov/vkm/internal/model"
)

// FindPath searches the directed graph of morphisms (from_patch → to_patch)
// for any path between two patches. Returns the patch-ID path including both
// endpoints, and false when no path exists — never an error. The visited set
// is scoped to this call and shared across all branches of the search, so
// cycles terminate.
func FindPath(fromID, toID string, morphisms []model.Morphism) ([]string, bool) {
	if fromID == toID {
		return []string{fromID}, true
	}

	adj := make(map[string][]string)
	for _, m := range morphisms {
		adj[m.FromPatch] = append(adj[m.FromPatch], m.ToPatch)
	}
	for id := range adj {
		sort.Strings(adj[id])
	}

	visited := map[string]bool{fromID: true}
	parent := make(map[string]string)
	queue := []string{fromID}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, next := range adj[node] {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = node

			if next == toID {
				return rebuildPath(parent, fromID, toID), true
			}
			queue = append(queue, next)
		}
	}

	return nil, false
}

func rebuildPath(parent map[string]string, fromID, toID string) []string {
	var reversed []string
	for node := toID; ; node = parent[node] {
		reversed = append(reversed, node)
		if node == fromID {
			break
		}
	}

	path := make([]string, len(reversed))
	for i, node := range reversed {
		path[len(reversed)-1-i] = node
	}
	return path
}
