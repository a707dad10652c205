// Package motive turns similarity clusters into Motive records and relates
// motives to each other by centroid similarity.
package motive

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ppiankov/vkm/internal/cluster"
	"github.com/ppiankov/vkm/internal/config"
	"github.com/ppiankov/vkm/internal/model"
	"github.com/ppiankov/vkm/internal/vectormath"
)

var wordSplit = regexp.MustCompile(`\W+`)

// stopWords are excluded from concept-word counting.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	"with": true, "by": true, "from": true, "as": true, "that": true, "this": true,
	"it": true, "its": true, "has": true, "have": true, "had": true, "not": true,
	"no": true, "which": true, "who": true, "what": true, "when": true, "where": true,
}

// conceptWords lowercases and tokenizes the member texts on non-word
// boundaries, drops stop words, and returns the top-K tokens by descending
// frequency. Ties break by first-seen order.
func conceptWords(texts []string, topK int) []string {
	counts := make(map[string]int)
	var firstSeen []string

	for _, text := range texts {
		for _, token := range wordSplit.Split(strings.ToLower(text), -1) {
			if token == "" || stopWords[token] {
				continue
			}
			if counts[token] == 0 {
				firstSeen = append(firstSeen, token)
			}
			counts[token]++
		}
	}

	order := make(map[string]int, len(firstSeen))
	for i, token := range firstSeen {
		order[token] = i
	}

	tokens := append([]string(nil), firstSeen...)
	sort.SliceStable(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return order[tokens[i]] < order[tokens[j]]
	})

	if len(tokens) > topK {
		tokens = tokens[:topK]
	}
	return tokens
}

// FromCluster builds a Motive from a qualifying cluster (size >= 2) of fact
// IDs. Returns false when the cluster is too small or no member vectors are
// available for a centroid.
//
// The confidence is a coarse placeholder, not a statistically grounded
// score: 0.8 when at least one concept word was found, 0.3 otherwise.
func FromCluster(p model.Patch, memberIDs []string, cfg config.MotiveConfig) (model.Motive, bool) {
	if len(memberIDs) < 2 {
		return model.Motive{}, false
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = 5
	}

	var texts []string
	var vectors [][]float64
	for _, id := range memberIDs {
		if f, ok := p.FactByID(id); ok {
			texts = append(texts, f.Text)
		}
		if em, ok := p.EmbeddingForFact(id); ok {
			vectors = append(vectors, em.Vector)
		}
	}

	centroid, ok := vectormath.Centroid(vectors)
	if !ok {
		return model.Motive{}, false
	}

	words := conceptWords(texts, topK)
	confidence := 0.3
	if len(words) > 0 {
		confidence = 0.8
	}

	members := append([]string(nil), memberIDs...)
	sort.Strings(members)

	return model.Motive{
		ID:             uuid.NewString(),
		ConceptWords:   words,
		Centroid:       centroid,
		Confidence:     confidence,
		ClusterSize:    len(members),
		MemberClaimIDs: members,
	}, true
}

// FromClusters extracts a motive from every qualifying cluster. Callers
// that already hold a clustering result use this to avoid re-running the
// pairwise similarity pass.
func FromClusters(p model.Patch, clusters [][]string, cfg config.MotiveConfig) []model.Motive {
	var motives []model.Motive
	for _, members := range clusters {
		if m, ok := FromCluster(p, members, cfg); ok {
			motives = append(motives, m)
		}
	}
	return motives
}

// ExtractAll clusters a patch and extracts a motive from every qualifying
// cluster.
func ExtractAll(p model.Patch, clusterCfg config.ClusterConfig, motiveCfg config.MotiveConfig) []model.Motive {
	res := cluster.BySimilarity(p, clusterCfg)
	return FromClusters(p, res.Clusters, motiveCfg)
}
