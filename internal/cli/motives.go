package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/vkm/internal/cluster"
	"github.com/ppiankov/vkm/internal/motive"
)

var (
	motivesThreshold float64
	motivesTopK      int
	motivesGraph     bool
	motivesJSON      bool
)

// motivesCmd represents the motives command
var motivesCmd = &cobra.Command{
	Use:   "motives <patch-id>",
	Short: "Cluster a patch's claims into motives",
	Long: `Motives clusters the patch's embeddings by cosine similarity and
summarizes each cluster: its concept words, centroid, and member claims.
Singleton clusters are dropped; a motive needs at least two claims.

With --graph, centroid similarities between motives are reported as
"analogous" relations.

Example:
  vkm motives 1a2b3c
  vkm motives 1a2b3c --threshold 0.8 --graph`,
	Args: cobra.ExactArgs(1),
	RunE: runMotives,
}

func init() {
	rootCmd.AddCommand(motivesCmd)

	motivesCmd.Flags().Float64Var(&motivesThreshold, "threshold", 0, "similarity threshold override")
	motivesCmd.Flags().IntVar(&motivesTopK, "top-k", 0, "concept words per motive override")
	motivesCmd.Flags().BoolVar(&motivesGraph, "graph", false, "report analogous relations between motives")
	motivesCmd.Flags().BoolVar(&motivesJSON, "json", false, "print motives as JSON")
}

func runMotives(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if motivesThreshold > 0 {
		cfg.Cluster.Threshold = motivesThreshold
	}
	if motivesTopK > 0 {
		cfg.Motive.TopK = motivesTopK
	}

	logger := newLogger()
	st, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	p, err := st.GetPatch(args[0])
	if err != nil {
		return err
	}

	result := cluster.BySimilarity(p, cfg.Cluster)
	if result.Warning != "" {
		fmt.Printf("no motives: %s\n", result.Warning)
		return nil
	}

	motives := motive.FromClusters(p, result.Clusters, cfg.Motive)

	if motivesJSON {
		out, err := json.MarshalIndent(motives, "", "  ")
		if err != nil {
			return fmt.Errorf("encode motives: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if len(motives) == 0 {
		fmt.Println("no motives: no cluster has two or more claims")
		return nil
	}

	fmt.Printf("%d motives in patch %s (threshold %.2f)\n\n", len(motives), p.ID, cfg.Cluster.Threshold)
	for _, m := range motives {
		fmt.Printf("motive %s\n", m.ID)
		fmt.Printf("  concepts: %s\n", strings.Join(m.ConceptWords, ", "))
		fmt.Printf("  claims (%d):\n", m.ClusterSize)
		for _, id := range m.MemberClaimIDs {
			if f, ok := p.FactByID(id); ok {
				fmt.Printf("    %s  %s\n", id, f.Text)
			}
		}
		fmt.Println()
	}

	if motivesGraph {
		edges := motive.BuildGraph(motives, cfg.Motive.GraphThreshold)
		if len(edges) == 0 {
			fmt.Println("no analogous motives")
			return nil
		}
		fmt.Println("analogous motives:")
		for _, e := range edges {
			fmt.Printf("  %s ~ %s  (strength %.2f)\n", e.From, e.To, e.Strength)
		}
	}

	return nil
}
