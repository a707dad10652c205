package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ppiankov/vkm/internal/model"
	"github.com/ppiankov/vkm/internal/morphism"
	"github.com/ppiankov/vkm/internal/store"
)

var (
	statsSource bool
	statsLOD    int
	statsJSON   bool
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <patch-id|source-id>",
	Short: "Summarize a patch or a source's patch history",
	Long: `Stats summarizes a stored patch: fact, edge, and embedding counts,
average confidence, topic distribution, validation status, and the
patch's neighbors in the morphism graph.

With --source, the argument is a source ID and the output is that
source's patch history with the morphisms between snapshots.

With --lod, the patch is filtered to facts at or above the given level
of detail before summarizing.

Example:
  vkm stats 1a2b3c
  vkm stats 1a2b3c --lod 2
  vkm stats --source go-history`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsSource, "source", false, "treat the argument as a source ID")
	statsCmd.Flags().IntVar(&statsLOD, "lod", 0, "minimum level of detail to include")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()
	st, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if statsSource {
		return printSourceHistory(st, args[0])
	}

	p, err := st.GetPatch(args[0])
	if err != nil {
		return err
	}
	if statsLOD > 0 {
		p = p.AtLOD(statsLOD)
	}

	morphisms, err := st.MorphismsForPatch(args[0])
	if err != nil {
		return err
	}
	// Neighborhood is keyed by the stored ID even when LOD filtering
	// derived a new one.
	p.ID = args[0]
	neighborhood := morphism.ComputeNeighborhood(p, morphisms, nil)

	report := model.ValidatePatch(p)

	if statsJSON {
		out, err := json.MarshalIndent(map[string]interface{}{
			"patch_id":     args[0],
			"stats":        p.Stats(),
			"valid":        report.Valid,
			"neighborhood": neighborhood,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encode stats: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	stats := p.Stats()
	fmt.Printf("patch %s\n", args[0])
	fmt.Printf("  facts: %d  edges: %d  embeddings: %d\n",
		stats.FactCount, stats.EdgeCount, stats.EmbeddingCount)
	fmt.Printf("  average confidence: %.2f\n", stats.AverageConfidence)

	if len(stats.Topics) > 0 {
		topics := make([]string, 0, len(stats.Topics))
		for t := range stats.Topics {
			topics = append(topics, t)
		}
		sort.Strings(topics)
		fmt.Println("  topics:")
		for _, t := range topics {
			fmt.Printf("    %-16s %d\n", t, stats.Topics[t])
		}
	}

	if report.Valid {
		fmt.Println("  validation: ok")
	} else {
		fmt.Printf("  validation: %d violations\n", len(report.Violations))
		for _, v := range report.Violations {
			fmt.Printf("    [%s] %s\n", v.Code, v.Message)
		}
	}

	if len(neighborhood.Predecessors) > 0 {
		fmt.Printf("  predecessors: %v\n", neighborhood.Predecessors)
	}
	if len(neighborhood.Successors) > 0 {
		fmt.Printf("  successors: %v\n", neighborhood.Successors)
	}
	return nil
}

func printSourceHistory(st store.Store, sourceID string) error {
	ids, err := st.PatchesBySource(sourceID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no patches for source %s", sourceID)
	}

	if statsJSON {
		out, err := json.Marshal(map[string]interface{}{"source": sourceID, "patches": ids})
		if err != nil {
			return fmt.Errorf("encode history: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("source %s: %d snapshots\n", sourceID, len(ids))
	for i, id := range ids {
		fmt.Printf("  %s\n", id)
		if i+1 >= len(ids) {
			continue
		}
		ms, err := st.MorphismsForPatch(id)
		if err != nil {
			return err
		}
		for _, m := range ms {
			if m.FromPatch == id && m.ToPatch == ids[i+1] {
				fmt.Printf("    │ %s (gain %.2f)\n", m.Type, m.InformationGain)
				break
			}
		}
	}
	return nil
}
