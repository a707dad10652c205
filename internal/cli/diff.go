package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/vkm/internal/model"
	"github.com/ppiankov/vkm/internal/morphism"
	"github.com/ppiankov/vkm/internal/motive"
)

var (
	diffAuthor string
	diffReason string
	diffJSON   bool
	diffStore  bool
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <from-patch-id> <to-patch-id>",
	Short: "Diff two patches into a classified morphism",
	Long: `Diff computes the morphism between two stored patches: the operation
list that transforms one into the other, its classification (additive,
refinement, reorganization, refutation, or transition), and the
information gained by the transition.

Example:
  vkm diff 1a2b3c 4d5e6f
  vkm diff 1a2b3c 4d5e6f --reason "nightly re-crawl" --save`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVar(&diffAuthor, "author", "", "author recorded on the morphism")
	diffCmd.Flags().StringVar(&diffReason, "reason", "", "reason recorded on the morphism")
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "print the morphism as JSON")
	diffCmd.Flags().BoolVar(&diffStore, "save", false, "persist the morphism to the store")
}

func runDiff(cmd *cobra.Command, args []string) error {
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

	from, err := st.GetPatch(args[0])
	if err != nil {
		return err
	}
	to, err := st.GetPatch(args[1])
	if err != nil {
		return err
	}

	counts := morphism.MotiveCounts{
		From: len(motive.ExtractAll(from, cfg.Cluster, cfg.Motive)),
		To:   len(motive.ExtractAll(to, cfg.Cluster, cfg.Motive)),
	}
	m := morphism.Compute(from, to, morphism.Options{
		Author:       diffAuthor,
		Reason:       diffReason,
		Weights:      &cfg.Gain,
		MotiveCounts: &counts,
	})

	if diffStore {
		if err := st.StoreMorphism(m); err != nil {
			return fmt.Errorf("store morphism: %w", err)
		}
	}

	if diffJSON {
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return fmt.Errorf("encode morphism: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printMorphism(m)
	return nil
}

func printMorphism(m model.Morphism) {
	fmt.Printf("morphism %s\n", m.ID)
	fmt.Printf("  %s → %s\n", m.FromPatch, m.ToPatch)
	fmt.Printf("  type: %s\n", m.Type)
	fmt.Printf("  information gain: %.3f\n", m.InformationGain)
	fmt.Printf("  delta: +%d/-%d facts, +%d/-%d edges\n",
		m.Delta.FactsAdded, m.Delta.FactsRemoved, m.Delta.EdgesAdded, m.Delta.EdgesRemoved)

	if len(m.Operations) == 0 {
		fmt.Println("  operations: none (identical patches)")
		return
	}
	fmt.Printf("  operations (%d):\n", len(m.Operations))
	for _, op := range m.Operations {
		switch op.Kind {
		case model.OpUpdateConfidence:
			fmt.Printf("    %-18s %s  %.2f → %.2f\n", op.Kind, op.FactID, op.OldConfidence, op.NewConfidence)
		case model.OpAddEdge, model.OpRemoveEdge:
			fmt.Printf("    %-18s %s\n", op.Kind, op.EdgeID)
		default:
			fmt.Printf("    %-18s %s\n", op.Kind, op.FactID)
		}
	}
}
