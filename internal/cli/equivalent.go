package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/vkm/internal/model"
	"github.com/ppiankov/vkm/internal/morphism"
	"github.com/ppiankov/vkm/internal/store"
)

var (
	equivTrials int
	equivSeed   int64
	equivYoneda bool
	equivJSON   bool
)

// equivalentCmd represents the equivalent command
var equivalentCmd = &cobra.Command{
	Use:   "equivalent <patch-id> <patch-id>",
	Short: "Test whether two patches are observationally equivalent",
	Long: `Equivalent probes two patches with a seeded series of randomized
observations (topic structure, confidence slices, edge counts) and reports
whether they agree often enough to be considered equivalent. The same seed
always produces the same verdict.

With --yoneda, the patches are instead compared by their neighborhoods in
the stored morphism graph: two patches are equivalent when the same
morphisms enter and leave them and their structural summaries match.

Example:
  vkm equivalent 1a2b3c 4d5e6f
  vkm equivalent 1a2b3c 4d5e6f --trials 5000 --seed 7
  vkm equivalent 1a2b3c 4d5e6f --yoneda`,
	Args: cobra.ExactArgs(2),
	RunE: runEquivalent,
}

func init() {
	rootCmd.AddCommand(equivalentCmd)

	equivalentCmd.Flags().IntVar(&equivTrials, "trials", 0, "number of probe trials override")
	equivalentCmd.Flags().Int64Var(&equivSeed, "seed", 0, "probe seed override")
	equivalentCmd.Flags().BoolVar(&equivYoneda, "yoneda", false, "compare morphism-graph neighborhoods instead of probing")
	equivalentCmd.Flags().BoolVar(&equivJSON, "json", false, "print the result as JSON")
}

func runEquivalent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if equivTrials > 0 {
		cfg.Equivalence.Trials = equivTrials
	}
	if equivSeed != 0 {
		cfg.Equivalence.Seed = equivSeed
	}

	logger := newLogger()
	st, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	a, err := st.GetPatch(args[0])
	if err != nil {
		return err
	}
	b, err := st.GetPatch(args[1])
	if err != nil {
		return err
	}

	if equivYoneda {
		morphisms, err := allMorphisms(st, a.ID, b.ID)
		if err != nil {
			return err
		}
		equivalent := morphism.YonedaEquivalent(a, b, morphisms, nil)
		if equivJSON {
			out, _ := json.Marshal(map[string]interface{}{"equivalent": equivalent, "method": "yoneda"})
			fmt.Println(string(out))
			return nil
		}
		if equivalent {
			fmt.Printf("patches %s and %s have equal neighborhoods\n", a.ID, b.ID)
		} else {
			fmt.Printf("patches %s and %s have different neighborhoods\n", a.ID, b.ID)
		}
		return nil
	}

	result := morphism.ObservationallyEquivalent(a, b, cfg.Equivalence)

	if equivJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	verdict := "NOT equivalent"
	if result.Equivalent {
		verdict = "equivalent"
	}
	fmt.Printf("patches %s and %s are %s\n", a.ID, b.ID, verdict)
	fmt.Printf("  %d/%d probes agreed (%.1f%%, need %.1f%%)\n",
		int(result.PassRate*float64(result.Trials)), result.Trials,
		result.PassRate*100, cfg.Equivalence.Confidence*100)
	return nil
}

// allMorphisms collects the morphisms touching any of the patches,
// deduplicated.
func allMorphisms(st store.Store, ids ...string) ([]model.Morphism, error) {
	seen := make(map[string]bool)
	var out []model.Morphism
	for _, id := range ids {
		ms, err := st.MorphismsForPatch(id)
		if err != nil {
			return nil, err
		}
		for _, m := range ms {
			if !seen[m.ID] {
				seen[m.ID] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}
