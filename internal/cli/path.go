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
	pathChain bool
	pathJSON  bool
)

// pathCmd represents the path command
var pathCmd = &cobra.Command{
	Use:   "path <from-patch-id> <to-patch-id>",
	Short: "Find a morphism path between two patches",
	Long: `Path searches the stored morphism graph for a shortest directed path
from one patch to another. With --chain, the morphisms along the path are
composed into a single composite morphism whose information gain is the
capped sum of its parts.

Example:
  vkm path 1a2b3c 4d5e6f
  vkm path 1a2b3c 4d5e6f --chain`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)

	pathCmd.Flags().BoolVar(&pathChain, "chain", false, "compose the path into one composite morphism")
	pathCmd.Flags().BoolVar(&pathJSON, "json", false, "print the result as JSON")
}

func runPath(cmd *cobra.Command, args []string) error {
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

	fromID, toID := args[0], args[1]

	morphisms, err := reachableMorphisms(st, fromID)
	if err != nil {
		return err
	}

	path, ok := morphism.FindPath(fromID, toID, morphisms)
	if !ok {
		return fmt.Errorf("no morphism path from %s to %s", fromID, toID)
	}

	if pathChain && len(path) > 1 {
		segment, err := pathMorphisms(path, morphisms)
		if err != nil {
			return err
		}
		composite, err := morphism.Chain(segment)
		if err != nil {
			return fmt.Errorf("compose path: %w", err)
		}
		if pathJSON {
			out, err := json.MarshalIndent(composite, "", "  ")
			if err != nil {
				return fmt.Errorf("encode morphism: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}
		printMorphism(composite)
		return nil
	}

	if pathJSON {
		out, err := json.Marshal(map[string]interface{}{"path": path})
		if err != nil {
			return fmt.Errorf("encode path: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("path (%d hops):\n", len(path)-1)
	for i, id := range path {
		if i == 0 {
			fmt.Printf("  %s\n", id)
			continue
		}
		fmt.Printf("  → %s\n", id)
	}
	return nil
}

// reachableMorphisms walks the morphism graph outward from a patch and
// returns every morphism it can reach.
func reachableMorphisms(st store.Store, fromID string) ([]model.Morphism, error) {
	seenPatch := map[string]bool{fromID: true}
	seenMorphism := make(map[string]bool)
	queue := []string{fromID}
	var out []model.Morphism

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		ms, err := st.MorphismsForPatch(id)
		if err != nil {
			return nil, err
		}
		for _, m := range ms {
			if seenMorphism[m.ID] {
				continue
			}
			seenMorphism[m.ID] = true
			out = append(out, m)
			for _, next := range []string{m.FromPatch, m.ToPatch} {
				if !seenPatch[next] {
					seenPatch[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return out, nil
}

// pathMorphisms resolves consecutive patch pairs along a path to the
// morphisms connecting them.
func pathMorphisms(path []string, morphisms []model.Morphism) ([]model.Morphism, error) {
	byPair := make(map[[2]string]model.Morphism, len(morphisms))
	for _, m := range morphisms {
		byPair[[2]string{m.FromPatch, m.ToPatch}] = m
	}

	out := make([]model.Morphism, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		m, ok := byPair[[2]string{path[i-1], path[i]}]
		if !ok {
			return nil, fmt.Errorf("no morphism from %s to %s", path[i-1], path[i])
		}
		out = append(out, m)
	}
	return out, nil
}
