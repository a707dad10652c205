package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/vkm/internal/pipeline"
)

var (
	processSourceID  string
	processExtractor string
	processEmbedder  string
	processTimeout   time.Duration
	processJSON      bool
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <file>...",
	Short: "Ingest documents into versioned patches",
	Long: `Process extracts facts from each document, embeds them, and stores the
result as a new patch. When the store already holds a snapshot of the same
source, the new patch is diffed against it and the morphism is recorded.

The source ID defaults to the file name; reprocessing a file therefore
extends that source's history.

Example:
  vkm process notes.txt
  vkm process --source-id go-history v2.txt
  vkm process --extractor anthropic --embedder openai docs/*.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&processSourceID, "source-id", "", "source identity (single file only; default: file name)")
	processCmd.Flags().StringVar(&processExtractor, "extractor", "", "extraction provider (heuristic, anthropic)")
	processCmd.Flags().StringVar(&processEmbedder, "embedder", "", "embedding provider (local, openai, ollama)")
	processCmd.Flags().DurationVar(&processTimeout, "timeout", 5*time.Minute, "overall processing timeout")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "print results as JSON")
}

func runProcess(cmd *cobra.Command, args []string) error {
	if processSourceID != "" && len(args) > 1 {
		return fmt.Errorf("--source-id applies to a single file, got %d", len(args))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if processExtractor != "" {
		cfg.Extract.Provider = processExtractor
	}
	if processEmbedder != "" {
		cfg.Embed.Provider = processEmbedder
	}
	if cfg.Extract.Provider == "anthropic" && cfg.Extract.APIKey == "" {
		cfg.Extract.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.Embed.Provider == "openai" && cfg.Embed.APIKey == "" {
		cfg.Embed.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	logger := newLogger()
	st, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	p, err := pipeline.New(cfg, st, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	docs := make([]pipeline.Document, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		sourceID := processSourceID
		if sourceID == "" {
			sourceID = filepath.Base(path)
		}
		docs = append(docs, pipeline.Document{
			Source:   path,
			SourceID: sourceID,
			Text:     string(data),
		})
	}

	results := p.ProcessBatch(ctx, docs)

	var failed int
	for _, r := range results {
		if r.Err() != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Warning: %v\n", r.Err())
			continue
		}
		if processJSON {
			out, err := json.MarshalIndent(r.Result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Println(string(out))
			continue
		}
		printProcessResult(r.Source, r.Result)
	}

	if failed == len(results) {
		return fmt.Errorf("all %d documents failed", failed)
	}
	return nil
}

func printProcessResult(source string, res *pipeline.ProcessResult) {
	stats := res.Patch.Stats()
	fmt.Printf("✓ %s → patch %s\n", source, res.PatchID)
	fmt.Printf("  facts: %d  edges: %d  embeddings: %d  avg confidence: %.2f\n",
		stats.FactCount, stats.EdgeCount, stats.EmbeddingCount, stats.AverageConfidence)

	if len(res.Motives) > 0 {
		names := make([]string, 0, len(res.Motives))
		for _, m := range res.Motives {
			names = append(names, strings.Join(m.ConceptWords, "/"))
		}
		fmt.Printf("  motives: %s\n", strings.Join(names, ", "))
	}

	if res.Morphism != nil {
		fmt.Printf("  morphism: %s (%s, gain %.2f) from %s\n",
			res.Morphism.ID, res.Morphism.Type, res.Morphism.InformationGain, res.Morphism.FromPatch)
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}
