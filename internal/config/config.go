package config

// Config is the complete vkm configuration. Every engine entry point takes
// the relevant section explicitly; nothing reads ambient process state.
//
// Hierarchy (highest to lowest priority):
//  1. CLI flags
//  2. Environment variables (VKM_*)
//  3. Config file (~/.vkm/config.yaml)
//  4. Defaults
type Config struct {
	Cluster     ClusterConfig     `yaml:"cluster" mapstructure:"cluster"`
	Motive      MotiveConfig      `yaml:"motive" mapstructure:"motive"`
	Gain        GainWeights       `yaml:"gain" mapstructure:"gain"`
	Equivalence EquivalenceConfig `yaml:"equivalence" mapstructure:"equivalence"`
	Extract     ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	Embed       EmbedConfig       `yaml:"embed" mapstructure:"embed"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
}

// ClusterConfig controls similarity clustering.
type ClusterConfig struct {
	// Threshold is the minimum cosine similarity for a graph edge.
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
	// Workers bounds the pairwise-comparison worker pool.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// MotiveConfig controls motive extraction.
type MotiveConfig struct {
	// TopK is the number of concept words kept per motive.
	TopK int `yaml:"top_k" mapstructure:"top_k"`
	// GraphThreshold is the minimum centroid similarity for an
	// "analogous" edge in the motive graph.
	GraphThreshold float64 `yaml:"graph_threshold" mapstructure:"graph_threshold"`
}

// GainWeights are the information-gain component weights. They are
// configuration, not constants; callers may override any of them.
type GainWeights struct {
	NewFacts   float64 `yaml:"new_facts" mapstructure:"new_facts"`
	Confidence float64 `yaml:"confidence" mapstructure:"confidence"`
	Motives    float64 `yaml:"motives" mapstructure:"motives"`
	// ReorgPenalty is subtracted (scaled by edge volume) when a morphism
	// adds edges without adding facts.
	ReorgPenalty float64 `yaml:"reorg_penalty" mapstructure:"reorg_penalty"`
}

// EquivalenceConfig controls observational equivalence testing.
type EquivalenceConfig struct {
	Seed   int64 `yaml:"seed" mapstructure:"seed"`
	Trials int   `yaml:"trials" mapstructure:"trials"`
	// Confidence is the fraction of probes that must agree.
	Confidence float64 `yaml:"confidence" mapstructure:"confidence"`
}

// ExtractConfig configures the fact-extraction collaborator.
type ExtractConfig struct {
	// Provider name: "heuristic", "anthropic", "" (heuristic)
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	// Timeout for API requests, seconds.
	Timeout   int `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// EmbedConfig configures the embedding collaborator.
type EmbedConfig struct {
	// Provider name: "openai", "ollama", "local", "" (disabled)
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	// Timeout for API requests, seconds.
	Timeout int `yaml:"timeout" mapstructure:"timeout"`
	// Dimensions is used only by the local provider.
	Dimensions int `yaml:"dimensions" mapstructure:"dimensions"`
	// RequestsPerSecond rate-limits embedding API calls.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// StoreConfig configures the persistence collaborator.
type StoreConfig struct {
	// Backend: "badger" or "memory"
	Backend string `yaml:"backend" mapstructure:"backend"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Cluster: ClusterConfig{
			Threshold: 0.75,
			Workers:   4,
		},
		Motive: MotiveConfig{
			TopK:           5,
			GraphThreshold: 0.6,
		},
		Gain: DefaultGainWeights(),
		Equivalence: EquivalenceConfig{
			Seed:       42,
			Trials:     1000,
			Confidence: 0.95,
		},
		Extract: ExtractConfig{
			Provider:  "heuristic",
			Timeout:   60,
			MaxTokens: 4096,
		},
		Embed: EmbedConfig{
			Provider:          "local",
			Model:             "text-embedding-3-small",
			Timeout:           30,
			Dimensions:        64,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Store: StoreConfig{
			Backend: "badger",
			Path:    "", // resolved to ~/.vkm/db by the CLI
		},
	}
}

// DefaultGainWeights returns the standard information-gain weights.
func DefaultGainWeights() GainWeights {
	return GainWeights{
		NewFacts:     0.3,
		Confidence:   0.3,
		Motives:      0.4,
		ReorgPenalty: 0.1,
	}
}
