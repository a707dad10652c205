// Package cli wires the engine and its collaborators into the vkm command
// tree. All engine configuration flows through explicit config values; the
// CLI is the only layer that reads flags, environment, and config files.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"

	"github.com/ppiankov/vkm/internal/config"
	"github.com/ppiankov/vkm/internal/store"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vkm",
	Short: "vkm - versioned knowledge morphisms",
	Long: `vkm tracks how a body of extracted knowledge changes over time.

Each ingested document becomes an immutable patch: a snapshot of facts,
relations, and embeddings. Diffing two patches yields a morphism: a
classified, scored record of what changed and how much was learned.
Embedding-similarity clustering groups related claims into motives,
recurring concepts that persist across snapshots.

vkm records how knowledge changed; it does not judge what is true.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vkm v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.vkm/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".vkm"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match VKM_*
	viper.SetEnvPrefix("VKM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, config file, and environment into a Config.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds a console logger; verbose enables debug output.
func newLogger() arbor.ILogger {
	logger := arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
		Type:       models.LogWriterTypeConsole,
		TimeFormat: "15:04:05",
		TextOutput: true,
	})
	if verbose {
		return logger.WithLevelFromString("debug")
	}
	return logger.WithLevelFromString("warn")
}

// openStore opens the configured store backend. Callers own Close.
func openStore(cfg *config.Config, logger arbor.ILogger) (store.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil

	case "badger", "":
		path := cfg.Store.Path
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("find home directory: %w", err)
			}
			path = filepath.Join(home, ".vkm", "db")
		}
		return store.OpenBadger(path, logger)

	default:
		return nil, fmt.Errorf("unknown store backend: %s (supported: badger, memory)", cfg.Store.Backend)
	}
}
