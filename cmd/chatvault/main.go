// Package main implements the chatvault CLI, a thin wrapper over
// pkg/chatvault (spec.md §1, §6). Argument parsing, colorized output, and
// progress bars are explicitly out of scope for this engine's test
// surface: this CLI prints library results with minimal formatting.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/chatvault/internal/config"
	"github.com/fyrsmithlabs/chatvault/internal/logging"
)

var (
	configPath   string
	providerFlag string
	version      = "dev"

	cfg    *config.Config
	logger *logging.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chatvault",
	Short: "Stream, search, and export AI chat export files",
	Long: `chatvault ingests large AI chat export files (ChatGPT and Claude
formats) and exposes streaming read, relevance-ranked search, lookup, and
conversation export over them.`,
	Version:           version,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML or YAML config file")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "explicit provider (openai, claude); autodetected if omitted")

	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
}

// setup loads configuration and constructs the shared logger once per
// invocation, wiring internal/config.LoggingConfig into a real
// logging.Config the way internal/config's doc comments describe.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded

	logCfg := logging.NewDefaultConfig()
	level, err := logging.LevelFromString(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid logging.level %q: %w", cfg.Logging.Level, err)
	}
	logCfg.Level = level
	logCfg.Format = cfg.Logging.Format

	l, err := logging.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("constructing logger: %w", err)
	}
	logger = l
	return nil
}
