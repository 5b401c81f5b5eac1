// Package main implements the redteam CLI for running red-teaming
// sessions against a conversational agent.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/redteam/internal/config"
	"github.com/fyrsmithlabs/redteam/internal/logging"
)

var (
	// configPath is the YAML configuration file
	configPath string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "redteam",
	Short: "Red-team a conversational agent against risk categories",
	Long: `redteam generates behavioral requirements and adversarial test inputs
for a set of risk categories (detectors), drives an agent under test with
them, judges every conversation, and writes the results to a CSV table.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/redteam/config.yaml)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(detectorsCmd)
}

// setup loads configuration and builds the logger shared by subcommands.
func setup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, nil, err
	}

	level, err := logging.LevelFromString(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}

	logCfg := logging.NewDefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.Logging.Format

	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}
