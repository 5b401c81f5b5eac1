package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/redteam/internal/registry"
)

var detectorsCmd = &cobra.Command{
	Use:   "detectors",
	Short: "List supported detectors",
	Long: `List the detectors supported by the configured detectors file.

An empty list usually means the detectors file is missing or malformed;
the path comes from run.detectors_path in the config.`,
	RunE: runDetectorsCmd,
}

func runDetectorsCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	reg := registry.New(cfg.Run.DetectorsPath, logger)

	supported := reg.ListSupported()
	if len(supported) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no detectors configured (checked %s)\n", cfg.Run.DetectorsPath)
		return nil
	}

	for _, name := range supported {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
