package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openalpha/lob-core/pkg/config"
)

var configPath string

// NewRootCmd builds the lobctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lobctl",
		Short: "lobctl drives a single-instrument limit order book",
		Long: `lobctl is a standalone harness around the matching core: it opens one
book and lets you submit, cancel, and inspect orders from the terminal.`,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to a config file")

	root.AddCommand(
		newReplCmd(),
		newVersionCmd(),
	)
	return root
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
