// medlar is the command-line front end: it runs optimization jobs
// described by YAML spec files and inspects their stored results.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/medlar-opt/medlar/internal/config"
)

var (
	cfgPath    string
	storageLoc string

	rootCmd = &cobra.Command{
		Use:   "medlar",
		Short: "Black-box hyperparameter optimization",
		Long: `medlar searches parameter spaces with an ensemble of strategies
driven by a multi-armed bandit, persisting every trial so runs can be
inspected and resumed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultConfigPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&storageLoc, "storage", "", "storage locator override, e.g. sqlite:///tuning.db")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(objectivesCmd)
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", cfgPath, err)
	}
	if storageLoc != "" {
		cfg.General.Storage = storageLoc
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
