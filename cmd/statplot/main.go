// Package main provides the CLI entry point for statplot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/statplot-go/pkg/statplot/config"
)

var (
	envFiles []string
	basePath string
	verbose  bool

	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "statplot",
		Short: "Render survey statistics as charts",
		Long: `statplot turns precomputed yearly statistics (means, medians, proportions
and their confidence bounds) into line, bar and box chart specifications,
and exports them as JSON, XLSX, PNG, SVG or HTML.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Environment files to load (default: .env if present)")
	rootCmd.PersistentFlags().StringVar(&basePath, "base-path", "", "Statistics store root (overrides "+config.EnvBasePath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(newRenderCmd(), newDownloadCmd(), newGroupsCmd())
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}
	if basePath != "" {
		cfg.BasePath = basePath
	}
	logger, err = cfg.Logger(verbose)
	if err != nil {
		return fmt.Errorf("logger setup failed: %w", err)
	}
	return nil
}
