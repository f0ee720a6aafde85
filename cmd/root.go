package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/primer/internal/config"
	"github.com/ziadkadry99/primer/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "primer",
	Short: "A tutorial library that imports markdown from GitHub",
	Long: `Primer imports markdown tutorials from GitHub, either a single file or a
whole folder organized into chapters, and serves them through a JSON API,
a reading UI and an MCP server for AI agents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logCfg := config.DefaultConfig().Log
		if cfg, err := config.Load(cfgFile); err == nil {
			logCfg = cfg.Log
		}
		if verbose {
			logCfg.Level = "debug"
		}
		// Stdout carries MCP frames and command output.
		return logging.Configure(logCfg, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
