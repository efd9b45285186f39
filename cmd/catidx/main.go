// Command catidx is a thin CLI wrapper around the index package: create,
// add, commit, search, stats. It exercises no core invariant on its own —
// every operation it performs is a direct call into index/writer.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Data-drone/caterpillar/internal/telemetry"
)

var (
	indexPath       string
	jsonOutput      bool
	telemetryEnable bool
)

var rootCmd = &cobra.Command{
	Use:   "catidx",
	Short: "Transactional text-search index engine",
	Long: `catidx is a CLI wrapper around caterpillar's index package.

It opens or creates an on-disk index, stages documents, commits them
through the flush protocol, and evaluates queries against the result.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !telemetryEnable {
			return nil
		}
		shutdown, err := telemetry.Init(context.Background())
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		telemetryShutdown = shutdown
		return nil
	},
}

var telemetryShutdown func(context.Context) error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&indexPath, "path", "", "index directory (default: $CATIDX_PATH or ./.catidx)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&telemetryEnable, "telemetry", false, "emit flush/query metrics to stdout")

	viper.BindPFlag("path", rootCmd.PersistentFlags().Lookup("path"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
}

func initConfig() {
	viper.SetEnvPrefix("catidx")
	viper.AutomaticEnv()
	viper.SetDefault("path", "./.catidx")

	// Priority: --path flag > CATIDX_PATH env > default.
	if !rootCmd.PersistentFlags().Changed("path") {
		indexPath = viper.GetString("path")
	}
}

func main() {
	err := rootCmd.Execute()
	if telemetryShutdown != nil {
		_ = telemetryShutdown(context.Background())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
