package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Data-drone/caterpillar/index"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print index size and schema summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		idx, err := index.Open(ctx, indexPath, index.DefaultOptions())
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()

		stats, err := idx.Stats(ctx)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}
		fmt.Printf("revision:    %d\n", stats.LatestRevision)
		fmt.Printf("frames:      %d\n", stats.TotalFrames)
		fmt.Printf("vocabulary:  %d terms\n", stats.VocabularySize)
		fmt.Println("fields:")
		for _, f := range stats.Fields {
			fmt.Printf("  %-16s %-18s indexed=%v stored=%v\n", f.Name, f.Kind, f.Indexed, f.Stored)
		}
		return nil
	},
}
