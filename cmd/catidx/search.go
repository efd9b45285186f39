package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Data-drone/caterpillar/index"
	"github.com/Data-drone/caterpillar/internal/query"
	"github.com/Data-drone/caterpillar/internal/query/querystring"
)

var (
	searchAggregator string
	searchStart      int
	searchLimit      int
)

type searchHit struct {
	DocumentID int64             `json:"document_id"`
	Score      float64           `json:"score"`
	Fields     map[string]string `json:"fields"`
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Evaluate a query string and print ranked results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		idx, err := index.Open(ctx, indexPath, index.DefaultOptions())
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()

		pred, err := querystring.Parse(args[0])
		if err != nil {
			return fmt.Errorf("parse query: %w", err)
		}

		var aggregator query.Aggregator
		switch searchAggregator {
		case "sum", "":
			aggregator = query.SumAggregator
		case "max":
			aggregator = query.MaxAggregator
		default:
			return fmt.Errorf("unknown --aggregator %q: want sum or max", searchAggregator)
		}

		ranked, err := idx.Search(ctx, pred, aggregator, searchStart, searchLimit)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		hits := make([]searchHit, 0, len(ranked))
		seen := map[int64]bool{}
		for _, r := range ranked {
			docID, err := idx.DocumentForFrame(ctx, r.Key)
			if err != nil {
				return fmt.Errorf("resolve frame %d: %w", r.Key, err)
			}
			if seen[docID] {
				continue
			}
			seen[docID] = true
			fields, err := idx.Document(ctx, docID)
			if err != nil {
				return fmt.Errorf("load document %d: %w", docID, err)
			}
			hits = append(hits, searchHit{DocumentID: docID, Score: r.Score, Fields: fields})
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(hits)
		}
		for _, h := range hits {
			fmt.Printf("%.4f\tdoc=%d\t%v\n", h.Score, h.DocumentID, h.Fields)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchAggregator, "aggregator", "sum", "score aggregator: sum or max")
	searchCmd.Flags().IntVar(&searchStart, "start", 0, "result window offset")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "result window size")
}
