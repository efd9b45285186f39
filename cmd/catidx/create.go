package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Data-drone/caterpillar/index"
	"github.com/Data-drone/caterpillar/internal/schema"
)

var (
	createFieldSpecs []string
	createACID       bool
	createFrameSize  int
	createFoldCase   bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new index at --path",
	Long: `Create a new index directory and write its schema.

Each --field is "name:kind[:flags]" where kind is one of text,
categorical-text, numeric, boolean, identifier, and flags is a
comma-separated subset of indexed, stored (both default on).

Example:
  catidx create --path ./reviews \
    --field body:text \
    --field region:categorical-text \
    --field rating:numeric`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFieldSpecs(createFieldSpecs)
		if err != nil {
			return err
		}
		opts := index.DefaultOptions()
		opts.ACID = createACID
		opts.FrameSize = createFrameSize
		opts.FoldCase = createFoldCase
		for i := range fields {
			if fields[i].Kind == schema.Text {
				fields[i].FrameSize = createFrameSize
			}
		}

		idx, err := index.Create(context.Background(), indexPath, fields, opts)
		if err != nil {
			return fmt.Errorf("create index: %w", err)
		}
		defer idx.Close()
		fmt.Printf("created index at %s with %d field(s)\n", indexPath, len(fields))
		return nil
	},
}

func init() {
	createCmd.Flags().StringArrayVar(&createFieldSpecs, "field", nil, "field declaration, repeatable (required)")
	createCmd.Flags().BoolVar(&createACID, "acid", true, "require durable commits")
	createCmd.Flags().IntVar(&createFrameSize, "frame-size", 2, "default sentences per frame (0 = whole field)")
	createCmd.Flags().BoolVar(&createFoldCase, "fold-case", false, "fold case-variant terms in the vocabulary")
	createCmd.MarkFlagRequired("field")
}

func parseFieldSpecs(specs []string) ([]schema.Field, error) {
	fields := make([]schema.Field, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid --field %q: want name:kind[:flags]", spec)
		}
		f := schema.Field{
			Name:    parts[0],
			Kind:    schema.FieldKind(parts[1]),
			Indexed: true,
			Stored:  true,
		}
		if len(parts) == 3 {
			f.Indexed, f.Stored = false, false
			for _, flag := range strings.Split(parts[2], ",") {
				switch flag {
				case "indexed":
					f.Indexed = true
				case "stored":
					f.Stored = true
				default:
					return nil, fmt.Errorf("invalid --field %q: unknown flag %q", spec, flag)
				}
			}
		}
		fields = append(fields, f)
	}
	return fields, nil
}
