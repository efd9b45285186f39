package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Data-drone/caterpillar/index"
)

// pendingFileName holds documents staged by `add` until the next `commit`.
// catidx has no cross-process staging.Workspace persistence of its own —
// the library's workspace lives in memory for one writer session — so the
// CLI bridges separate add/commit invocations with this scratch file.
const pendingFileName = ".pending.jsonl"

var addFieldPairs []string

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Stage a document for the next commit",
	Long: `Stage a document by field=value pairs.

Example:
  catidx add --path ./reviews --field body="great stay" --field region=EU --field rating=4

Staged documents accumulate until 'catidx commit' flushes them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := index.Open(context.Background(), indexPath, index.DefaultOptions())
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()

		fields, err := parseFieldPairs(addFieldPairs)
		if err != nil {
			return err
		}
		if err := appendPending(indexPath, fields); err != nil {
			return fmt.Errorf("stage document: %w", err)
		}
		fmt.Println("staged 1 document (pending commit)")
		return nil
	},
}

func init() {
	addCmd.Flags().StringArrayVar(&addFieldPairs, "field", nil, "field=value pair, repeatable (required)")
	addCmd.MarkFlagRequired("field")
}

func parseFieldPairs(pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --field %q: want name=value", pair)
		}
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			fields[name] = n
			continue
		}
		if b, err := strconv.ParseBool(value); err == nil {
			fields[name] = b
			continue
		}
		fields[name] = value
	}
	return fields, nil
}

func appendPending(path string, fields map[string]any) error {
	line, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(path, pendingFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}
