package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Data-drone/caterpillar/index"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Flush staged documents through the acquire-lock/build/append-commit protocol",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		idx, err := index.Open(ctx, indexPath, index.DefaultOptions())
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()

		pendingPath := filepath.Join(indexPath, pendingFileName)
		docs, err := readPending(pendingPath)
		if err != nil {
			return fmt.Errorf("read pending documents: %w", err)
		}
		if len(docs) == 0 {
			fmt.Println("nothing staged")
			return nil
		}

		w, err := idx.Writer(ctx)
		if err != nil {
			return fmt.Errorf("acquire writer: %w", err)
		}
		defer w.Close()

		for _, fields := range docs {
			if _, err := w.AddDocument(fields); err != nil {
				w.Rollback()
				return fmt.Errorf("stage document: %w", err)
			}
		}

		result, err := w.Commit(ctx)
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		if err := os.Remove(pendingPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear pending documents: %w", err)
		}

		fmt.Printf("revision %d: %d document(s) added, %d deleted, %d frame(s), %d term(s) folded\n",
			result.RevisionID, result.DocumentsAdded, result.DocumentsDeleted, result.FramesAdded, result.TermsFolded)
		return nil
	},
}

func readPending(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []map[string]any
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var fields map[string]any
		if err := json.Unmarshal(line, &fields); err != nil {
			return nil, err
		}
		docs = append(docs, fields)
	}
	return docs, scanner.Err()
}
