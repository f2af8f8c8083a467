package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"docqa/internal/app"
	"docqa/internal/usecase"
)

var (
	reindexAll     bool
	reindexWorkers int
)

var reindexCmd = &cobra.Command{
	Use:   "reindex [DOC_ID]",
	Short: "Rebuild document indexes",
	Long: `Rebuild the chunk list and vector index of one document, or of every
document with --all. Run with --all after changing chunking, metric or
embedding settings.

Examples:
  docqa reindex 3f1c...      # Rebuild one document
  docqa reindex --all        # Rebuild every document`,
	Args: func(cmd *cobra.Command, args []string) error {
		if reindexAll && len(args) > 0 {
			return errors.New("DOC_ID cannot be combined with --all")
		}
		if !reindexAll && len(args) != 1 {
			return errors.New("requires a DOC_ID or --all")
		}
		return nil
	},
	RunE: runReindex,
}

func init() {
	reindexCmd.Flags().BoolVar(&reindexAll, "all", false, "rebuild every stored document")
	reindexCmd.Flags().IntVarP(&reindexWorkers, "workers", "w", 4, "documents rebuilt in parallel with --all")
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, args []string) error {
	a, err := app.Open(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !reindexAll {
		result, err := a.Docs.Reindex(ctx, args[0])
		if err != nil {
			return fmt.Errorf("reindex failed: %w", err)
		}
		fmt.Printf("%s: %s (%d chunks, dim %d)\n", result.DocID, result.Message, result.Chunks, result.EmbeddingDim)
		return nil
	}

	docs, err := a.Docs.List()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("No documents to reindex.")
	} else {
		ids := make([]string, len(docs))
		for i, d := range docs {
			ids[i] = d.ID
		}
		failures := reindexAllDocs(ctx, a.Docs, ids)
		if len(failures) > 0 {
			fmt.Printf("\nWarnings:\n")
			for _, f := range failures {
				fmt.Printf("  - %s\n", f)
			}
			return fmt.Errorf("%d of %d documents failed to reindex", len(failures), len(docs))
		}
	}

	// Record the settings the indexes now match.
	return a.RecordSettings(cfg)
}

func reindexAllDocs(ctx context.Context, docs *usecase.DocumentService, ids []string) []string {
	bar := newProgressBar(len(ids), "Reindexing")
	start := time.Now()

	var (
		mu        sync.Mutex
		processed int
		failures  []string
		chunks    int
	)

	workers := reindexWorkers
	if workers <= 0 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			result, err := docs.Reindex(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", id, err))
			} else {
				chunks += result.Chunks
			}
			processed++
			_ = bar.Set(processed)
			describeETA(bar, "Reindexing", start, processed, len(ids))
			return nil
		})
	}
	_ = g.Wait()

	fmt.Printf("\nReindex complete in %s:\n", formatDuration(time.Since(start)))
	fmt.Printf("  Documents:      %d\n", len(ids)-len(failures))
	fmt.Printf("  Chunks indexed: %d\n", chunks)
	return failures
}

