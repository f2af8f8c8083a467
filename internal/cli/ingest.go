package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docqa/internal/adapter/fs"
	"docqa/internal/app"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest PATH...",
	Short: "Upload and index files",
	Long: `Upload files into the document store and index each one.
Directories are walked using ingest.includes and ingest.excludes; files
named explicitly are always uploaded.

Examples:
  docqa ingest report.pdf notes.txt   # Upload two files
  docqa ingest ./papers               # Upload every supported file below ./papers`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

type ingestFailure struct {
	path string
	err  string
}

func runIngest(cmd *cobra.Command, args []string) error {
	walker := fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes)
	files, err := walker.Collect(args)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No matching files found.")
		return nil
	}

	a, err := app.Open(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	bar := newProgressBar(len(files), "Ingesting")
	start := time.Now()

	var (
		ingested int
		chunks   int
		failures []ingestFailure
	)
	for i, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			failures = append(failures, ingestFailure{f.Path, err.Error()})
		} else {
			result, err := a.Docs.Ingest(ctx, filepath.Base(f.Path), data)
			switch {
			case err != nil:
				failures = append(failures, ingestFailure{f.Path, err.Error()})
			case !result.Indexed:
				ingested++
				failures = append(failures, ingestFailure{f.Path, *result.IndexError})
			default:
				ingested++
				chunks += *result.Chunks
				log.Debug("ingested file", zap.String("path", f.Path), zap.String("doc_id", result.DocID))
			}
		}

		_ = bar.Set(i + 1)
		describeETA(bar, "Ingesting", start, i+1, len(files))
	}

	fmt.Printf("\nIngest complete in %s:\n", formatDuration(time.Since(start)))
	fmt.Printf("  Files found:    %d\n", len(files))
	fmt.Printf("  Files uploaded: %d\n", ingested)
	fmt.Printf("  Chunks indexed: %d\n", chunks)

	if len(failures) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, f := range failures {
			fmt.Printf("  - %s: %s\n", f.path, f.err)
		}
	}
	return nil
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", description)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func describeETA(bar *progressbar.ProgressBar, description string, start time.Time, processed, total int) {
	if processed == 0 {
		return
	}
	elapsed := time.Since(start)
	rate := float64(processed) / elapsed.Seconds()
	if rate <= 0 {
		return
	}
	eta := time.Duration(float64(total-processed)/rate) * time.Second
	bar.Describe(fmt.Sprintf("[cyan]%s[reset] ETA: %s", description, formatDuration(eta)))
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
