package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docqa/config"
	"docqa/internal/adapter/retriever"
	"docqa/internal/app"
)

func main() {
	file := flag.String("file", "", "Document to load (.pdf, .docx, .txt)")
	cfgPath := flag.String("config", "", "Config file (default ./docqa.yaml)")
	query := flag.String("q", "", "Question to test")
	topK := flag.Int("k", 6, "Number of sources")
	flag.Parse()

	if *file == "" || *query == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -file report.pdf -q \"question\"")
		fmt.Println("\nReports:")
		fmt.Println("  1. Extraction and indexing time")
		fmt.Println("  2. Retrieval latency and source distances")
		fmt.Println("  3. The extractive answer")
		os.Exit(1)
	}

	var (
		cfg *config.Config
		err error
	)
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Storage.Backend = config.BackendMemory
	cfg.Cache.Enabled = false

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	a, err := app.Open(cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx := context.Background()

	fmt.Println("RETRIEVAL BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Model: %s (%s)\n", cfg.Embedding.Model, cfg.Embedding.Provider)
	fmt.Printf("Chunking: size=%d overlap=%d metric=%s diversifier=%s\n",
		cfg.Chunking.Size, cfg.Chunking.Overlap, cfg.Retrieve.Metric, cfg.Retrieve.Diversifier)

	start := time.Now()
	ingest, err := a.Docs.Ingest(ctx, filepath.Base(*file), data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingest error: %v\n", err)
		os.Exit(1)
	}
	if !ingest.Indexed {
		fmt.Fprintf(os.Stderr, "Index error: %s\n", *ingest.IndexError)
		os.Exit(1)
	}
	fmt.Printf("Indexed %d chars into %d chunks (dim %d) in %s\n\n",
		ingest.TextLength, *ingest.Chunks, *ingest.EmbeddingDim, time.Since(start).Round(time.Millisecond))

	fmt.Printf("Query: \"%s\"\n", *query)
	fmt.Println(strings.Repeat("-", 70))

	start = time.Now()
	answer, err := a.Answers.Ask(ctx, ingest.DocID, *query, *topK)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ask error: %v\n", err)
		os.Exit(1)
	}
	latency := time.Since(start)

	fmt.Printf("Top %d sources:\n\n", len(answer.Sources))
	total := 0.0
	for _, src := range answer.Sources {
		total += src.Distance
		preview := strings.ReplaceAll(retriever.Preview(src.Text, 150), "\n", " ")
		fmt.Printf("%d. [%.4f] chunk %d\n", src.Rank, src.Distance, src.ChunkIndex)
		fmt.Printf("   %s\n\n", preview)
	}

	fmt.Println("Answer:")
	fmt.Println(answer.Answer)

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("METRICS:\n")
	fmt.Printf("  Ask latency:      %s\n", latency.Round(time.Microsecond))
	if len(answer.Sources) > 0 {
		fmt.Printf("  Average distance: %.4f\n", total/float64(len(answer.Sources)))
		fmt.Printf("  Top-1 distance:   %.4f\n", answer.Sources[0].Distance)
	}
}
