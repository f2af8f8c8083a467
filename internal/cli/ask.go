package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docqa/internal/adapter/retriever"
	"docqa/internal/app"
)

var (
	askDocID    string
	askQuestion string
	askTopK     int
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question about an indexed document",
	Long: `Answer a question with bullet points taken from the document's most
relevant passages, followed by the cited sources.

Examples:
  docqa ask -d DOC_ID -q "summarize this document"
  docqa ask -d DOC_ID -q "what is the refund policy?" -k 3 --json`,
	Args: cobra.NoArgs,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askDocID, "doc", "d", "", "document ID (required)")
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to ask (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of sources (default retrieve.top_k)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the answer as JSON")
	askCmd.MarkFlagRequired("doc")
	askCmd.MarkFlagRequired("question")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askQuestion == "" {
		return errors.New("question is required")
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

	topK := askTopK
	if topK <= 0 {
		topK = cfg.Retrieve.TopK
	}

	result, err := a.Answers.Ask(ctx, askDocID, askQuestion, topK)
	if err != nil {
		return err
	}

	if askJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(result.Answer)
	if len(result.Sources) > 0 {
		fmt.Printf("\nSources:\n")
		for _, src := range result.Sources {
			fmt.Printf("  [%d] chunk %d (distance %.4f)\n", src.Rank, src.ChunkIndex, src.Distance)
			fmt.Printf("      %s\n", retriever.Preview(src.Text, 120))
		}
	}
	return nil
}
