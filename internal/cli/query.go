package cli

import (
	"github.com/spf13/cobra"

	"github.com/agenttools/vecdb/pkg/core"
)

var (
	queryCollection string
	queryText       string
	queryTopK       int
)

type queryEnvelope struct {
	Status  string                `json:"status"`
	Results []core.ScoredDocument `json:"results"`
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query a collection for similar documents",
	Long: `Embed the query text and return the most similar documents from the
named collection, ordered by descending cosine similarity.

Example:
  vecdb query --collection notes --query "hello" --n-results 3`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryCollection, "collection", "", "collection name (required)")
	queryCmd.Flags().StringVar(&queryText, "query", "", "query text (required)")
	queryCmd.Flags().IntVar(&queryTopK, "n-results", 0, "number of results (default from config)")
	_ = queryCmd.MarkFlagRequired("collection")
	_ = queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	topK := cfg.Query.TopK
	if cmd.Flags().Changed("n-results") {
		topK = queryTopK
	}

	store, err := openStore(cmd)
	if err != nil {
		printError(err)
		return nil
	}
	defer func() { _ = store.Close() }()

	results, err := store.Query(cmd.Context(), queryCollection, queryText, topK)
	if err != nil {
		printError(err)
		return nil
	}

	printJSON(queryEnvelope{Status: "success", Results: results})
	return nil
}
