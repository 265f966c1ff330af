package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	writeCollection string
	writeText       string
	writeMetadata   string
)

type writeEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a document to a collection",
	Long: `Embed the given text and append it as a new document under the named
collection, creating the collection on first use.

Example:
  vecdb write --collection notes --text "hello world" --metadata '{"source":"cli"}'`,
	RunE: runWrite,
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writeCollection, "collection", "", "collection name (required)")
	writeCmd.Flags().StringVar(&writeText, "text", "", "text content to write (required)")
	writeCmd.Flags().StringVar(&writeMetadata, "metadata", "", "JSON metadata object")
	_ = writeCmd.MarkFlagRequired("collection")
	_ = writeCmd.MarkFlagRequired("text")
}

func runWrite(cmd *cobra.Command, args []string) error {
	var metadata map[string]any
	if writeMetadata != "" {
		if err := json.Unmarshal([]byte(writeMetadata), &metadata); err != nil {
			printError(fmt.Errorf("invalid metadata JSON: %w", err))
			return nil
		}
	}

	store, err := openStore(cmd)
	if err != nil {
		printError(err)
		return nil
	}
	defer func() { _ = store.Close() }()

	id, err := store.Write(cmd.Context(), writeCollection, writeText, metadata)
	if err != nil {
		printError(err)
		return nil
	}

	printJSON(writeEnvelope{
		Status:  "success",
		Message: fmt.Sprintf("Successfully wrote document %d to collection '%s'", id, writeCollection),
		ID:      id,
	})
	return nil
}
