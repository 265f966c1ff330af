package cli

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var importCollection string

var importCmd = &cobra.Command{
	Use:   "import <glob>",
	Short: "Bulk-write files matched by a glob into a collection",
	Long: `Write every file matched by a doublestar glob as one document each,
with the file path recorded in the document metadata.

Example:
  vecdb import "docs/**/*.txt" --collection docs`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importCollection, "collection", "", "collection name (required)")
	_ = importCmd.MarkFlagRequired("collection")
}

func runImport(cmd *cobra.Command, args []string) error {
	matches, err := doublestar.FilepathGlob(args[0])
	if err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %q", args[0])
	}

	store, err := openStore(cmd)
	if err != nil {
		printError(err)
		return nil
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.Default(int64(len(matches)), "importing")
	written, failed := 0, 0

	for _, path := range matches {
		_ = bar.Add(1)

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable file", "path", path, "error", err)
			failed++
			continue
		}

		if _, err := store.Write(cmd.Context(), importCollection, string(data), map[string]any{"path": path}); err != nil {
			logger.Warn("failed to import file", "path", path, "error", err)
			failed++
			continue
		}
		written++
	}

	fmt.Printf("Imported %d documents into collection '%s'", written, importCollection)
	if failed > 0 {
		fmt.Printf(" (%d failed)", failed)
	}
	fmt.Println()
	return nil
}
