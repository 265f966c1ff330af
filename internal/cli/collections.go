package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var collectionsJSON bool

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List all collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			printError(err)
			return nil
		}
		defer func() { _ = store.Close() }()

		collections, err := store.ListCollections(cmd.Context())
		if err != nil {
			printError(err)
			return nil
		}

		if collectionsJSON {
			printJSON(collections)
			return nil
		}

		fmt.Printf("Collections (%d):\n", len(collections))
		for _, col := range collections {
			fmt.Printf("  %s (id: %d, dimensions: %d, created: %s)\n",
				col.Name, col.ID, col.Dimensions, col.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
	collectionsCmd.Flags().BoolVar(&collectionsJSON, "json", false, "output as JSON")
}
