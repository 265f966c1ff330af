package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display database statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			printError(err)
			return nil
		}
		defer func() { _ = store.Close() }()

		stats, err := store.Stats(cmd.Context())
		if err != nil {
			printError(err)
			return nil
		}

		if statsJSON {
			printJSON(stats)
			return nil
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("  Collections: %d\n", stats.Collections)
		fmt.Printf("  Documents: %d\n", stats.Documents)
		fmt.Printf("  Database Size: %.2f MB\n", float64(stats.Size)/(1024*1024))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}
