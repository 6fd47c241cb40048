package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every cached site with its sitefetch:// identifier.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := InitConfig()
		svc, _, err := buildService(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		listing, listErr := svc.ListSites()
		if listErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", listErr)
			os.Exit(1)
		}

		fmt.Println(listing.Render())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
