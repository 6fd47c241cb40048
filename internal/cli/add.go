package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Announce an already-cached site to the caller's context.",
	Long: `add surfaces a previously fetched site through its sitefetch://
identifier. It never fetches: a URL that has not been captured yet fails
with a not-cached error.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := InitConfig()
		svc, _, err := buildService(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		identifier, addErr := svc.AddToContext(args[0])
		if addErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", addErr)
			os.Exit(1)
		}

		fmt.Println(identifier)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
