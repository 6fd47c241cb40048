package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached site and reset the metadata index.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := InitConfig()
		svc, _, err := buildService(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		removed, clearErr := svc.ClearCache()
		if clearErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", clearErr)
			os.Exit(1)
		}

		fmt.Printf("Removed %d cached site(s)\n", removed)
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
