package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rohmanhakim/sitefetch/internal/service"
	"github.com/rohmanhakim/sitefetch/pkg/failure"
	"github.com/rohmanhakim/sitefetch/pkg/retry"
	"github.com/rohmanhakim/sitefetch/pkg/timeutil"
)

var (
	forceRefresh bool
	noContext    bool
	printContent bool
	maxAttempt   int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a site into the cache, or serve it from cache when already captured.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := InitConfig()
		svc, _, err := buildService(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		attempts := cfg.MaxAttempt()
		if maxAttempt > 0 {
			attempts = maxAttempt
		}

		// The capture timeout bounds each attempt, not the whole operation.
		fetchOnce := func() (service.FetchSummary, failure.ClassifiedError) {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
			defer cancel()
			return svc.FetchSite(ctx, args[0], forceRefresh, !noContext)
		}

		var summary service.FetchSummary
		var fetchErr failure.ClassifiedError
		if attempts > 1 {
			retryParam := retry.NewRetryParam(
				cfg.BackoffInitialDuration(),
				cfg.Jitter(),
				cfg.RandomSeed(),
				attempts,
				timeutil.NewBackoffParam(
					cfg.BackoffInitialDuration(),
					cfg.BackoffMultiplier(),
					cfg.BackoffMaxDuration(),
				),
			)
			summary, fetchErr = retry.Retry(retryParam, fetchOnce)
		} else {
			summary, fetchErr = fetchOnce()
		}

		if fetchErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", fetchErr)
			os.Exit(1)
		}

		source := "fetched"
		if summary.FromCache() {
			source = "cache hit"
		}
		displayName := summary.Title()
		if displayName == "" {
			displayName = args[0]
		}
		fmt.Printf("%s (%s, %d bytes)\n%s\n", displayName, source, summary.SizeBytes(), summary.Identifier())

		if printContent {
			fmt.Println(summary.Content())
		}
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&forceRefresh, "refresh", false, "re-capture even when the site is already cached")
	fetchCmd.Flags().BoolVar(&noContext, "no-context", false, "skip the add-to-context notification")
	fetchCmd.Flags().BoolVar(&printContent, "print", false, "print the captured content to stdout")
	fetchCmd.Flags().IntVar(&maxAttempt, "max-attempt", 0, "retry failed captures up to this many attempts")
	rootCmd.AddCommand(fetchCmd)
}
