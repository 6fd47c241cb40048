package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohmanhakim/sitefetch/internal/build"
	"github.com/rohmanhakim/sitefetch/internal/cachestore"
	"github.com/rohmanhakim/sitefetch/internal/config"
	"github.com/rohmanhakim/sitefetch/internal/crawler"
	"github.com/rohmanhakim/sitefetch/internal/index"
	"github.com/rohmanhakim/sitefetch/internal/logging"
	"github.com/rohmanhakim/sitefetch/internal/orchestrator"
	"github.com/rohmanhakim/sitefetch/internal/resource"
	"github.com/rohmanhakim/sitefetch/internal/service"
	"github.com/rohmanhakim/sitefetch/pkg/hashutil"
)

var (
	cfgFile    string
	cacheDir   string
	crawlerCmd string
	concurrency int
	timeout    time.Duration
	hashAlgo   string
	userAgent  string
	logLevel   string
	logFile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sitefetch",
	Short: "Fetch whole websites into a local cache addressable by sitefetch:// identifiers.",
	Long: `sitefetch captures the full text of a website once and serves it from a
local cache afterwards, so an LLM assistant can pull a site into its working
context without re-downloading it on every turn.

Captured sites are addressable through canonical sitefetch:// identifiers
that decode back to the exact source URL.`,
	Version: build.FullVersion(),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/sitefetch.json)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "cache root directory (defaults to the per-user cache location)")
	rootCmd.PersistentFlags().StringVar(&crawlerCmd, "crawler-cmd", "", "external capture tool command (empty uses the builtin crawler)")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "parallelism hint passed to the capture tool")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "maximum duration of a single capture")
	rootCmd.PersistentFlags().StringVar(&hashAlgo, "hash-algo", "", "content key hash algorithm: blake3 or sha256")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent used by the builtin crawler")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (empty logs to stderr)")
}

// InitConfig builds the effective configuration from the config file or
// CLI flags.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError builds the effective configuration, returning any
// errors. This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// Start with default config and apply overrides using method chaining
	builder := config.WithDefault()

	if cacheDir != "" {
		builder = builder.WithCacheDir(cacheDir)
	}
	if crawlerCmd != "" {
		builder = builder.WithCrawlerCommand(crawlerCmd)
	}
	if concurrency > 0 {
		builder = builder.WithConcurrency(concurrency)
	}
	if timeout > 0 {
		builder = builder.WithTimeout(timeout)
	}
	if hashAlgo != "" {
		builder = builder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}
	if userAgent != "" {
		builder = builder.WithUserAgent(userAgent)
	}
	if logLevel != "" {
		builder = builder.WithLogLevel(logLevel)
	}
	if logFile != "" {
		builder = builder.WithLogFile(logFile)
	}

	return builder.Build()
}

// stdoutNotifier announces newly available resource identifiers on stdout.
// The CLI has no live tool-calling channel, so printing is its best-effort
// equivalent of an add-to-context notification.
type stdoutNotifier struct{}

func (stdoutNotifier) NotifyResource(identifier string) error {
	_, err := fmt.Println("Resource available: " + identifier)
	return err
}

// buildService wires the full stack from a built config.
func buildService(cfg config.Config) (*service.Service, *logrus.Logger, error) {
	log, err := logging.Init(cfg.LogLevel(), cfg.LogFile(), cfg.LogMaxSizeMB(), cfg.LogMaxBackups())
	if err != nil {
		return nil, nil, err
	}

	store, serr := cachestore.New(cfg.BlobDir())
	if serr != nil {
		return nil, nil, serr
	}

	idx := index.New(cfg.IndexPath())

	var capture crawler.Crawler
	if cfg.CrawlerCommand() != "" {
		execCrawler := crawler.NewExecCrawler(cfg.CrawlerCommand(), cfg.Concurrency(), cfg.StagingDir())
		capture = &execCrawler
	} else {
		builtin := crawler.NewBuiltinCrawler(cfg.UserAgent(), cfg.Timeout())
		capture = &builtin
	}

	orch := orchestrator.New(&store, idx, capture, cfg.HashAlgo(), log)
	addressor := resource.NewAddressor(idx)

	return service.New(orch, &store, idx, addressor, stdoutNotifier{}, log), log, nil
}

// ResetFlags restores all flag variables to their zero values (test helper).
func ResetFlags() {
	cfgFile = ""
	cacheDir = ""
	crawlerCmd = ""
	concurrency = 0
	timeout = 0
	hashAlgo = ""
	userAgent = ""
	logLevel = ""
	logFile = ""
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetCacheDirForTest(dir string) {
	cacheDir = dir
}

func SetCrawlerCmdForTest(command string) {
	crawlerCmd = command
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}
