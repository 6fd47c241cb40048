package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/sitefetch/pkg/hashutil"
)

type Config struct {
	//===============
	//  Storage
	//===============
	// Root directory holding cached blobs, the metadata index and the
	// crawler staging area.
	cacheDir string
	// Hash algorithm used to derive ContentKeys from canonical URLs.
	hashAlgo hashutil.HashAlgo

	//===============
	// Capture
	//===============
	// External capture tool command. Empty means the builtin single-page
	// HTTP crawler is used instead.
	crawlerCommand string
	// Parallelism hint passed to the external capture tool.
	concurrency int
	// Maximum time a single capture may take.
	timeout time.Duration
	// User agent used by the builtin crawler.
	userAgent string

	//===============
	// Retry (caller policy, applied by the CLI only)
	//===============
	// Maximum attempts for one fetch operation; 1 disables retrying.
	maxAttempt int
	// Initial delay for backoff
	backoffInitialDuration time.Duration
	// Multiplier during exponential backoff
	backoffMultiplier float64
	// Capped maximum delay for backoff to stop exponential multiplication
	backoffMaxDuration time.Duration
	// Randomized variation added on top of the backoff delay
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64

	//===============
	// Logging
	//===============
	logLevel      string
	logFile       string
	logMaxSizeMB  int
	logMaxBackups int
}

type configDTO struct {
	CacheDir               string        `json:"cacheDir,omitempty"`
	HashAlgo               string        `json:"hashAlgo,omitempty"`
	CrawlerCommand         string        `json:"crawlerCommand,omitempty"`
	Concurrency            int           `json:"concurrency,omitempty"`
	Timeout                time.Duration `json:"timeout,omitempty"`
	UserAgent              string        `json:"userAgent,omitempty"`
	MaxAttempt             int           `json:"maxAttempt,omitempty"`
	BackoffInitialDuration time.Duration `json:"backoffInitialDuration,omitempty"`
	BackoffMultiplier      float64       `json:"backoffMultiplier,omitempty"`
	BackoffMaxDuration     time.Duration `json:"backoffMaxDuration,omitempty"`
	Jitter                 time.Duration `json:"jitter,omitempty"`
	RandomSeed             int64         `json:"randomSeed,omitempty"`
	LogLevel               string        `json:"logLevel,omitempty"`
	LogFile                string        `json:"logFile,omitempty"`
	LogMaxSizeMB           int           `json:"logMaxSizeMB,omitempty"`
	LogMaxBackups          int           `json:"logMaxBackups,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	// Start with default config, then only override fields the document
	// actually sets.
	builder := WithDefault()

	if dto.CacheDir != "" {
		builder = builder.WithCacheDir(dto.CacheDir)
	}
	if dto.HashAlgo != "" {
		builder = builder.WithHashAlgo(hashutil.HashAlgo(dto.HashAlgo))
	}
	if dto.CrawlerCommand != "" {
		builder = builder.WithCrawlerCommand(dto.CrawlerCommand)
	}
	if dto.Concurrency != 0 {
		builder = builder.WithConcurrency(dto.Concurrency)
	}
	if dto.Timeout != 0 {
		builder = builder.WithTimeout(dto.Timeout)
	}
	if dto.UserAgent != "" {
		builder = builder.WithUserAgent(dto.UserAgent)
	}
	if dto.MaxAttempt != 0 {
		builder = builder.WithMaxAttempt(dto.MaxAttempt)
	}
	if dto.BackoffInitialDuration != 0 {
		builder = builder.WithBackoffInitialDuration(dto.BackoffInitialDuration)
	}
	if dto.BackoffMultiplier != 0 {
		builder = builder.WithBackoffMultiplier(dto.BackoffMultiplier)
	}
	if dto.BackoffMaxDuration != 0 {
		builder = builder.WithBackoffMaxDuration(dto.BackoffMaxDuration)
	}
	if dto.Jitter != 0 {
		builder = builder.WithJitter(dto.Jitter)
	}
	if dto.RandomSeed != 0 {
		builder = builder.WithRandomSeed(dto.RandomSeed)
	}
	if dto.LogLevel != "" {
		builder = builder.WithLogLevel(dto.LogLevel)
	}
	if dto.LogFile != "" {
		builder = builder.WithLogFile(dto.LogFile)
	}
	if dto.LogMaxSizeMB != 0 {
		builder = builder.WithLogMaxSizeMB(dto.LogMaxSizeMB)
	}
	if dto.LogMaxBackups != 0 {
		builder = builder.WithLogMaxBackups(dto.LogMaxBackups)
	}

	return builder.Build()
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// defaultCacheDir resolves the per-user cache location, degrading to a
// dot directory in the working directory when the platform location is
// unavailable.
func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".sitefetch-cache"
	}
	return filepath.Join(base, "sitefetch")
}

// WithDefault creates a new Config builder with default values for all fields.
func WithDefault() *Config {
	return &Config{
		cacheDir:               defaultCacheDir(),
		hashAlgo:               hashutil.HashAlgoBLAKE3,
		crawlerCommand:         "",
		concurrency:            3,
		timeout:                60 * time.Second,
		userAgent:              "sitefetch/1.0",
		maxAttempt:             1,
		backoffInitialDuration: 500 * time.Millisecond,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     10 * time.Second,
		jitter:                 250 * time.Millisecond,
		randomSeed:             time.Now().UnixNano(),
		logLevel:               "info",
		logFile:                "",
		logMaxSizeMB:           20,
		logMaxBackups:          3,
	}
}

func (c *Config) WithCacheDir(dir string) *Config {
	c.cacheDir = dir
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithCrawlerCommand(command string) *Config {
	c.crawlerCommand = command
	return c
}

func (c *Config) WithConcurrency(concurrency int) *Config {
	c.concurrency = concurrency
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithMaxAttempt(attempts int) *Config {
	c.maxAttempt = attempts
	return c
}

func (c *Config) WithBackoffInitialDuration(duration time.Duration) *Config {
	c.backoffInitialDuration = duration
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(duration time.Duration) *Config {
	c.backoffMaxDuration = duration
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) WithLogFile(path string) *Config {
	c.logFile = path
	return c
}

func (c *Config) WithLogMaxSizeMB(size int) *Config {
	c.logMaxSizeMB = size
	return c
}

func (c *Config) WithLogMaxBackups(count int) *Config {
	c.logMaxBackups = count
	return c
}

func (c *Config) Build() (Config, error) {
	if c.cacheDir == "" {
		return Config{}, fmt.Errorf("%w: cacheDir cannot be empty", ErrInvalidConfig)
	}
	if c.hashAlgo != hashutil.HashAlgoSHA256 && c.hashAlgo != hashutil.HashAlgoBLAKE3 {
		return Config{}, fmt.Errorf("%w: unsupported hash algorithm %q", ErrInvalidConfig, c.hashAlgo)
	}
	if c.concurrency < 1 {
		return Config{}, fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.maxAttempt < 1 {
		return Config{}, fmt.Errorf("%w: maxAttempt must be at least 1", ErrInvalidConfig)
	}
	return *c, nil
}

func (c Config) CacheDir() string {
	return c.cacheDir
}

// BlobDir is where committed blobs live.
func (c Config) BlobDir() string {
	return filepath.Join(c.cacheDir, "blobs")
}

// IndexPath is the metadata index document, a sibling of the blob directory.
func (c Config) IndexPath() string {
	return filepath.Join(c.cacheDir, "index.json")
}

// StagingDir is where capture output is staged before promotion.
func (c Config) StagingDir() string {
	return filepath.Join(c.cacheDir, "staging")
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) CrawlerCommand() string {
	return c.crawlerCommand
}

func (c Config) Concurrency() int {
	return c.concurrency
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) MaxAttempt() int {
	return c.maxAttempt
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) LogLevel() string {
	return c.logLevel
}

func (c Config) LogFile() string {
	return c.logFile
}

func (c Config) LogMaxSizeMB() int {
	return c.logMaxSizeMB
}

func (c Config) LogMaxBackups() int {
	return c.logMaxBackups
}
