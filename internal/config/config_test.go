package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/sitefetch/internal/config"
	"github.com/rohmanhakim/sitefetch/pkg/hashutil"
)

func TestWithDefault(t *testing.T) {
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.CacheDir())
	assert.Equal(t, hashutil.HashAlgoBLAKE3, cfg.HashAlgo())
	assert.Empty(t, cfg.CrawlerCommand())
	assert.Equal(t, 3, cfg.Concurrency())
	assert.Equal(t, 60*time.Second, cfg.Timeout())
	assert.Equal(t, "sitefetch/1.0", cfg.UserAgent())
	assert.Equal(t, 1, cfg.MaxAttempt())
	assert.Equal(t, "info", cfg.LogLevel())
}

func TestConfig_DerivedPaths(t *testing.T) {
	cfg, err := config.WithDefault().WithCacheDir("/var/cache/sitefetch").Build()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/var/cache/sitefetch", "blobs"), cfg.BlobDir())
	assert.Equal(t, filepath.Join("/var/cache/sitefetch", "index.json"), cfg.IndexPath())
	assert.Equal(t, filepath.Join("/var/cache/sitefetch", "staging"), cfg.StagingDir())
}

func TestConfig_BuilderOverrides(t *testing.T) {
	cfg, err := config.WithDefault().
		WithCacheDir("/tmp/cache").
		WithHashAlgo(hashutil.HashAlgoSHA256).
		WithCrawlerCommand("/usr/local/bin/site-crawler").
		WithConcurrency(8).
		WithTimeout(30 * time.Second).
		WithUserAgent("custom-agent/2.0").
		WithMaxAttempt(5).
		WithLogLevel("debug").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/cache", cfg.CacheDir())
	assert.Equal(t, hashutil.HashAlgoSHA256, cfg.HashAlgo())
	assert.Equal(t, "/usr/local/bin/site-crawler", cfg.CrawlerCommand())
	assert.Equal(t, 8, cfg.Concurrency())
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, "custom-agent/2.0", cfg.UserAgent())
	assert.Equal(t, 5, cfg.MaxAttempt())
	assert.Equal(t, "debug", cfg.LogLevel())
}

func TestConfig_BuildValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (config.Config, error)
	}{
		{
			name: "empty cache dir",
			build: func() (config.Config, error) {
				return config.WithDefault().WithCacheDir("").Build()
			},
		},
		{
			name: "unsupported hash algorithm",
			build: func() (config.Config, error) {
				return config.WithDefault().WithHashAlgo(hashutil.HashAlgo("md5")).Build()
			},
		},
		{
			name: "zero concurrency",
			build: func() (config.Config, error) {
				return config.WithDefault().WithConcurrency(0).Build()
			},
		},
		{
			name: "zero timeout",
			build: func() (config.Config, error) {
				return config.WithDefault().WithTimeout(0).Build()
			},
		},
		{
			name: "zero max attempt",
			build: func() (config.Config, error) {
				return config.WithDefault().WithMaxAttempt(0).Build()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	doc := `{
  "cacheDir": "/tmp/sitefetch-cache",
  "hashAlgo": "sha256",
  "crawlerCommand": "/opt/crawler",
  "concurrency": 4,
  "userAgent": "from-file/1.0",
  "maxAttempt": 3,
  "logLevel": "warn"
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := config.WithConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/sitefetch-cache", cfg.CacheDir())
	assert.Equal(t, hashutil.HashAlgoSHA256, cfg.HashAlgo())
	assert.Equal(t, "/opt/crawler", cfg.CrawlerCommand())
	assert.Equal(t, 4, cfg.Concurrency())
	assert.Equal(t, "from-file/1.0", cfg.UserAgent())
	assert.Equal(t, 3, cfg.MaxAttempt())
	assert.Equal(t, "warn", cfg.LogLevel())

	// Fields the document does not set keep their defaults.
	assert.Equal(t, 60*time.Second, cfg.Timeout())
}

func TestWithConfigFile_MissingFile(t *testing.T) {
	_, err := config.WithConfigFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrFileDoesNotExist)
}

func TestWithConfigFile_MalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := config.WithConfigFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigParsingFail)
}
