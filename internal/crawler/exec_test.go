package crawler_test

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/sitefetch/internal/crawler"
)

// writeScript materializes an executable shell script standing in for the
// external capture tool. The tool is invoked as:
//
//	<command> <url> --outfile <path> --concurrency <n>
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture-tool.sh")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func mustParse(t *testing.T, raw string) url.URL {
	t.Helper()
	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	return *parsed
}

func TestExecCrawler_Capture(t *testing.T) {
	script := writeScript(t, `printf 'captured %s' "$1" > "$3"`)
	stagingDir := filepath.Join(t.TempDir(), "staging")

	exec := crawler.NewExecCrawler(script, 3, stagingDir)

	content, err := exec.Capture(context.Background(), mustParse(t, "https://example.com/docs"))
	require.Nil(t, err)
	assert.Equal(t, "captured https://example.com/docs", content)
}

func TestExecCrawler_CleansUpStagingFile(t *testing.T) {
	script := writeScript(t, `printf 'content' > "$3"`)
	stagingDir := filepath.Join(t.TempDir(), "staging")

	exec := crawler.NewExecCrawler(script, 1, stagingDir)

	_, err := exec.Capture(context.Background(), mustParse(t, "https://example.com"))
	require.Nil(t, err)

	entries, readErr := os.ReadDir(stagingDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestExecCrawler_ToolExitFailure(t *testing.T) {
	script := writeScript(t, `echo 'crawl blew up' >&2; exit 1`)

	exec := crawler.NewExecCrawler(script, 1, filepath.Join(t.TempDir(), "staging"))

	_, err := exec.Capture(context.Background(), mustParse(t, "https://example.com"))
	require.NotNil(t, err)

	var capErr *crawler.CaptureError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, crawler.ErrCauseToolFailure, capErr.Cause)
	assert.True(t, capErr.Retryable)
	assert.Contains(t, capErr.Message, "crawl blew up")
}

func TestExecCrawler_EmptyOutput(t *testing.T) {
	script := writeScript(t, `printf '  \n ' > "$3"`)

	exec := crawler.NewExecCrawler(script, 1, filepath.Join(t.TempDir(), "staging"))

	_, err := exec.Capture(context.Background(), mustParse(t, "https://example.com"))
	require.NotNil(t, err)

	var capErr *crawler.CaptureError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, crawler.ErrCauseNoOutput, capErr.Cause)
}

func TestExecCrawler_MissingBinary(t *testing.T) {
	exec := crawler.NewExecCrawler(
		filepath.Join(t.TempDir(), "no-such-tool"),
		1,
		filepath.Join(t.TempDir(), "staging"),
	)

	_, err := exec.Capture(context.Background(), mustParse(t, "https://example.com"))
	require.NotNil(t, err)

	var capErr *crawler.CaptureError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, crawler.ErrCauseSpawnFailure, capErr.Cause)
	assert.False(t, capErr.Retryable)
}

func TestExecCrawler_Timeout(t *testing.T) {
	script := writeScript(t, `sleep 5`)

	exec := crawler.NewExecCrawler(script, 1, filepath.Join(t.TempDir(), "staging"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := exec.Capture(ctx, mustParse(t, "https://example.com"))
	require.NotNil(t, err)

	var capErr *crawler.CaptureError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, crawler.ErrCauseTimeout, capErr.Cause)
	assert.True(t, capErr.Retryable)
}

func TestExecCrawler_Cancelled(t *testing.T) {
	script := writeScript(t, `sleep 5`)

	exec := crawler.NewExecCrawler(script, 1, filepath.Join(t.TempDir(), "staging"))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := exec.Capture(ctx, mustParse(t, "https://example.com"))
	require.NotNil(t, err)

	var capErr *crawler.CaptureError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, crawler.ErrCauseCancelled, capErr.Cause)
	assert.False(t, capErr.Retryable)
}
