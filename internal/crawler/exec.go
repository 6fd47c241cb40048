package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
	"github.com/rohmanhakim/sitefetch/pkg/fileutil"
)

/*
Responsibilities
- Invoke the external capture tool as a subprocess
- Point the tool at a staging file, never at a final cache path
- Promote staged output to the caller only after a clean exit

Staging is the atomicity boundary: if the tool dies partway through, the
truncated staging file is discarded and the cache never sees it.
*/

// Compile-time interface check
var _ Crawler = (*ExecCrawler)(nil)

type ExecCrawler struct {
	command     string
	concurrency int
	stagingDir  string
}

// NewExecCrawler builds a crawler that shells out to command with the
// target URL, an --outfile staging path, and a --concurrency parallelism
// hint.
func NewExecCrawler(command string, concurrency int, stagingDir string) ExecCrawler {
	return ExecCrawler{
		command:     command,
		concurrency: concurrency,
		stagingDir:  stagingDir,
	}
}

func (c *ExecCrawler) Capture(ctx context.Context, target url.URL) (string, failure.ClassifiedError) {
	if err := fileutil.EnsureDir(c.stagingDir); err != nil {
		return "", &CaptureError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseStagingUnavailable,
			URL:       target.String(),
		}
	}

	stagingPath := filepath.Join(
		c.stagingDir,
		fmt.Sprintf("capture-%d-%d.txt", os.Getpid(), time.Now().UnixNano()),
	)
	// Best-effort cleanup; a leftover staging file is garbage, not state.
	defer os.Remove(stagingPath)

	cmd := exec.CommandContext(
		ctx,
		c.command,
		target.String(),
		"--outfile", stagingPath,
		"--concurrency", strconv.Itoa(c.concurrency),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", classifyRunError(ctx, err, target, stderr.String())
	}

	captured, err := os.ReadFile(stagingPath)
	if err != nil {
		return "", &CaptureError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseNoOutput,
			URL:       target.String(),
		}
	}

	if len(bytes.TrimSpace(captured)) == 0 {
		return "", &CaptureError{
			Message:   "capture tool exited cleanly but produced no output",
			Retryable: true,
			Cause:     ErrCauseNoOutput,
			URL:       target.String(),
		}
	}

	return string(captured), nil
}

func classifyRunError(ctx context.Context, err error, target url.URL, stderr string) *CaptureError {
	message := err.Error()
	if trimmed := strings.TrimSpace(stderr); trimmed != "" {
		message = message + ": " + trimmed
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &CaptureError{
			Message:   message,
			Retryable: true,
			Cause:     ErrCauseTimeout,
			URL:       target.String(),
		}
	case errors.Is(ctx.Err(), context.Canceled):
		return &CaptureError{
			Message:   message,
			Retryable: false,
			Cause:     ErrCauseCancelled,
			URL:       target.String(),
		}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CaptureError{
			Message:   message,
			Retryable: true,
			Cause:     ErrCauseToolFailure,
			URL:       target.String(),
		}
	}

	// The binary itself could not be started (missing, not executable).
	return &CaptureError{
		Message:   message,
		Retryable: false,
		Cause:     ErrCauseSpawnFailure,
		URL:       target.String(),
	}
}
