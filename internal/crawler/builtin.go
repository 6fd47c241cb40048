package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/rohmanhakim/sitefetch/pkg/failure"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Perform a single-page HTTP fetch when no external capture tool is configured
- Apply headers and the caller's timeout
- Classify responses: only successful HTML or plain-text responses pass
- Convert HTML to semantically faithful Markdown

Conversion Rules
- Headings map directly (h1-h6 to # - ######)
- Code blocks preserved verbatim
- Tables converted structurally (GFM)
- Links and images preserved as-is (no resolution)
- DOM order preserved
*/

// Compile-time interface check
var _ Crawler = (*BuiltinCrawler)(nil)

type BuiltinCrawler struct {
	httpClient *http.Client
	userAgent  string
}

func NewBuiltinCrawler(userAgent string, timeout time.Duration) BuiltinCrawler {
	return BuiltinCrawler{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

func (c *BuiltinCrawler) Capture(ctx context.Context, target url.URL) (string, failure.ClassifiedError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", &CaptureError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
			URL:       target.String(),
		}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html, text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(ctx, err, target)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &CaptureError{
			Message:   fmt.Sprintf("status %d from %s", resp.StatusCode, target.String()),
			Retryable: resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests,
			Cause:     ErrCauseHTTPStatus,
			URL:       target.String(),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	isHTML := strings.Contains(contentType, "text/html")
	isPlain := strings.Contains(contentType, "text/plain") ||
		strings.Contains(contentType, "text/markdown")
	if !isHTML && !isPlain {
		return "", &CaptureError{
			Message:   fmt.Sprintf("content type %q is not capturable", contentType),
			Retryable: false,
			Cause:     ErrCauseContentTypeInvalid,
			URL:       target.String(),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &CaptureError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
			URL:       target.String(),
		}
	}

	if !isHTML {
		return string(body), nil
	}

	markdown, convErr := htmlToMarkdown(body)
	if convErr != nil {
		return "", &CaptureError{
			Message:   convErr.Error(),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
			URL:       target.String(),
		}
	}
	return markdown, nil
}

// htmlToMarkdown is a stateless pure function that transforms an HTML page
// into Markdown. It uses the html-to-markdown/v2 library for deterministic,
// semantic conversion.
func htmlToMarkdown(body []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertNode(doc)
	if err != nil {
		return "", err
	}
	return string(markdown), nil
}

func classifyTransportError(ctx context.Context, err error, target url.URL) *CaptureError {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &CaptureError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseTimeout,
			URL:       target.String(),
		}
	case errors.Is(ctx.Err(), context.Canceled):
		return &CaptureError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseCancelled,
			URL:       target.String(),
		}
	default:
		return &CaptureError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
			URL:       target.String(),
		}
	}
}
