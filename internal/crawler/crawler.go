package crawler

import (
	"context"
	"net/url"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
)

// Crawler turns a URL into captured text content. Implementations may take
// arbitrarily long (network-bound) and must honor the caller's context for
// cancellation and timeouts. A failed capture leaves no trace: output is
// staged by the implementation and never written to a final cache path.
type Crawler interface {
	Capture(ctx context.Context, target url.URL) (string, failure.ClassifiedError)
}
