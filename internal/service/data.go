package service

import (
	"fmt"
	"strings"

	"github.com/rohmanhakim/sitefetch/internal/resource"
)

// FetchSummary is the façade-level result of a fetch-site operation.
type FetchSummary struct {
	identifier string
	title      string
	sizeBytes  int64
	fromCache  bool
	content    string
}

func (f *FetchSummary) Identifier() string {
	return f.identifier
}

func (f *FetchSummary) Title() string {
	return f.title
}

func (f *FetchSummary) SizeBytes() int64 {
	return f.sizeBytes
}

func (f *FetchSummary) FromCache() bool {
	return f.fromCache
}

func (f *FetchSummary) Content() string {
	return f.content
}

// emptyListingSentinel is returned instead of rendering nothing when no
// site has been fetched yet.
const emptyListingSentinel = "No sites fetched yet."

// Listing wraps the materialized descriptor list so an empty cache renders
// as an explicit sentinel rather than as silence.
type Listing struct {
	descriptors []resource.Descriptor
}

func (l *Listing) Descriptors() []resource.Descriptor {
	return l.descriptors
}

func (l *Listing) Empty() bool {
	return len(l.descriptors) == 0
}

// Render produces the human-facing listing text.
func (l *Listing) Render() string {
	if l.Empty() {
		return emptyListingSentinel
	}

	var sb strings.Builder
	for _, d := range l.descriptors {
		fmt.Fprintf(&sb, "%s\n  %s\n  %s\n", d.DisplayName(), d.Identifier(), d.Description())
	}
	return strings.TrimRight(sb.String(), "\n")
}
