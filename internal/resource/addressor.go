package resource

import (
	"net/url"
	"sort"
	"strings"

	"github.com/rohmanhakim/sitefetch/internal/index"
	"github.com/rohmanhakim/sitefetch/pkg/failure"
	"github.com/rohmanhakim/sitefetch/pkg/timeutil"
)

/*
Responsibilities
- Encode a source URL into the canonical sitefetch:// identifier
- Decode an identifier back to the exact source URL
- Enumerate all addressable resources from the metadata index

The encoding must be a strict bijection over the full legal URL character
set, including query strings and non-ASCII characters:
FromIdentifier(ToIdentifier(u)) == u for every valid u.
*/

// Scheme is the identifier scheme for captured sites.
const Scheme = "sitefetch"

const schemePrefix = Scheme + "://"

// ToIdentifier percent-encodes a source URL into the canonical scheme.
func ToIdentifier(sourceURL string) string {
	return schemePrefix + url.QueryEscape(sourceURL)
}

// FromIdentifier is the exact inverse of ToIdentifier. It fails when the
// identifier does not carry the sitefetch scheme or its payload does not
// decode.
func FromIdentifier(identifier string) (string, failure.ClassifiedError) {
	if !strings.HasPrefix(identifier, schemePrefix) {
		return "", &AddressError{
			Message:    "identifier does not use the " + Scheme + " scheme",
			Cause:      ErrCauseSchemeMismatch,
			Identifier: identifier,
		}
	}

	decoded, err := url.QueryUnescape(strings.TrimPrefix(identifier, schemePrefix))
	if err != nil {
		return "", &AddressError{
			Message:    err.Error(),
			Cause:      ErrCauseMalformedIdentifier,
			Identifier: identifier,
		}
	}
	return decoded, nil
}

type Addressor struct {
	idx *index.Index
}

func NewAddressor(idx *index.Index) Addressor {
	return Addressor{idx: idx}
}

// List materializes a descriptor for every record currently in the index.
// The list is re-derived on every call and never cached; display name falls
// back to the source URL when no title was extracted.
func (a *Addressor) List() ([]Descriptor, failure.ClassifiedError) {
	records, err := a.idx.Load()
	if err != nil {
		return nil, err
	}

	descriptors := make([]Descriptor, 0, len(records))
	for _, rec := range records {
		displayName := rec.Title
		if displayName == "" {
			displayName = rec.URL
		}
		descriptors = append(descriptors, NewDescriptor(
			ToIdentifier(rec.URL),
			displayName,
			"Fetched at "+timeutil.FormatCaptureTime(rec.FetchedAt),
		))
	}

	// Map iteration order is random; keep listings stable for callers.
	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].identifier < descriptors[j].identifier
	})
	return descriptors, nil
}
