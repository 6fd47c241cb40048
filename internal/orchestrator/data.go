package orchestrator

import "github.com/rohmanhakim/sitefetch/internal/index"

// FetchOutcome is what one fetch request resolved to: the content, the
// ContentKey it lives under, its index record, and whether it was served
// from cache.
type FetchOutcome struct {
	content   string
	key       string
	record    index.Record
	fromCache bool
}

func (f *FetchOutcome) Content() string {
	return f.content
}

func (f *FetchOutcome) Key() string {
	return f.key
}

func (f *FetchOutcome) Record() index.Record {
	return f.record
}

func (f *FetchOutcome) FromCache() bool {
	return f.fromCache
}

// NewFetchOutcomeForTest constructs a FetchOutcome for test packages that
// cannot reach the unexported fields.
func NewFetchOutcomeForTest(
	content string,
	key string,
	record index.Record,
	fromCache bool,
) FetchOutcome {
	return FetchOutcome{
		content:   content,
		key:       key,
		record:    record,
		fromCache: fromCache,
	}
}
