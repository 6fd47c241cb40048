package index

import "time"

// Record describes one captured URL. Records are written all-fields-together:
// a successful fetch or forced refresh replaces the whole record, never a
// subset of its fields.
type Record struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetchedAt"`
	Title     string    `json:"title,omitempty"`
	SizeBytes int64     `json:"sizeBytes,omitempty"`
}
