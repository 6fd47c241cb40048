package index

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
	"github.com/rohmanhakim/sitefetch/pkg/fileutil"
)

/*
Responsibilities
- Persist the ContentKey → Record mapping as a single JSON document
- Distinguish "document absent" (first run, empty mapping) from
  "document present but unparseable" (corruption, surfaced as an error)
- Serialize every load-mutate-save cycle behind one mutex so concurrent
  updates for different keys never clobber each other

The index never decides cache policy; it only keeps the book.
*/

type Index struct {
	mu   sync.Mutex
	path string
}

// New creates an index persisted at path. The backing document is created
// lazily on the first save.
func New(path string) *Index {
	return &Index{path: path}
}

// Path returns the location of the backing document.
func (i *Index) Path() string {
	return i.path
}

// Load returns the persisted mapping. An absent document yields an empty
// mapping; a present but unparseable document yields a corruption error
// and is never silently treated as empty.
func (i *Index) Load() (map[string]Record, failure.ClassifiedError) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.loadLocked()
}

// Get returns the record for key and whether it exists.
func (i *Index) Get(key string) (Record, bool, failure.ClassifiedError) {
	i.mu.Lock()
	defer i.mu.Unlock()

	records, err := i.loadLocked()
	if err != nil {
		return Record{}, false, err
	}
	rec, ok := records[key]
	return rec, ok, nil
}

// Upsert replaces the record for key in one load-mutate-save cycle held
// under the index-wide mutex.
func (i *Index) Upsert(key string, rec Record) failure.ClassifiedError {
	i.mu.Lock()
	defer i.mu.Unlock()

	records, err := i.loadLocked()
	if err != nil {
		return err
	}

	records[key] = rec
	return i.saveLocked(records)
}

// Clear empties the index and reports how many records existed at the start.
// The onRecord callback runs for every record while the mutex is held, so a
// caller can delete the matching blob without an in-flight upsert
// interleaving and resurrecting a cleared record.
func (i *Index) Clear(onRecord func(key string, rec Record)) (int, failure.ClassifiedError) {
	i.mu.Lock()
	defer i.mu.Unlock()

	records, err := i.loadLocked()
	if err != nil {
		return 0, err
	}

	if onRecord != nil {
		for key, rec := range records {
			onRecord(key, rec)
		}
	}

	if err := i.saveLocked(map[string]Record{}); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (i *Index) loadLocked() (map[string]Record, failure.ClassifiedError) {
	data, err := os.ReadFile(i.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: nothing captured yet.
			return map[string]Record{}, nil
		}
		return nil, &IndexError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseReadFailure,
		}
	}

	records := map[string]Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &IndexError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseCorruptDocument,
		}
	}
	return records, nil
}

func (i *Index) saveLocked(records map[string]Record) failure.ClassifiedError {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &IndexError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
		}
	}

	// Atomic replace: a crash mid-save must never truncate the document.
	if werr := fileutil.WriteFileAtomic(i.path, data, 0644); werr != nil {
		return &IndexError{
			Message:   werr.Error(),
			Retryable: werr.Severity() == failure.SeverityRecoverable,
			Cause:     ErrCauseWriteFailure,
		}
	}
	return nil
}
