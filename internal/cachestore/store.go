package cachestore

import (
	"os"
	"path/filepath"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
	"github.com/rohmanhakim/sitefetch/pkg/fileutil"
)

/*
Responsibilities
- Persist captured site text as one blob per ContentKey
- Guarantee atomic blob commits (no reader ever sees a partial blob)
- Ensure deterministic filenames

Output Characteristics
- Stable directory layout: <root>/<ContentKey>.txt
- Idempotent deletes
- Overwrite-safe refreshes
*/

const blobExtension = ".txt"

type Store struct {
	root string
}

// New prepares a blob store rooted at the given directory, creating it
// when absent.
func New(root string) (Store, failure.ClassifiedError) {
	if err := fileutil.EnsureDir(root); err != nil {
		return Store{}, &StoreError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseRootUnavailable,
			Key:       "",
		}
	}
	return Store{root: root}, nil
}

// BlobPath returns the final on-disk location for a ContentKey.
func (s *Store) BlobPath(key string) string {
	return filepath.Join(s.root, key+blobExtension)
}

// Put commits content for key. The write is atomic: content lands in a
// temporary file first and is renamed into place, so a concurrent Get can
// only ever observe the previous blob or the complete new one.
func (s *Store) Put(key string, content []byte) failure.ClassifiedError {
	if err := fileutil.WriteFileAtomic(s.BlobPath(key), content, 0644); err != nil {
		return &StoreError{
			Message:   err.Error(),
			Retryable: isRetryableFileError(err),
			Cause:     ErrCauseWriteFailure,
			Key:       key,
		}
	}
	return nil
}

// Get returns the blob for key, or a NotFound-classified error.
func (s *Store) Get(key string) ([]byte, failure.ClassifiedError) {
	data, err := os.ReadFile(s.BlobPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &StoreError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCauseNotFound,
				Key:       key,
			}
		}
		return nil, &StoreError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseReadFailure,
			Key:       key,
		}
	}
	return data, nil
}

// Exists reports whether a committed blob is present for key.
func (s *Store) Exists(key string) bool {
	info, err := os.Stat(s.BlobPath(key))
	return err == nil && !info.IsDir()
}

// Delete removes the blob for key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) failure.ClassifiedError {
	if err := os.Remove(s.BlobPath(key)); err != nil && !os.IsNotExist(err) {
		return &StoreError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseDeleteFailure,
			Key:       key,
		}
	}
	return nil
}

func isRetryableFileError(err failure.ClassifiedError) bool {
	return err.Severity() == failure.SeverityRecoverable
}
