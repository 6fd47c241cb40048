package orchestrator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rohmanhakim/sitefetch/internal/cachestore"
	"github.com/rohmanhakim/sitefetch/internal/crawler"
	"github.com/rohmanhakim/sitefetch/internal/index"
	"github.com/rohmanhakim/sitefetch/internal/title"
	"github.com/rohmanhakim/sitefetch/pkg/failure"
	"github.com/rohmanhakim/sitefetch/pkg/hashutil"
	"github.com/rohmanhakim/sitefetch/pkg/urlutil"
)

/*
 Orchestrator is the sole control-plane authority of a fetch request.

 State machine per request:
   Checking → {CacheHit | CacheMiss} → Fetching → Ingesting → Done
 with Failed reachable from Fetching and Ingesting.

 Guarantees:
 - Cache hit is read-only: the metadata index is never mutated on a hit.
 - Capture output is staged by the crawler and only promoted into the
   cache store on success; a failed or cancelled capture leaves both the
   store and the index exactly as they were before the call.
 - Ingest ordering: the blob is committed before the index record, so a
   crash between the two never leaves an index entry pointing at a
   missing blob. The inverse (an orphan blob) is tolerated and repaired
   by the next successful fetch of the same URL.
 - Per-key mutual exclusion: at most one capture per ContentKey at a time;
   concurrent fetches of the same URL resolve to a single crawler
   invocation.

 The orchestrator never retries. Retry is caller policy.
*/

type Orchestrator struct {
	store   *cachestore.Store
	idx     *index.Index
	crawler crawler.Crawler
	algo    hashutil.HashAlgo
	log     *logrus.Logger
	keys    keyLocks
}

func New(
	store *cachestore.Store,
	idx *index.Index,
	cr crawler.Crawler,
	algo hashutil.HashAlgo,
	log *logrus.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:   store,
		idx:     idx,
		crawler: cr,
		algo:    algo,
		log:     log,
	}
}

// KeyFor derives the ContentKey for a raw URL: validate, canonicalize, hash.
// The same URL string always yields the same key.
func (o *Orchestrator) KeyFor(rawURL string) (string, failure.ClassifiedError) {
	target, err := urlutil.Validate(rawURL)
	if err != nil {
		return "", &FetchError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseInvalidURL,
			URL:       rawURL,
		}
	}

	canonical := urlutil.Canonicalize(target)
	key, hashErr := hashutil.HashBytes([]byte(canonical.String()), o.algo)
	if hashErr != nil {
		return "", &FetchError{
			Message:   hashErr.Error(),
			Retryable: false,
			Cause:     ErrCauseKeyDerivation,
			URL:       rawURL,
		}
	}
	return key, nil
}

// Fetch resolves a URL to its captured content, invoking the crawler only
// on a miss or when forceRefresh is set.
func (o *Orchestrator) Fetch(
	ctx context.Context,
	rawURL string,
	forceRefresh bool,
) (FetchOutcome, failure.ClassifiedError) {
	target, err := urlutil.Validate(rawURL)
	if err != nil {
		return FetchOutcome{}, &FetchError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseInvalidURL,
			URL:       rawURL,
		}
	}

	canonical := urlutil.Canonicalize(target)
	key, hashErr := hashutil.HashBytes([]byte(canonical.String()), o.algo)
	if hashErr != nil {
		return FetchOutcome{}, &FetchError{
			Message:   hashErr.Error(),
			Retryable: false,
			Cause:     ErrCauseKeyDerivation,
			URL:       rawURL,
		}
	}

	release := o.keys.acquire(key)
	defer release()

	// Checking
	if !forceRefresh && o.store.Exists(key) {
		outcome, hitErr := o.serveHit(key, rawURL)
		if hitErr == nil {
			o.log.WithFields(logrus.Fields{
				"url": rawURL,
				"key": key,
			}).Debug("cache hit")
			return outcome, nil
		}
		if !cachestore.IsNotFound(hitErr) {
			return FetchOutcome{}, hitErr
		}
		// Blob vanished between Exists and Get; treat as a miss.
	}

	// Fetching
	o.log.WithFields(logrus.Fields{
		"url":     rawURL,
		"key":     key,
		"refresh": forceRefresh,
	}).Debug("cache miss, invoking crawler")

	captured, capErr := o.crawler.Capture(ctx, target)
	if capErr != nil {
		// Failed: stores are untouched, the staged output never promoted.
		return FetchOutcome{}, capErr
	}

	// Ingesting
	record := index.Record{
		URL:       rawURL,
		FetchedAt: time.Now().UTC(),
		Title:     title.Extract(captured),
		SizeBytes: int64(len(captured)),
	}

	// Blob before record: an index entry must never point at a missing blob.
	if putErr := o.store.Put(key, []byte(captured)); putErr != nil {
		return FetchOutcome{}, putErr
	}
	if upsertErr := o.idx.Upsert(key, record); upsertErr != nil {
		return FetchOutcome{}, upsertErr
	}

	// Done
	return FetchOutcome{
		content:   captured,
		key:       key,
		record:    record,
		fromCache: false,
	}, nil
}

// serveHit reads the blob and pairs it with its index record. The index is
// only read, never written: a hit bumps no timestamps.
func (o *Orchestrator) serveHit(key string, rawURL string) (FetchOutcome, failure.ClassifiedError) {
	content, err := o.store.Get(key)
	if err != nil {
		return FetchOutcome{}, err
	}

	record, ok, idxErr := o.idx.Get(key)
	if idxErr != nil {
		return FetchOutcome{}, idxErr
	}
	if !ok {
		// Orphan blob without a record; still serve the content unchanged.
		record = index.Record{URL: rawURL, SizeBytes: int64(len(content))}
	}

	return FetchOutcome{
		content:   string(content),
		key:       key,
		record:    record,
		fromCache: true,
	}, nil
}
