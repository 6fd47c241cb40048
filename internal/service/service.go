package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rohmanhakim/sitefetch/internal/cachestore"
	"github.com/rohmanhakim/sitefetch/internal/index"
	"github.com/rohmanhakim/sitefetch/internal/orchestrator"
	"github.com/rohmanhakim/sitefetch/internal/resource"
	"github.com/rohmanhakim/sitefetch/pkg/failure"
)

/*
Service is the operation façade: the externally callable operations built
on the fetch orchestrator and the resource addressor.

Operations
- FetchSite: drive the orchestrator; on success optionally notify the
  caller that the resulting identifier is newly available (best-effort;
  a failed notification never fails the operation).
- ListSites: materialize the resource listing, with an explicit sentinel
  when nothing has been fetched yet.
- ClearCache: delete every blob referenced by the index (continuing past
  individual deletion failures) and reset the index, all under the
  index-wide lock; returns the number of records that existed at the start.
- AddToContext: surface an already-cached URL; never fetches implicitly.
*/

// ContextNotifier is an optional side channel telling the caller that a
// resource identifier became available. Failures are logged and swallowed;
// notification is kept out of the success/failure contract entirely.
type ContextNotifier interface {
	NotifyResource(identifier string) error
}

type Service struct {
	orch      *orchestrator.Orchestrator
	store     *cachestore.Store
	idx       *index.Index
	addressor resource.Addressor
	notifier  ContextNotifier
	log       *logrus.Logger
}

// New wires the façade. notifier may be nil when the caller has no context
// channel to notify.
func New(
	orch *orchestrator.Orchestrator,
	store *cachestore.Store,
	idx *index.Index,
	addressor resource.Addressor,
	notifier ContextNotifier,
	log *logrus.Logger,
) *Service {
	return &Service{
		orch:      orch,
		store:     store,
		idx:       idx,
		addressor: addressor,
		notifier:  notifier,
		log:       log,
	}
}

// FetchSite resolves a URL to captured content, optionally announcing the
// resulting resource identifier to the caller's context.
func (s *Service) FetchSite(
	ctx context.Context,
	rawURL string,
	forceRefresh bool,
	addToContext bool,
) (FetchSummary, failure.ClassifiedError) {
	outcome, err := s.orch.Fetch(ctx, rawURL, forceRefresh)
	if err != nil {
		return FetchSummary{}, err
	}

	identifier := resource.ToIdentifier(rawURL)

	if addToContext {
		s.notify(identifier)
	}

	return FetchSummary{
		identifier: identifier,
		title:      outcome.Record().Title,
		sizeBytes:  outcome.Record().SizeBytes,
		fromCache:  outcome.FromCache(),
		content:    outcome.Content(),
	}, nil
}

// ListSites returns a descriptor for every captured site.
func (s *Service) ListSites() (Listing, failure.ClassifiedError) {
	descriptors, err := s.addressor.List()
	if err != nil {
		return Listing{}, err
	}
	return Listing{descriptors: descriptors}, nil
}

// ClearCache wipes every cached blob and the whole index together. Per-blob
// deletion failures are logged and skipped: the bulk operation is
// best-effort on cleanup but authoritative on the index reset.
func (s *Service) ClearCache() (int, failure.ClassifiedError) {
	return s.idx.Clear(func(key string, rec index.Record) {
		if err := s.store.Delete(key); err != nil {
			s.log.WithFields(logrus.Fields{
				"key": key,
				"url": rec.URL,
			}).WithError(err).Warn("failed to delete cached blob, continuing")
		}
	})
}

// AddToContext announces an already-cached URL to the caller's context and
// returns its identifier. It never fetches: a URL without a cached blob
// fails with a not-cached error.
func (s *Service) AddToContext(rawURL string) (string, failure.ClassifiedError) {
	key, err := s.orch.KeyFor(rawURL)
	if err != nil {
		return "", err
	}

	if !s.store.Exists(key) {
		return "", &ServiceError{
			Message: "fetch the site before adding it to context",
			Cause:   ErrCauseNotCached,
			URL:     rawURL,
		}
	}

	identifier := resource.ToIdentifier(rawURL)
	s.notify(identifier)
	return identifier, nil
}

func (s *Service) notify(identifier string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyResource(identifier); err != nil {
		s.log.WithField("identifier", identifier).
			WithError(err).
			Warn("context notification failed")
	}
}
