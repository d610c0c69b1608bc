package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/ports"
)

// Store implements ports.SignatureStore and ports.Watchable in memory.
// Safe for concurrent use.
type Store struct {
	data     map[string]ports.Document
	watchers []*watcher
	mu       sync.RWMutex
}

// watcher collects the models changed since its reader last caught up.
// Repeated changes to one model are reported once.
type watcher struct {
	pending map[string]struct{}
	wake    chan struct{}
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]ports.Document),
	}
}

// Put stores the document and notifies watchers.
func (s *Store) Put(ctx context.Context, doc ports.Document) error {
	// Copy to ensure isolation, similar to serialization
	doc.Data = slices.Clone(doc.Data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[doc.Model] = doc
	s.notify(doc.Model)
	return nil
}

// Fetch retrieves the document from memory.
func (s *Store) Fetch(ctx context.Context, model string) (ports.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[model]
	if !ok {
		return ports.Document{}, domain.ErrSignatureNotFound
	}

	// Copy on read so the caller can't mutate the stored bytes
	doc.Data = slices.Clone(doc.Data)
	return doc, nil
}

// Delete removes the document and notifies watchers if it existed.
func (s *Store) Delete(ctx context.Context, model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[model]; !ok {
		return nil
	}
	delete(s.data, model)
	s.notify(model)
	return nil
}

// List returns the stored model names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	models := make([]string, 0, len(s.data))
	for name := range s.data {
		models = append(models, name)
	}
	slices.Sort(models)
	return models, nil
}

// Watch returns a channel receiving the name of every model put or deleted
// after the call. Writers never block on slow readers: changes made while a
// reader is behind are coalesced per model and delivered in name order.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	w := &watcher{
		pending: make(map[string]struct{}),
		wake:    make(chan struct{}, 1),
	}

	s.mu.Lock()
	s.watchers = append(s.watchers, w)
	s.mu.Unlock()

	ch := make(chan string, 16)
	go func() {
		defer close(ch)
		defer s.unwatch(w)

		for {
			select {
			case <-ctx.Done():
				return
			case <-w.wake:
			}
			for _, model := range s.drain(w) {
				select {
				case ch <- model:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func (s *Store) drain(w *watcher) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	models := slices.Sorted(maps.Keys(w.pending))
	clear(w.pending)
	return models
}

func (s *Store) unwatch(w *watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = slices.DeleteFunc(s.watchers, func(other *watcher) bool { return other == w })
}

// notify must be called with s.mu held.
func (s *Store) notify(model string) {
	for _, w := range s.watchers {
		w.pending[model] = struct{}{}
		select {
		case w.wake <- struct{}{}:
		default:
		}
	}
}
