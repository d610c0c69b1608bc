package file

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch implements ports.Watchable.
// Events are coalesced per model until the directory has been quiet for the
// debounce interval; each model is then reported once.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		defer w.Close()

		pending := make(map[string]struct{})
		var flush <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-w.Events:
				if !ok {
					return
				}
				if evt.Op == fsnotify.Chmod {
					continue
				}
				model, ok := modelOf(evt.Name)
				if !ok {
					continue
				}
				pending[model] = struct{}{}
				flush = time.After(s.debounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("signature watcher error", "dir", s.dir, "err", err)
			case <-flush:
				flush = nil
				for _, model := range slices.Sorted(maps.Keys(pending)) {
					select {
					case ch <- model:
					case <-ctx.Done():
						return
					}
				}
				clear(pending)
			}
		}
	}()

	return ch, nil
}
