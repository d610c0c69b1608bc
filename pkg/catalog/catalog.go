package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/robertdigital/ml4ir/internal/logging"
	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/ports"
	"github.com/robertdigital/ml4ir/pkg/registry"
	"github.com/robertdigital/ml4ir/pkg/signature"
)

// ErrWatchUnsupported is returned by Watch when the source cannot report changes.
var ErrWatchUnsupported = errors.New("signature source does not support watching")

// Snapshot is one published version of a model's signature. It is immutable.
type Snapshot struct {
	Model    string
	Revision uuid.UUID
	LoadedAt time.Time
	Format   signature.Format
	Registry *registry.FieldRegistry
}

// ReloadHook observes every load attempt. snap is nil when err is not.
type ReloadHook func(model string, snap *Snapshot, err error)

// Catalog maps model names to their current snapshot.
// Safe for concurrent use.
type Catalog struct {
	source ports.SignatureSource
	logger *slog.Logger
	hooks  []ReloadHook

	mu     sync.RWMutex
	models map[string]*entry
}

// entry is the published state of one model. load serializes fetch, build
// and publish, so an older fetch is never published over a newer one.
type entry struct {
	load sync.Mutex
	snap atomic.Pointer[Snapshot]
}

// Option configures the Catalog.
type Option func(*Catalog)

// WithLogger sets the logger (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithReloadHook registers a hook called after every load attempt.
func WithReloadHook(hook ReloadHook) Option {
	return func(c *Catalog) {
		c.hooks = append(c.hooks, hook)
	}
}

// New creates an empty catalog reading from source.
func New(source ports.SignatureSource, opts ...Option) *Catalog {
	c := &Catalog{
		source: source,
		logger: logging.NewNop(),
		models: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches, parses and publishes the signature of model.
// On failure the previously published snapshot, if any, stays in place.
// Concurrent loads of the same model run one after the other.
func (c *Catalog) Load(ctx context.Context, model string) (*Snapshot, error) {
	e := c.entry(model)
	e.load.Lock()
	defer e.load.Unlock()

	snap, err := c.build(ctx, model)
	if err != nil {
		c.reportFailure(model, err)
		c.runHooks(model, nil, err)
		return nil, err
	}

	e.snap.Store(snap)
	c.logger.Info("signature loaded",
		"model", model,
		"revision", snap.Revision.String(),
		"fields", snap.Registry.Len(),
		"required", snap.Registry.RequiredCount(),
	)
	c.runHooks(model, snap, nil)
	return snap, nil
}

// LoadAll loads every model the source lists. The first failure aborts.
func (c *Catalog) LoadAll(ctx context.Context) error {
	models, err := c.source.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list signatures: %w", err)
	}
	for _, model := range models {
		if _, err := c.Load(ctx, model); err != nil {
			return fmt.Errorf("model %s: %w", model, err)
		}
	}
	return nil
}

// Refresh loads every model the source lists, continuing past failures.
// The returned error joins one error per model that could not be loaded.
func (c *Catalog) Refresh(ctx context.Context) error {
	models, err := c.source.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list signatures: %w", err)
	}
	var errs []error
	for _, model := range models {
		if _, err := c.Load(ctx, model); err != nil {
			errs = append(errs, fmt.Errorf("model %s: %w", model, err))
		}
	}
	return errors.Join(errs...)
}

// Get returns the published snapshot of model.
func (c *Catalog) Get(model string) (*Snapshot, error) {
	c.mu.RLock()
	e, ok := c.models[model]
	c.mu.RUnlock()

	if ok {
		if snap := e.snap.Load(); snap != nil {
			return snap, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, model)
}

// Models returns the names of all servable models, sorted.
func (c *Catalog) Models() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.models))
	for name, e := range c.models {
		if e.snap.Load() != nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Watch reloads models as the source reports changes, until ctx is done or
// the source stops reporting. Reload failures are logged and do not stop
// the loop.
func (c *Catalog) Watch(ctx context.Context) error {
	watchable, ok := c.source.(ports.Watchable)
	if !ok {
		return ErrWatchUnsupported
	}

	changes, err := watchable.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch signatures: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case model, ok := <-changes:
			if !ok {
				return nil
			}
			c.logger.Debug("signature change detected", "model", model)
			_, _ = c.Load(ctx, model)
		}
	}
}

func (c *Catalog) build(ctx context.Context, model string) (*Snapshot, error) {
	doc, err := c.source.Fetch(ctx, model)
	if err != nil {
		return nil, err
	}

	descriptors, err := signature.Parse(doc.Data, doc.Format)
	if err != nil {
		return nil, err
	}

	reg, err := registry.Build(descriptors)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Model:    model,
		Revision: uuid.New(),
		LoadedAt: time.Now(),
		Format:   doc.Format,
		Registry: reg,
	}, nil
}

// entry returns the state of model, creating it on first use.
func (c *Catalog) entry(model string) *entry {
	c.mu.RLock()
	e, ok := c.models[model]
	c.mu.RUnlock()
	if ok {
		return e
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok = c.models[model]; !ok {
		e = &entry{}
		c.models[model] = e
	}
	return e
}

func (c *Catalog) reportFailure(model string, err error) {
	_, getErr := c.Get(model)
	serving := getErr == nil

	switch {
	case errors.Is(err, domain.ErrSignatureNotFound) && serving:
		c.logger.Warn("signature removed, keeping last published version", "model", model)
	case domain.IsConfigError(err):
		c.logger.Error("signature rejected", "model", model, "serving_previous", serving, "err", err)
	default:
		c.logger.Error("signature load failed", "model", model, "serving_previous", serving, "err", err)
	}
}

func (c *Catalog) runHooks(model string, snap *Snapshot, err error) {
	for _, hook := range c.hooks {
		hook(model, snap, err)
	}
}
