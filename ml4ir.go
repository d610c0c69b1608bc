package ml4ir

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/robertdigital/ml4ir/internal/logging"
	"github.com/robertdigital/ml4ir/pkg/catalog"
	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/features"
	"github.com/robertdigital/ml4ir/pkg/observability"
	"github.com/robertdigital/ml4ir/pkg/ports"
	"github.com/robertdigital/ml4ir/pkg/registry"
	"github.com/robertdigital/ml4ir/pkg/validator"
)

// Gate is the high-level entry point of the library.
// It wraps a signature catalog and validates payloads against it.
type Gate struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
	metrics *observability.Metrics
	mode    domain.Mode
}

// Option defines a functional option for configuring the Gate.
type Option func(*Gate)

// WithLogger sets a custom structured logger for the gate and its catalog.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithMetrics records validations and reloads on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// WithMode sets the default validation mode (default: permissive).
func WithMode(mode domain.Mode) Option {
	return func(g *Gate) {
		g.mode = mode
	}
}

// New creates a gate serving the signatures of source.
// No model is servable until Load succeeds for it.
func New(source ports.SignatureSource, opts ...Option) *Gate {
	g := &Gate{
		logger: logging.NewNop(),
		mode:   domain.ModePermissive,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.catalog = catalog.New(source,
		catalog.WithLogger(g.logger),
		catalog.WithReloadHook(g.metrics.ObserveReload),
	)
	return g
}

// Load activates the given models, or every model of the source when none
// is named. The first failure aborts.
func (g *Gate) Load(ctx context.Context, models ...string) error {
	if len(models) == 0 {
		return g.catalog.LoadAll(ctx)
	}
	for _, model := range models {
		if _, err := g.catalog.Load(ctx, model); err != nil {
			return fmt.Errorf("model %s: %w", model, err)
		}
	}
	return nil
}

// Validate checks payload against the current signature of model using the
// gate's default mode. Contract violations are reported in the Result; the
// error is non-nil only when the model is not servable.
func (g *Gate) Validate(ctx context.Context, model string, payload domain.Payload) (validator.Result, error) {
	return g.ValidateMode(ctx, model, payload, g.mode)
}

// ValidateMode is Validate with an explicit mode.
func (g *Gate) ValidateMode(ctx context.Context, model string, payload domain.Payload, mode domain.Mode) (validator.Result, error) {
	snap, err := g.catalog.Get(model)
	if err != nil {
		return validator.Result{}, err
	}
	return g.validate(ctx, snap, payload, mode), nil
}

// Features validates payload and converts the accepted fields to typed
// columns. Both steps use the same snapshot of the signature. Columns are
// nil when the payload is rejected.
func (g *Gate) Features(ctx context.Context, model string, payload domain.Payload) ([]features.Column, validator.Result, error) {
	snap, err := g.catalog.Get(model)
	if err != nil {
		return nil, validator.Result{}, err
	}

	res := g.validate(ctx, snap, payload, g.mode)
	if !res.OK() {
		return nil, res, nil
	}

	cols, err := features.Convert(snap.Registry, res.Accepted())
	if err != nil {
		g.logger.DebugContext(ctx, "feature conversion failed", "model", model, "err", err)
		return nil, res, err
	}
	return cols, res, nil
}

// Schema returns the OpenAPI schema of the current signature of model.
func (g *Gate) Schema(model string, mode domain.Mode) (*openapi3.Schema, error) {
	snap, err := g.catalog.Get(model)
	if err != nil {
		return nil, err
	}
	return registry.OpenAPISchema(snap.Registry, mode), nil
}

// Watch reloads signatures as the source reports changes, until ctx is done.
func (g *Gate) Watch(ctx context.Context) error {
	return g.catalog.Watch(ctx)
}

// Catalog exposes the underlying signature catalog.
func (g *Gate) Catalog() *catalog.Catalog { return g.catalog }

// Mode returns the default validation mode.
func (g *Gate) Mode() domain.Mode { return g.mode }

func (g *Gate) validate(ctx context.Context, snap *catalog.Snapshot, payload domain.Payload, mode domain.Mode) validator.Result {
	start := time.Now()
	res := validator.Validate(snap.Registry, payload, mode)
	g.metrics.ObserveValidation(snap.Model, res, time.Since(start))

	if !res.OK() {
		g.logger.DebugContext(ctx, "payload rejected",
			"model", snap.Model,
			"revision", snap.Revision.String(),
			"missing", res.Missing(),
			"unknown", res.Unknown(),
		)
	}
	return res
}
