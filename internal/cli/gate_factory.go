package cli

import (
	"fmt"
	"log/slog"

	"github.com/robertdigital/ml4ir"
	"github.com/robertdigital/ml4ir/internal/config"
	"github.com/robertdigital/ml4ir/pkg/adapters/file"
	"github.com/robertdigital/ml4ir/pkg/adapters/redis"
	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/observability"
	"github.com/robertdigital/ml4ir/pkg/ports"
)

// Source is a signature store the CLI can also close.
type Source interface {
	ports.SignatureStore
	ports.Watchable
	Close() error
}

type fileSource struct{ *file.Store }

func (fileSource) Close() error { return nil }

// OpenSource returns the signature store selected by the settings:
// Redis when a URL is configured, the signature directory otherwise.
func OpenSource(cfg *config.Config, logger *slog.Logger) (Source, error) {
	if cfg.UseRedis() {
		store, err := redis.New(cfg.RedisURL, redis.WithPrefix(cfg.RedisPrefix))
		if err != nil {
			return nil, err
		}
		logger.Debug("using redis signature store", "prefix", cfg.RedisPrefix)
		return store, nil
	}

	logger.Debug("using signature directory", "dir", cfg.SignatureDir)
	return fileSource{file.New(cfg.SignatureDir, file.WithLogger(logger))}, nil
}

// NewGate initializes a gate with standard CLI conventions. Models are not loaded.
func NewGate(cfg *config.Config, source ports.SignatureSource, logger *slog.Logger, metrics *observability.Metrics) (*ml4ir.Gate, error) {
	mode, err := domain.ParseMode(cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("error initializing gate: %w", err)
	}

	return ml4ir.New(source,
		ml4ir.WithLogger(logger),
		ml4ir.WithMode(mode),
		ml4ir.WithMetrics(metrics),
	), nil
}
