package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/robertdigital/ml4ir"
)

// RunWatch loads every model and keeps reloading them as their signatures
// change, until ctx is done. A model that fails to load at startup is
// reported but does not stop the watcher; it becomes servable once fixed.
func RunWatch(ctx context.Context, gate *ml4ir.Gate, logger *slog.Logger, out io.Writer) error {
	if err := gate.Catalog().Refresh(ctx); err != nil {
		logger.Warn("initial load incomplete", "err", err)
	}

	models := gate.Catalog().Models()
	logger.Info("Starting Watcher", "models", len(models))
	PrintSystemMessage(out, "Watching %d model(s): %s", len(models), strings.Join(models, ", "))

	if err := gate.Watch(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	logger.Info("Watcher stopped")
	return nil
}
