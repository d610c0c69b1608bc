// Package file serves signature documents from a directory.
//
// Each model is one file named after it, with an extension selecting the
// format: <model>.yaml, <model>.yml, <model>.json or <model>.toml. When more
// than one exists, the first in that order wins.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/robertdigital/ml4ir/internal/logging"
	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/ports"
	"github.com/robertdigital/ml4ir/pkg/signature"
)

// ErrInvalidModelName is returned for model names that are not plain file names.
var ErrInvalidModelName = errors.New("invalid model name")

// Store implements ports.SignatureStore and ports.Watchable on a directory.
type Store struct {
	dir      string
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithDebounce sets how long Watch waits for a burst of file events to settle.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		s.debounce = d
	}
}

// WithLogger sets the logger used for watcher errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a store rooted at dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:      dir,
		debounce: 100 * time.Millisecond,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string { return s.dir }

// extensions in lookup order.
var extensions = func() []string {
	var exts []string
	for _, f := range signature.Formats {
		exts = append(exts, f.Extensions()...)
	}
	return exts
}()

// Fetch reads the document of model.
func (s *Store) Fetch(ctx context.Context, model string) (ports.Document, error) {
	if err := checkName(model); err != nil {
		return ports.Document{}, fmt.Errorf("%w: %w", domain.ErrSignatureNotFound, err)
	}

	for _, ext := range extensions {
		path := filepath.Join(s.dir, model+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return ports.Document{}, fmt.Errorf("failed to read signature %s: %w", path, err)
		}
		return ports.Document{Model: model, Format: signature.FormatFromPath(path), Data: data}, nil
	}
	return ports.Document{}, fmt.Errorf("%w: %s", domain.ErrSignatureNotFound, model)
}

// List returns the models found in the directory, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list signatures in %s: %w", s.dir, err)
	}

	var models []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if model, ok := modelOf(e.Name()); ok {
			models = append(models, model)
		}
	}
	slices.Sort(models)
	return slices.Compact(models), nil
}

// Put writes the document atomically and removes files of the same model
// in other formats.
func (s *Store) Put(ctx context.Context, doc ports.Document) error {
	if err := checkName(doc.Model); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create signature dir: %w", err)
	}

	target := doc.Model + doc.Format.Extensions()[0]

	tmp, err := os.CreateTemp(s.dir, "."+doc.Model+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(doc.Data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write signature: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write signature: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, target)); err != nil {
		return fmt.Errorf("failed to publish signature: %w", err)
	}

	for _, ext := range extensions {
		if doc.Model+ext == target {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, doc.Model+ext)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove stale signature: %w", err)
		}
	}
	return nil
}

// Delete removes every file of model.
func (s *Store) Delete(ctx context.Context, model string) error {
	if err := checkName(model); err != nil {
		return err
	}
	for _, ext := range extensions {
		if err := os.Remove(filepath.Join(s.dir, model+ext)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete signature: %w", err)
		}
	}
	return nil
}

func checkName(model string) error {
	if model == "" || strings.HasPrefix(model, ".") || strings.ContainsAny(model, `/\`) || strings.Contains(model, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidModelName, model)
	}
	return nil
}

// modelOf maps a file name to its model. Hidden files and unknown extensions
// are ignored. Extensions match case-sensitively, as Fetch looks them up.
func modelOf(name string) (string, bool) {
	name = filepath.Base(name)
	if strings.HasPrefix(name, ".") {
		return "", false
	}
	ext := filepath.Ext(name)
	if !slices.Contains(extensions, ext) {
		return "", false
	}
	return strings.TrimSuffix(name, ext), true
}
