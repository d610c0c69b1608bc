// Package redis stores signature documents in Redis and publishes changes
// over a pub/sub channel, so every gate instance sharing the server reloads
// a model as soon as its signature is replaced.
package redis

import (
	"context"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/ports"
	"github.com/robertdigital/ml4ir/pkg/signature"
)

const (
	// DefaultPrefix is prepended to every key the store uses.
	DefaultPrefix = "ml4ir:signature:"

	fieldFormat = "format"
	fieldData   = "data"
)

// ErrReservedModelName is returned when a model name collides with the
// store's index or event keys.
var ErrReservedModelName = errors.New("reserved model name")

// Store implements ports.SignatureStore and ports.Watchable using Redis.
//
// Layout, for the default prefix:
//
//	ml4ir:signature:<model>  hash {format, data}
//	ml4ir:signature:index    sorted set of model names (all scores 0)
//	ml4ir:signature:events   pub/sub channel carrying changed model names
type Store struct {
	client *backend.Client
	prefix string
}

// Option configures the Store.
type Option func(*Store)

// WithPrefix sets the key prefix (default "ml4ir:signature:").
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New connects to the server at url (redis://...).
func New(url string, opts ...Option) (*Store, error) {
	options, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(options), opts...), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) key(model string) string { return s.prefix + model }
func (s *Store) indexKey() string        { return s.prefix + "index" }
func (s *Store) eventsChannel() string   { return s.prefix + "events" }

func checkName(model string) error {
	switch model {
	case "":
		return fmt.Errorf("%w: empty name", ErrReservedModelName)
	case "index", "events":
		return fmt.Errorf("%w: %q", ErrReservedModelName, model)
	}
	return nil
}

// Fetch reads the document of model.
func (s *Store) Fetch(ctx context.Context, model string) (ports.Document, error) {
	if checkName(model) != nil {
		return ports.Document{}, fmt.Errorf("%w: %s", domain.ErrSignatureNotFound, model)
	}

	values, err := s.client.HGetAll(ctx, s.key(model)).Result()
	if err != nil {
		return ports.Document{}, fmt.Errorf("redis error fetching signature: %w", err)
	}
	data, ok := values[fieldData]
	if !ok {
		return ports.Document{}, fmt.Errorf("%w: %s", domain.ErrSignatureNotFound, model)
	}

	format, err := signature.ParseFormat(values[fieldFormat])
	if err != nil {
		return ports.Document{}, fmt.Errorf("%w: %s: %w", domain.ErrInvalidDocument, model, err)
	}

	return ports.Document{Model: model, Format: format, Data: []byte(data)}, nil
}

// List returns the indexed model names. Members with equal scores come back
// in lexicographic order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	models, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing signatures: %w", err)
	}
	return models, nil
}

// Put stores the document, indexes it and publishes the model name.
func (s *Store) Put(ctx context.Context, doc ports.Document) error {
	if err := checkName(doc.Model); err != nil {
		return err
	}

	format := doc.Format
	if format == "" {
		format = signature.FormatYAML
	}

	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, s.key(doc.Model))
		pipe.HSet(ctx, s.key(doc.Model), fieldFormat, string(format), fieldData, doc.Data)
		pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: 0, Member: doc.Model})
		pipe.Publish(ctx, s.eventsChannel(), doc.Model)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis error storing signature: %w", err)
	}
	return nil
}

// Delete removes the document and its index entry in one transaction, and
// publishes the model name if the document existed.
func (s *Store) Delete(ctx context.Context, model string) error {
	if err := checkName(model); err != nil {
		return err
	}

	var del *backend.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		del = pipe.Del(ctx, s.key(model))
		pipe.ZRem(ctx, s.indexKey(), model)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis error deleting signature: %w", err)
	}
	if del.Val() == 0 {
		return nil
	}
	if err := s.client.Publish(ctx, s.eventsChannel(), model).Err(); err != nil {
		return fmt.Errorf("redis error publishing change: %w", err)
	}
	return nil
}

// Watch implements ports.Watchable by subscribing to the events channel.
// The subscription is confirmed before Watch returns, so changes published
// afterwards are not missed.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	pubsub := s.client.Subscribe(ctx, s.eventsChannel())
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", s.eventsChannel(), err)
	}

	messages := pubsub.Channel()
	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				select {
				case ch <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
