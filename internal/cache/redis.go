package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/njchilds90/polygrade"
	backend "github.com/redis/go-redis/v9"
)

// Store caches grading results in Redis, keyed by (mode, expected, answer).
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for cached verdicts. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis-backed store.
func New(address, password string, db int, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient creates a store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "polygrade:verdict:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Key derives the cache key. Inputs are hashed so arbitrary student text
// never reaches the key space verbatim.
func (s *Store) Key(mode polygrade.Mode, expected, answer string) string {
	h := sha256.New()
	for _, part := range []string{string(mode), expected, answer} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return s.prefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (polygrade.Result, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, backend.Nil) {
		return polygrade.Result{}, false, nil
	}
	if err != nil {
		return polygrade.Result{}, false, fmt.Errorf("failed to read from redis: %w", err)
	}
	var res polygrade.Result
	if err := json.Unmarshal(val, &res); err != nil {
		return polygrade.Result{}, false, fmt.Errorf("failed to unmarshal verdict: %w", err)
	}
	return res, true, nil
}

// Set stores a result under key.
func (s *Store) Set(ctx context.Context, key string, res polygrade.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}
