package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	backend "github.com/redis/go-redis/v9"
)

// noExpiry is the index score of sheets saved without a TTL (2100-01-01).
const noExpiry = 4102444800

// Store implements ports.KeyStore using Redis.
// Sheets live under <prefix>sheet:<name>; a sorted set at <prefix>sheets indexes them
// by expiry so List never needs KEYS or SCAN.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL makes saved sheets expire, e.g. at the end of the day they are valid for.
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

// WithClock overrides the clock used to score and prune the index.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "typeb:",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(name string) string {
	return s.prefix + "sheet:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "sheets"
}

// Save writes the sheet and its index entry in one pipeline.
func (s *Store) Save(ctx context.Context, sheet keysheet.Sheet) error {
	if err := keysheet.ValidateName(sheet.Name); err != nil {
		return err
	}

	data, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal key sheet: %w", err)
	}

	score := float64(noExpiry)
	if s.ttl > 0 {
		score = float64(s.now().Add(s.ttl).Unix())
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sheet.Name), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: sheet.Name,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a sheet by name.
func (s *Store) Load(ctx context.Context, name string) (keysheet.Sheet, error) {
	val, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return keysheet.Sheet{}, domain.ErrKeyNotFound
		}
		return keysheet.Sheet{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var sheet keysheet.Sheet
	if err := json.Unmarshal(val, &sheet); err != nil {
		return keysheet.Sheet{}, fmt.Errorf("failed to unmarshal key sheet: %w", err)
	}
	return sheet, nil
}

// Delete removes the sheet and its index entry.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}

// List prunes expired index entries, then returns the remaining names sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(s.now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired key sheets: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list key sheets: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
