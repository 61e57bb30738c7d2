package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hajimekit/hajime/core/logger"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "hajime:session:"

const maxMintAttempts = 8

// RedisStore keeps sessions in Redis as JSON objects, so every process
// pointed at the same server shares them. Values round-trip through JSON:
// numbers come back as float64 and structs as map[string]any.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
	newID  func() string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix sets the key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRedisTTL sets the idle timeout, refreshed on every read. Zero keeps sessions forever.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithRedisLogger sets the logger for store errors.
func WithRedisLogger(l *slog.Logger) RedisOption {
	return func(s *RedisStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRedisIDGenerator overrides session identifier generation (default: UUID v4).
func WithRedisIDGenerator(fn func() string) RedisOption {
	return func(s *RedisStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewRedisStore creates a session store backed by client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: DefaultRedisPrefix,
		ttl:    24 * time.Hour,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:  uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Resolve implements Store. Redis failures are logged and answered with a
// fresh session so a request is never refused because of the store.
func (s *RedisStore) Resolve(ctx context.Context, cookieHeader string) (string, *Bag) {
	if id, ok := ParseCookie(cookieHeader, CookieName); ok {
		bag, err := s.load(ctx, id)
		switch {
		case err == nil:
			return id, bag
		case !errors.Is(err, redis.Nil):
			s.logger.WarnContext(ctx, "session lookup failed", logger.Component("session"), logger.Error(err))
		}
	}

	bag := NewBag()
	for range maxMintAttempts {
		id := s.newID()
		created, err := s.client.SetNX(ctx, s.key(id), "{}", s.ttl).Result()
		if err != nil {
			s.logger.WarnContext(ctx, "session create failed", logger.Component("session"), logger.Error(err))
			return id, bag
		}
		if created {
			return id, bag
		}
	}

	// Every candidate collided; fall back to an id that is not stored yet.
	return s.newID(), bag
}

// Persist implements Store.
func (s *RedisStore) Persist(ctx context.Context, id string, bag *Bag) {
	if id == "" {
		return
	}

	data := map[string]any{}
	if bag != nil {
		data = bag.Snapshot()
	}

	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.ErrorContext(ctx, "session encode failed",
			logger.Component("session"), logger.SessionID(id), logger.Error(err))
		return
	}

	if err := s.client.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "session save failed",
			logger.Component("session"), logger.SessionID(id), logger.Error(err))
	}
}

// Delete removes a session.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Healthcheck pings the Redis server.
func (s *RedisStore) Healthcheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) load(ctx context.Context, id string) (*Bag, error) {
	var (
		raw string
		err error
	)
	if s.ttl > 0 {
		raw, err = s.client.GetEx(ctx, s.key(id), s.ttl).Result()
	} else {
		raw, err = s.client.Get(ctx, s.key(id)).Result()
	}
	if err != nil {
		return nil, err
	}

	data := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return NewBag(data), nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}
