package redisflags

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/featurekit"
)

// Evaluator resolves features through Redis string keys.
type Evaluator struct {
	client redis.UniversalClient
	cfg    Config
	log    *slog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	enabled bool
	decided bool
	expires time.Time
}

// Connect establishes a Redis connection using cfg and returns an evaluator
// over it. Connection attempts are retried per RetryAttempts/RetryInterval
// within ConnectTimeout. The evaluator owns the client; Close releases it.
func Connect(ctx context.Context, cfg Config) (*Evaluator, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrParseConnString, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return NewEvaluator(client, cfg), nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrNotReady
}

// NewEvaluator wraps an already-connected client. The caller keeps ownership
// of the client; Close on the evaluator still closes it.
func NewEvaluator(client redis.UniversalClient, cfg Config) *Evaluator {
	return &Evaluator{
		client: client,
		cfg:    cfg,
		log:    slog.Default().With(slog.String("component", "redisflags")),
		cache:  make(map[string]cacheEntry),
	}
}

// Close releases the underlying Redis client.
func (e *Evaluator) Close() error {
	return e.client.Close()
}

// Key returns the Redis key consulted for a feature.
func (e *Evaluator) Key(feature string) string {
	return e.cfg.KeyPrefix + feature
}

func (e *Evaluator) IsEnabled(feature string, _ *featurekit.Context) (bool, bool) {
	if enabled, decided, ok := e.cached(feature); ok {
		return enabled, decided
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.LookupTimeout)
	defer cancel()

	raw, err := e.client.Get(ctx, e.Key(feature)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// Absent keys abstain, and the absence is cached like a decision.
		e.store(feature, false, false)
		return false, false
	case err != nil:
		// Transient failures abstain without poisoning the cache.
		e.log.Debug("feature lookup failed",
			slog.String("feature", feature),
			slog.Any("error", err),
		)
		return false, false
	}

	enabled, decided := parseDecision(raw)
	if !decided {
		e.log.Debug("feature key holds a non-boolean value",
			slog.String("feature", feature),
			slog.String("value", raw),
		)
	}
	e.store(feature, enabled, decided)
	return enabled, decided
}

func (e *Evaluator) cached(feature string) (enabled, decided, ok bool) {
	if e.cfg.CacheTTL <= 0 {
		return false, false, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.cache[feature]
	if !ok || time.Now().After(entry.expires) {
		return false, false, false
	}
	return entry.enabled, entry.decided, true
}

func (e *Evaluator) store(feature string, enabled, decided bool) {
	if e.cfg.CacheTTL <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache[feature] = cacheEntry{
		enabled: enabled,
		decided: decided,
		expires: time.Now().Add(e.cfg.CacheTTL),
	}
}

func parseDecision(raw string) (enabled, decided bool) {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return v, true
}
