package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores entries JSON-encoded in a shared Redis, with expiry handled
// server-side. Lets multiple proxy replicas share one feed cache.
type Redis struct {
	client *redis.Client
	log    *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(addr, password string, db int, log *slog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis at %s: %w", addr, err)
	}

	return &Redis{client: client, log: log}, nil
}

// Get returns the entry under key when present. Decode failures count as
// misses and evict the bad value.
func (r *Redis) Get(ctx context.Context, key string) (*Entry, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("redis GET failed", "key", key, "error", err)
		}
		r.misses.Add(1)
		return nil, false
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		r.log.Warn("dropping undecodable cache entry", "key", key, "error", err)
		r.client.Del(ctx, key)
		r.misses.Add(1)
		return nil, false
	}

	r.hits.Add(1)
	return &e, true
}

// Set stores e under key with the given TTL. Failures are logged only; a
// broken cache must not take the feed down.
func (r *Redis) Set(ctx context.Context, key string, e *Entry, ttl time.Duration) {
	e.ExpiresAt = time.Now().Add(ttl)

	raw, err := json.Marshal(e)
	if err != nil {
		r.log.Warn("encoding cache entry failed", "key", key, "error", err)
		return
	}

	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		r.log.Warn("redis SET failed", "key", key, "error", err)
		return
	}
	r.sets.Add(1)
}

// Delete removes the entry under key.
func (r *Redis) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.log.Warn("redis DEL failed", "key", key, "error", err)
	}
}

// Stats returns local hit/miss/set counters. The key count is not tracked
// for the shared backend.
func (r *Redis) Stats() Stats {
	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
		Sets:   r.sets.Load(),
	}
}
