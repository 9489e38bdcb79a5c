package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PostListKey holds the encoded result of the "all posts" query.
const PostListKey = "folio:posts:all"

// Store is the subset of cache operations the services rely on.
// Get returns ok=false on a miss. Every key has a generation that Invalidate
// bumps; SetIfGeneration only writes while the generation is unchanged, so a
// value computed before an invalidation is never stored after it.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Generation(ctx context.Context, key string) (int64, error)
	SetIfGeneration(ctx context.Context, key string, generation int64, value []byte, ttl time.Duration) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// GenerationKey names the counter that versions key.
func GenerationKey(key string) string {
	return key + ":gen"
}

// Redis wraps go-redis for the application.
type Redis struct {
	rdb *redis.Client
}

// Connect creates a Redis client and verifies connectivity.
func Connect(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{rdb: rdb}, nil
}

// Get retrieves a value, reporting ok=false if the key does not exist.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[2].
var setIfGeneration = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[2]) or "0")
if current ~= tonumber(ARGV[2]) then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ttl)
else
	redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

// Generation returns the current generation of key, 0 if it was never invalidated.
func (r *Redis) Generation(ctx context.Context, key string) (int64, error) {
	gen, err := r.rdb.Get(ctx, GenerationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetIfGeneration stores value with optional TTL (0 = no expiry) unless key was
// invalidated since generation was read. It reports whether the value was written.
func (r *Redis) SetIfGeneration(ctx context.Context, key string, generation int64, value []byte, ttl time.Duration) (bool, error) {
	written, err := setIfGeneration.Run(ctx, r.rdb,
		[]string{key, GenerationKey(key)},
		value, generation, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return written == 1, nil
}

// Invalidate deletes key and bumps its generation in one transaction.
func (r *Redis) Invalidate(ctx context.Context, key string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(key))
		pipe.Del(ctx, key)
		return nil
	})
	return err
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Nop is a Store that never holds anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Generation(context.Context, string) (int64, error) { return 0, nil }
func (Nop) Invalidate(context.Context, string) error          { return nil }
func (Nop) SetIfGeneration(context.Context, string, int64, []byte, time.Duration) (bool, error) {
	return false, nil
}
