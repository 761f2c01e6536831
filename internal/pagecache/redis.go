package pagecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "eventconsole:view:"

// Redis keeps one hash per view path; each field is a query-string variant.
// Deleting the hash invalidates every variant at once. A counter next to the hash holds the
// path's generation; both keys share a hash tag so they land in the same cluster slot.
type Redis struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedis(rdb redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func key(path string) string {
	return keyPrefix + "{" + Normalize(path) + "}"
}

func genKey(path string) string {
	return key(path) + ":gen"
}

func (r *Redis) Get(ctx context.Context, path, query string) ([]byte, bool, error) {
	b, err := r.rdb.HGet(ctx, key(path), query).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("view cache get %s: %w", path, err)
	}
	return b, true, nil
}

func (r *Redis) Generation(ctx context.Context, path string) (uint64, error) {
	return readGen(ctx, r.rdb, path)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGen(ctx context.Context, c getter, path string) (uint64, error) {
	gen, err := c.Get(ctx, genKey(path)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("view cache generation %s: %w", path, err)
	}
	return gen, nil
}

// Set writes the variant inside a WATCH on the generation counter, so an Invalidate that
// lands between the check and the write aborts it.
func (r *Redis) Set(ctx context.Context, path, query string, gen uint64, body []byte) (bool, error) {
	k := key(path)
	stored := false
	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readGen(ctx, tx, path)
		if err != nil {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, k, query, body)
			if r.ttl > 0 {
				p.Expire(ctx, k, r.ttl)
			}
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey(path))
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("view cache set %s: %w", path, err)
	}
	return stored, nil
}

func (r *Redis) Invalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := r.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, path := range paths {
			p.Del(ctx, key(path))
			p.Incr(ctx, genKey(path))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("view cache invalidate: %w", err)
	}
	return nil
}

// Connect opens a Redis client and waits for it to answer PING, retrying with
// exponential backoff until maxWait elapses.
func Connect(ctx context.Context, addr, password string, maxWait time.Duration) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxWait
	err := backoff.RetryNotify(func() error {
		return rdb.Ping(ctx).Err()
	}, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		log.Warn().Err(err).Str("addr", addr).Dur("retry_in", next).Msg("redis not ready")
	})
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", addr, err)
	}
	return rdb, nil
}
