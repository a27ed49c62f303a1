package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	pkgerrors "github.com/pkg/errors"
)

type Client struct {
	rdb *redis.Client
}

func NewClient(addr string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, pkgerrors.Wrapf(err, "ping redis at %s", addr)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) bool {
	key = fmt.Sprintf("ratelimit:%s", key)

	hits, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false
	}

	// The window starts with the first hit and is not extended by later ones.
	if hits == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false
		}
	}

	return hits > int64(limit)
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return data, err
}

func (c *Client) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := c.Delete(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return pkgerrors.Wrapf(err, "scan %s*", prefix)
	}
	return c.Delete(ctx, batch...)
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
