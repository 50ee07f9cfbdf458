// Package redis provides a durable Storage backed by Redis.
package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/kvcache/storage"
)

var ErrNilClient = errors.New("redis storage: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	prefix      string
	closeClient bool
}

var _ storage.Storage = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	Prefix      string // prepended to every item key, e.g. "app:"
	CloseClient bool   // set true only if this storage exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, prefix: cfg.Prefix, closeClient: cfg.CloseClient}, nil
}

// Dial parses a redis:// URL and returns a storage that owns the client.
func Dial(url, prefix string) (*Redis, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return New(Config{Client: goredis.NewClient(opts), Prefix: prefix, CloseClient: true})
}

func (p *Redis) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := p.rdb.Get(ctx, p.prefix+key).Result()
	if err == goredis.Nil {
		return "", false, nil // miss
	}
	if err != nil {
		return "", false, err // transport/server error
	}
	return v, true, nil
}

// SetItem stores the item without expiry.
func (p *Redis) SetItem(ctx context.Context, key, value string) error {
	return p.rdb.Set(ctx, p.prefix+key, value, 0).Err()
}

// Close releases the underlying redis client only when this storage owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
