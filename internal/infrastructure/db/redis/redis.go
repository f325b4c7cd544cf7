package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Options selects the Redis instance backing the login throttle.
type Options struct {
	Addr        string
	DB          int
	PingTimeout time.Duration
}

func (o Options) client() *redis.Options {
	return &redis.Options{
		Addr:        o.Addr,
		DB:          o.DB,
		DialTimeout: dialTimeout,
	}
}

// Dial opens a client and waits for the server to answer PING. The client
// is closed again when the ping fails.
func Dial(ctx context.Context, opts Options) (*redis.Client, error) {
	wait := opts.PingTimeout
	if wait <= 0 {
		wait = dialTimeout
	}
	rdb := redis.NewClient(opts.client())

	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s db %d unreachable: %w", opts.Addr, opts.DB, err)
	}
	return rdb, nil
}
