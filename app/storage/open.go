package storage

import (
	"context"
	"fmt"
)

// Supported drivers.
const (
	DriverBadger = "badger"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options selects and configures an adapter.
type Options struct {
	Driver      string
	Path        string
	RedisAddr   string
	RedisPrefix string
}

// Open builds the adapter described by opts.
func Open(ctx context.Context, opts Options) (Adapter, error) {
	switch opts.Driver {
	case DriverBadger, "":
		return OpenBadger(opts.Path)
	case DriverRedis:
		return DialRedis(ctx, opts.RedisAddr, opts.RedisPrefix)
	case DriverMemory:
		return NewMemoryAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
