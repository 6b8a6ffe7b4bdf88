package storage

import (
	"context"

	"blogspace/app/metrics"

	"go.uber.org/zap"
)

type instrumented struct {
	next    Adapter
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// Instrument wraps an adapter so every operation is counted and failures are
// logged.
func Instrument(next Adapter, m *metrics.Metrics, logger *zap.Logger) Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumented{next: next, metrics: m, logger: logger}
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := i.next.Get(ctx, key)
	i.observe("get", key, err)
	return value, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte) error {
	err := i.next.Set(ctx, key, value)
	i.observe("set", key, err)
	return err
}

func (i *instrumented) Remove(ctx context.Context, key string) error {
	err := i.next.Remove(ctx, key)
	i.observe("remove", key, err)
	return err
}

func (i *instrumented) Close() error {
	return i.next.Close()
}

func (i *instrumented) observe(op, key string, err error) {
	family := Family(key)
	if i.metrics != nil {
		i.metrics.StorageOps.WithLabelValues(op, family).Inc()
	}
	if err == nil {
		i.logger.Debug("storage operation", zap.String("op", op), zap.String("key", key))
		return
	}
	if i.metrics != nil {
		i.metrics.StorageErrors.WithLabelValues(op, family).Inc()
	}
	i.logger.Warn("storage operation failed",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(err),
	)
}
