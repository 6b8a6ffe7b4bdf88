package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"blogspace/app/models"
	"blogspace/app/storage"

	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrCorruptData = errors.New("corrupt persisted data")
	ErrDuplicateID = errors.New("duplicate record id")
)

// DecodePolicy decides what happens when a stored collection fails to decode
// or validate.
type DecodePolicy int

const (
	// FailFast surfaces ErrCorruptData and leaves the stored blob untouched.
	FailFast DecodePolicy = iota
	// ResetOnCorrupt logs the problem and reads the collection as empty. The
	// next write to the key replaces the corrupt blob.
	ResetOnCorrupt
)

// ParseDecodePolicy maps the configuration names "fail" and "reset".
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	switch s {
	case "fail", "":
		return FailFast, nil
	case "reset":
		return ResetOnCorrupt, nil
	default:
		return FailFast, fmt.Errorf("unknown corrupt data policy %q", s)
	}
}

func (p DecodePolicy) String() string {
	if p == ResetOnCorrupt {
		return "reset"
	}
	return "fail"
}

// Collections is the shared access point the repositories use to read and
// write whole collections. A single mutex serializes read-modify-write
// cycles across all keys so a post deletion cannot interleave with a comment
// append on the same post.
type Collections struct {
	adapter storage.Adapter
	policy  DecodePolicy
	logger  *zap.Logger
	mutex   sync.Mutex
}

// NewCollections wraps adapter with the given decode policy.
func NewCollections(adapter storage.Adapter, policy DecodePolicy, logger *zap.Logger) *Collections {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collections{adapter: adapter, policy: policy, logger: logger}
}

// Adapter returns the underlying persistence adapter.
func (c *Collections) Adapter() storage.Adapter {
	return c.adapter
}

// readCollection loads and validates the sequence stored under key. An absent
// key reads as an empty sequence.
func readCollection[T any, PT interface {
	*T
	models.Validatable
}](ctx context.Context, c *Collections, key string) ([]T, error) {
	data, err := c.adapter.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := unmarshalEntity(data, &items); err != nil {
		return corrupt[T](c, key, err)
	}
	for i := range items {
		if err := PT(&items[i]).Validate(); err != nil {
			return corrupt[T](c, key, fmt.Errorf("record %d: %w", i, err))
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func corrupt[T any](c *Collections, key string, cause error) ([]T, error) {
	if c.policy == ResetOnCorrupt {
		c.logger.Warn("discarding corrupt collection",
			zap.String("key", key),
			zap.Error(cause),
		)
		return []T{}, nil
	}
	return nil, fmt.Errorf("%w: key %q: %v", ErrCorruptData, key, cause)
}

// writeCollection encodes items and stores them under key.
func writeCollection[T any](ctx context.Context, c *Collections, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := marshalEntity(items)
	if err != nil {
		return err
	}
	return c.adapter.Set(ctx, key, data)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
