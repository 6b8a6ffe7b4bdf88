// Package storage provides the key-value persistence adapters that back the
// repositories. Values are opaque byte blobs; the repositories own encoding.
package storage

import (
	"context"
	"errors"
	"strings"
)

// Well-known keys of the persisted layout.
const (
	UsersKey          = "users"
	PostsKey          = "posts"
	CredentialsKey    = "credentials"
	CommentsKeyPrefix = "comments_"
)

// ErrClosed is returned by adapters used after Close.
var ErrClosed = errors.New("storage: adapter closed")

// Adapter is a synchronous key-value store. Get on an absent key returns
// (nil, nil) and Remove on an absent key succeeds. Writes to different keys
// are not atomic with respect to each other.
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// CommentsKey returns the key holding the comment sequence of a post.
func CommentsKey(postID string) string {
	return CommentsKeyPrefix + postID
}

// Family maps a key to its collection family, used as a metrics label.
func Family(key string) string {
	switch {
	case key == UsersKey, key == PostsKey, key == CredentialsKey:
		return key
	case strings.HasPrefix(key, CommentsKeyPrefix):
		return "comments"
	default:
		return "other"
	}
}
