package repositories

import (
	"context"
	"fmt"
	"time"

	"blogspace/app/models"
	"blogspace/app/storage"
)

// KVPostRepository implements PostRepository over the "posts" key. The
// collection is ordered newest first.
type KVPostRepository struct {
	c   *Collections
	now func() time.Time
}

// NewPostRepository creates a new KVPostRepository
func NewPostRepository(c *Collections) *KVPostRepository {
	return &KVPostRepository{c: c, now: time.Now}
}

// WithClock replaces the time source used for UpdatedAt.
func (r *KVPostRepository) WithClock(now func() time.Time) *KVPostRepository {
	r.now = now
	return r
}

// List returns every stored post, newest first
func (r *KVPostRepository) List(ctx context.Context) ([]models.Post, error) {
	return readCollection[models.Post](ctx, r.c, storage.PostsKey)
}

// GetByID retrieves a post by ID
func (r *KVPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	posts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfPost(posts, id); i >= 0 {
		post := posts[i]
		return &post, nil
	}
	return nil, ErrNotFound
}

// Upsert replaces the post with the same ID in place, refreshing UpdatedAt,
// or prepends it when no such post exists.
func (r *KVPostRepository) Upsert(ctx context.Context, post *models.Post) error {
	r.c.mutex.Lock()
	defer r.c.mutex.Unlock()

	posts, err := readCollection[models.Post](ctx, r.c, storage.PostsKey)
	if err != nil {
		return err
	}

	if i := indexOfPost(posts, post.ID); i >= 0 {
		post.UpdatedAt = posts[i].UpdatedAt
		post.Touch(r.now())
		if err := post.Validate(); err != nil {
			return fmt.Errorf("invalid post: %w", err)
		}
		posts[i] = *post
	} else {
		if err := post.Validate(); err != nil {
			return fmt.Errorf("invalid post: %w", err)
		}
		posts = append([]models.Post{*post}, posts...)
	}

	return writeCollection(ctx, r.c, storage.PostsKey, posts)
}

// Update applies mutate to the stored post with the given ID and writes it
// back, refreshing UpdatedAt. The read, mutate and write happen under the
// collection lock, so a post removed meanwhile yields ErrNotFound and is never
// re-created. An error from mutate aborts the write.
func (r *KVPostRepository) Update(ctx context.Context, id string, mutate func(*models.Post) error) (*models.Post, error) {
	r.c.mutex.Lock()
	defer r.c.mutex.Unlock()

	posts, err := readCollection[models.Post](ctx, r.c, storage.PostsKey)
	if err != nil {
		return nil, err
	}

	i := indexOfPost(posts, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	post := posts[i]
	if err := mutate(&post); err != nil {
		return nil, err
	}
	post.ID = posts[i].ID
	post.UpdatedAt = posts[i].UpdatedAt
	post.Touch(r.now())
	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}
	posts[i] = post

	if err := writeCollection(ctx, r.c, storage.PostsKey, posts); err != nil {
		return nil, err
	}
	return &post, nil
}

// Remove deletes a post and then its comment sequence. The two writes are not
// atomic; a failure between them leaves orphaned comments that are never read.
func (r *KVPostRepository) Remove(ctx context.Context, id string) error {
	r.c.mutex.Lock()
	defer r.c.mutex.Unlock()

	posts, err := readCollection[models.Post](ctx, r.c, storage.PostsKey)
	if err != nil {
		return err
	}

	i := indexOfPost(posts, id)
	if i < 0 {
		return ErrNotFound
	}
	posts = append(posts[:i], posts[i+1:]...)

	if err := writeCollection(ctx, r.c, storage.PostsKey, posts); err != nil {
		return err
	}
	if err := r.c.adapter.Remove(ctx, storage.CommentsKey(id)); err != nil {
		return fmt.Errorf("post %s removed but its comments were not: %w", id, err)
	}
	return nil
}

func indexOfPost(posts []models.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
