package repositories

import (
	"context"
	"fmt"

	"blogspace/app/models"
	"blogspace/app/storage"
)

// KVCommentRepository implements CommentRepository with one
// "comments_<postId>" key per post, ordered oldest first.
type KVCommentRepository struct {
	c *Collections
}

// NewCommentRepository creates a new KVCommentRepository
func NewCommentRepository(c *Collections) *KVCommentRepository {
	return &KVCommentRepository{c: c}
}

// ListByPost retrieves all comments for a post. A post without comments, or
// one that no longer exists, yields an empty slice.
func (r *KVCommentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return readCollection[models.Comment](ctx, r.c, storage.CommentsKey(postID))
}

// GetByID retrieves a single comment of a post
func (r *KVCommentRepository) GetByID(ctx context.Context, postID, id string) (*models.Comment, error) {
	comments, err := r.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if i := indexOfComment(comments, id); i >= 0 {
		comment := comments[i]
		return &comment, nil
	}
	return nil, ErrNotFound
}

// Append adds a comment to the end of its post's sequence. Comments are never
// edited in place. The post must exist when the write happens; otherwise
// ErrNotFound is returned and no comment key is created.
func (r *KVCommentRepository) Append(ctx context.Context, comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}

	r.c.mutex.Lock()
	defer r.c.mutex.Unlock()

	posts, err := readCollection[models.Post](ctx, r.c, storage.PostsKey)
	if err != nil {
		return err
	}
	if indexOfPost(posts, comment.PostID) < 0 {
		return fmt.Errorf("%w: post %s", ErrNotFound, comment.PostID)
	}

	key := storage.CommentsKey(comment.PostID)
	comments, err := readCollection[models.Comment](ctx, r.c, key)
	if err != nil {
		return err
	}
	if indexOfComment(comments, comment.ID) >= 0 {
		return fmt.Errorf("%w: comment %s", ErrDuplicateID, comment.ID)
	}

	return writeCollection(ctx, r.c, key, append(comments, *comment))
}

// Remove deletes a comment from its post's sequence
func (r *KVCommentRepository) Remove(ctx context.Context, postID, id string) error {
	r.c.mutex.Lock()
	defer r.c.mutex.Unlock()

	key := storage.CommentsKey(postID)
	comments, err := readCollection[models.Comment](ctx, r.c, key)
	if err != nil {
		return err
	}

	i := indexOfComment(comments, id)
	if i < 0 {
		return ErrNotFound
	}
	return writeCollection(ctx, r.c, key, append(comments[:i], comments[i+1:]...))
}

func indexOfComment(comments []models.Comment, id string) int {
	for i := range comments {
		if comments[i].ID == id {
			return i
		}
	}
	return -1
}
