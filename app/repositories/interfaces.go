package repositories

import (
	"context"

	"blogspace/app/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Upsert(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id string, mutate func(*models.Post) error) (*models.Post, error)
	Remove(ctx context.Context, id string) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	GetByID(ctx context.Context, postID, id string) (*models.Comment, error)
	Append(ctx context.Context, comment *models.Comment) error
	Remove(ctx context.Context, postID, id string) error
}

// CredentialRepository stores password hashes apart from user records
type CredentialRepository interface {
	Get(ctx context.Context, userID string) (*models.Credential, error)
	Set(ctx context.Context, cred *models.Credential) error
	Remove(ctx context.Context, userID string) error
}
