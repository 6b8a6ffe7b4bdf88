package services

import (
	"context"
	"fmt"
	"time"

	"blogspace/app/models"
	"blogspace/app/repositories"
	"blogspace/app/store"

	"go.uber.org/zap"
)

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required"`
}

// PostView is a post resolved for display.
type PostView struct {
	models.Post
	AuthorName string        `json:"authorName"`
	Comments   []CommentView `json:"comments"`
}

// PostService handles business logic for blog posts. Every mutation is
// persisted first and then mirrored into the store.
type PostService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository
	store    *store.Store
	logger   *zap.Logger
	now      func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, comments repositories.CommentRepository, users repositories.UserRepository, st *store.Store, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{
		posts:    posts,
		comments: comments,
		users:    users,
		store:    st,
		logger:   logger,
		now:      time.Now,
	}
}

// LoadAll replaces the displayed posts with the whole persisted collection.
func (s *PostService) LoadAll(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	s.store.Dispatch(store.SetPosts{Posts: posts})
	return posts, nil
}

// Create stores a new post authored by the current user at the head of the
// collection.
func (s *PostService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	user, err := currentUser(s.store)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateStruct(in); err != nil {
		return nil, invalid(err)
	}

	post := &models.Post{Title: in.Title, Content: in.Content, AuthorID: user.ID}
	post.BeforeCreate(s.now())
	if err := post.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.posts.Upsert(ctx, post); err != nil {
		return nil, err
	}
	s.store.Dispatch(store.AddPost{Post: *post})

	s.logger.Info("post created", zap.String("post_id", post.ID), zap.String("author_id", post.AuthorID))
	return post, nil
}

// Get resolves a post together with its author name and comments. The
// comments are also loaded into the store.
func (s *PostService) Get(ctx context.Context, id string) (*PostView, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	s.store.Dispatch(store.SetComments{PostID: id, Comments: comments})

	names, err := authorNames(ctx, s.users)
	if err != nil {
		return nil, err
	}

	view := &PostView{
		Post:       *post,
		AuthorName: nameOr(names, post.AuthorID, models.UnknownAuthor),
		Comments:   commentViews(comments, names),
	}
	return view, nil
}

// Update edits the title and content of a post written by the current user.
// ID, author and creation time are kept; UpdatedAt advances. The author check
// runs against the stored post inside the repository's write cycle.
func (s *PostService) Update(ctx context.Context, id string, in PostInput) (*models.Post, error) {
	user, err := currentUser(s.store)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateStruct(in); err != nil {
		return nil, invalid(err)
	}

	post, err := s.posts.Update(ctx, id, func(p *models.Post) error {
		if !p.IsAuthoredBy(user.ID) {
			return ErrForbidden
		}
		p.Title = in.Title
		p.Content = in.Content
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.store.Dispatch(store.UpdatePost{Post: *post})

	s.logger.Info("post updated", zap.String("post_id", post.ID))
	return post, nil
}

// Delete removes a post written by the current user along with its comments.
func (s *PostService) Delete(ctx context.Context, id string) error {
	user, err := currentUser(s.store)
	if err != nil {
		return err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.IsAuthoredBy(user.ID) {
		return ErrForbidden
	}

	if err := s.posts.Remove(ctx, id); err != nil {
		return err
	}
	s.store.Dispatch(store.DeletePost{ID: id})
	s.store.Dispatch(store.SetComments{PostID: id})

	s.logger.Info("post deleted", zap.String("post_id", id))
	return nil
}

// authorNames maps user IDs to usernames.
func authorNames(ctx context.Context, users repositories.UserRepository) (map[string]string, error) {
	list, err := users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authors: %w", err)
	}
	names := make(map[string]string, len(list))
	for _, u := range list {
		names[u.ID] = u.Username
	}
	return names, nil
}

func nameOr(names map[string]string, id, fallback string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fallback
}
