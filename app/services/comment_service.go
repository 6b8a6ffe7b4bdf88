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

// CommentInput is the payload for a new comment.
type CommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// CommentView is a comment resolved for display.
type CommentView struct {
	models.Comment
	AuthorName string `json:"authorName"`
}

// CommentService handles business logic for comments
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	users    repositories.UserRepository
	store    *store.Store
	logger   *zap.Logger
	now      func() time.Time
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository, users repositories.UserRepository, st *store.Store, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{
		comments: comments,
		posts:    posts,
		users:    users,
		store:    st,
		logger:   logger,
		now:      time.Now,
	}
}

// List loads the comments of a post, oldest first, into the store.
func (s *CommentService) List(ctx context.Context, postID string) ([]CommentView, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	s.store.Dispatch(store.SetComments{PostID: postID, Comments: comments})

	names, err := authorNames(ctx, s.users)
	if err != nil {
		return nil, err
	}
	return commentViews(comments, names), nil
}

// Add appends a comment by the current user to a post.
func (s *CommentService) Add(ctx context.Context, postID string, in CommentInput) (*models.Comment, error) {
	user, err := currentUser(s.store)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateStruct(in); err != nil {
		return nil, invalid(err)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{Content: in.Content, AuthorID: user.ID}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	comment.BeforeCreate(s.now())
	if err := comment.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.comments.Append(ctx, comment); err != nil {
		return nil, err
	}
	s.store.Dispatch(store.AddComment{Comment: *comment})

	s.logger.Info("comment added", zap.String("comment_id", comment.ID), zap.String("post_id", postID))
	return comment, nil
}

// Delete removes a comment written by the current user.
func (s *CommentService) Delete(ctx context.Context, postID, commentID string) error {
	user, err := currentUser(s.store)
	if err != nil {
		return err
	}

	comment, err := s.comments.GetByID(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !comment.IsAuthoredBy(user.ID) {
		return ErrForbidden
	}

	if err := s.comments.Remove(ctx, postID, commentID); err != nil {
		return fmt.Errorf("failed to delete comment %s: %w", commentID, err)
	}
	s.store.Dispatch(store.DeleteComment{PostID: postID, CommentID: commentID})
	return nil
}

func commentViews(comments []models.Comment, names map[string]string) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{Comment: c, AuthorName: nameOr(names, c.AuthorID, models.UnknownUser)})
	}
	return views
}
