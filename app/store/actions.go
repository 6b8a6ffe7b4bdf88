package store

import "blogspace/app/models"

// Action is a state transition request. Each concrete action is handled by
// exactly one slice reducer.
type Action interface {
	// Type returns the action name, e.g. "posts/addPost".
	Type() string
}

// Auth slice actions.
type (
	Login  struct{ User models.User }
	Logout struct{}
)

// Posts slice actions.
type (
	SetPosts      struct{ Posts []models.Post }
	AppendPosts   struct{ Posts []models.Post }
	AddPost       struct{ Post models.Post }
	UpdatePost    struct{ Post models.Post }
	DeletePost    struct{ ID string }
	SetLoading    struct{ Loading bool }
	IncrementPage struct{}
	SetHasMore    struct{ HasMore bool }
	// ResetFeed restores the posts slice to its initial state.
	ResetFeed struct{}
)

// Comments slice actions.
type (
	SetComments struct {
		PostID   string
		Comments []models.Comment
	}
	AddComment    struct{ Comment models.Comment }
	DeleteComment struct{ PostID, CommentID string }
)

func (Login) Type() string         { return "auth/login" }
func (Logout) Type() string        { return "auth/logout" }
func (SetPosts) Type() string      { return "posts/setPosts" }
func (AppendPosts) Type() string   { return "posts/appendPosts" }
func (AddPost) Type() string       { return "posts/addPost" }
func (UpdatePost) Type() string    { return "posts/updatePost" }
func (DeletePost) Type() string    { return "posts/deletePost" }
func (SetLoading) Type() string    { return "posts/setLoading" }
func (IncrementPage) Type() string { return "posts/incrementPage" }
func (SetHasMore) Type() string    { return "posts/setHasMore" }
func (ResetFeed) Type() string     { return "posts/reset" }
func (SetComments) Type() string   { return "comments/setComments" }
func (AddComment) Type() string    { return "comments/addComment" }
func (DeleteComment) Type() string { return "comments/deleteComment" }
