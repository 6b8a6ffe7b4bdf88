package models

import "time"

// User is a registered author. Passwords are never part of the record.
type User struct {
	ID       string `json:"id" validate:"required"`
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
}

// Post represents a blog post. AuthorID is a weak reference to a User.
type Post struct {
	ID        string    `json:"id" validate:"required"`
	Title     string    `json:"title" validate:"required,min=1,max=200"`
	Content   string    `json:"content" validate:"required"`
	AuthorID  string    `json:"authorId" validate:"required"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt" validate:"required"`
}

// Comment represents a comment on a blog post. PostID and AuthorID are weak references.
type Comment struct {
	ID        string    `json:"id" validate:"required"`
	Content   string    `json:"content" validate:"required,min=1,max=1000"`
	PostID    string    `json:"postId" validate:"required"`
	AuthorID  string    `json:"authorId" validate:"required"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}

// Credential holds the password hash for a user, stored apart from the user record.
type Credential struct {
	UserID       string `json:"userId" validate:"required"`
	PasswordHash string `json:"passwordHash" validate:"required"`
}
