package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:        "c1",
				PostID:    "p1",
				AuthorID:  "u1",
				Content:   "This is a valid comment",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing post",
			comment: &Comment{
				ID:        "c1",
				AuthorID:  "u1",
				Content:   "This is a valid comment",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "empty content",
			comment: &Comment{
				ID:        "c1",
				PostID:    "p1",
				AuthorID:  "u1",
				Content:   "",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "content too long",
			comment: &Comment{
				ID:        "c1",
				PostID:    "p1",
				AuthorID:  "u1",
				Content:   strings.Repeat("x", 1001),
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &Comment{
				ID:       "c1",
				PostID:   "p1",
				AuthorID: "u1",
				Content:  "Valid content",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := &Comment{
		PostID:   "p1",
		AuthorID: "u1",
		Content:  "Test Comment",
	}

	assert.True(t, comment.CreatedAt.IsZero())
	comment.BeforeCreate(time.Now())
	assert.False(t, comment.CreatedAt.IsZero())
	assert.NotEmpty(t, comment.ID)
}

func TestCommentSetPost(t *testing.T) {
	comment := &Comment{
		ID:       "c1",
		AuthorID: "u1",
		Content:  "Test Comment",
	}

	t.Run("set valid post", func(t *testing.T) {
		post := &Post{
			ID:      "p1",
			Title:   "Test Post",
			Content: "Test Content",
		}

		err := comment.SetPost(post)
		assert.NoError(t, err)
		assert.Equal(t, post.ID, comment.PostID)
	})

	t.Run("set nil post", func(t *testing.T) {
		err := comment.SetPost(nil)
		assert.Error(t, err)
	})
}
