package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    *User
		wantErr bool
	}{
		{"valid user", &User{ID: "u1", Username: "ana", Email: "a@x.com"}, false},
		{"missing id", &User{Username: "ana", Email: "a@x.com"}, true},
		{"username too short", &User{ID: "u1", Username: "a", Email: "a@x.com"}, true},
		{"bad email", &User{ID: "u1", Username: "ana", Email: "not-an-email"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserBeforeCreate(t *testing.T) {
	user := &User{Username: "  ana ", Email: " A@X.com "}
	user.BeforeCreate()

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, "a@x.com", user.Email)

	id := user.ID
	user.BeforeCreate()
	assert.Equal(t, id, user.ID, "existing IDs are kept")
}
