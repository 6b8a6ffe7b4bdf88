package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogspace/app/feed"
	"blogspace/app/repositories"
	"blogspace/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &services.ValidationError{Err: errors.New("title required")}, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("loading post: %w", repositories.ErrNotFound), http.StatusNotFound},
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not authenticated", services.ErrNotAuthenticated, http.StatusUnauthorized},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"email taken", services.ErrEmailTaken, http.StatusConflict},
		{"duplicate id", repositories.ErrDuplicateID, http.StatusConflict},
		{"load in progress", feed.ErrLoadInProgress, http.StatusConflict},
		{"no more posts", feed.ErrNoMorePosts, http.StatusConflict},
		{"corrupt data", repositories.ErrCorruptData, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
		})
	}
}

func TestHandleErrorHidesInternalDetail(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	req := httptest.NewRequest("GET", "/api/posts", nil)

	w := httptest.NewRecorder()
	handleError(w, req, zap.New(core), fmt.Errorf("read posts: %w", repositories.ErrCorruptData))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error)
	assert.Equal(t, 1, logs.Len())

	w = httptest.NewRecorder()
	handleError(w, req, zap.New(core), services.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, services.ErrForbidden.Error(), body.Error)
	assert.Equal(t, 1, logs.Len())
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	var in services.PostInput
	req := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"title":"A","content":"x","authorId":"u9"}`))
	assert.Error(t, decode(req, &in))

	req = httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"title":"A","content":"x"}`))
	require.NoError(t, decode(req, &in))
	assert.Equal(t, "A", in.Title)
}

func TestSendJSONLogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w := httptest.NewRecorder()

	sendJSON(w, zap.New(core), http.StatusOK, map[string]interface{}{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	entries := logs.FilterMessage("failed to encode response").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)

	w = httptest.NewRecorder()
	sendJSON(w, zap.New(core), http.StatusCreated, errorBody{Error: "x"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, logs.Len())
}
