package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogspace/app/feed"
	"blogspace/app/metrics"
	"blogspace/app/models"
	"blogspace/app/repositories"
	"blogspace/app/services"
	"blogspace/app/storage"
	"blogspace/app/store"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	router *mux.Router
	store  *store.Store
	posts  *repositories.KVPostRepository
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	c := repositories.NewCollections(storage.NewMemoryAdapter(), repositories.FailFast, nil)
	users := repositories.NewUserRepository(c)
	posts := repositories.NewPostRepository(c)
	comments := repositories.NewCommentRepository(c)
	st := store.New()

	router := SetupRoutes(Deps{
		Auth:     services.NewAuthService(users, repositories.NewCredentialRepository(c), st, nil).WithHashCost(bcrypt.MinCost),
		Posts:    services.NewPostService(posts, comments, users, st, nil),
		Comments: services.NewCommentService(comments, posts, users, st, nil),
		Cursor:   feed.NewCursor(posts, st, feed.Options{PageSize: 10}),
		Store:    st,
		Metrics:  metrics.New(),
	})
	return &testApp{router: router, store: st, posts: posts}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestAuthRoutes(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, "POST", "/api/register", map[string]string{"username": "ana", "email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	w = app.do(t, "POST", "/api/register", map[string]string{"username": "ana", "email": "a@x.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, "POST", "/api/register", map[string]string{"username": "a", "email": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, "POST", "/api/login", map[string]string{"email": "a@x.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, "POST", "/api/login", map[string]string{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var auth store.AuthState
	decodeBody(t, w, &auth)
	assert.True(t, auth.IsAuthenticated)
	assert.Equal(t, "ana", auth.User.Username)

	w = app.do(t, "GET", "/api/session", nil)
	decodeBody(t, w, &auth)
	assert.True(t, auth.IsAuthenticated)

	w = app.do(t, "POST", "/api/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, app.store.Auth().IsAuthenticated)

	w = app.do(t, "POST", "/api/login", map[string]string{"email": "a@x.com", "password": "secret1", "extra": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostAndCommentRoutes(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, "POST", "/api/posts", map[string]string{"title": "A", "content": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	app.do(t, "POST", "/api/register", map[string]string{"username": "ana", "email": "a@x.com"})
	app.do(t, "POST", "/api/register", map[string]string{"username": "bo", "email": "b@x.com"})
	require.Equal(t, http.StatusOK, app.do(t, "POST", "/api/login", map[string]string{"email": "a@x.com"}).Code)

	w = app.do(t, "POST", "/api/posts", map[string]string{"title": "A", "content": "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post models.Post
	decodeBody(t, w, &post)

	w = app.do(t, "POST", "/api/posts", map[string]string{"title": "", "content": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, "POST", "/api/posts/"+post.ID+"/comments", map[string]string{"content": "first"})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.Comment
	decodeBody(t, w, &comment)

	w = app.do(t, "GET", "/api/posts/"+post.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view services.PostView
	decodeBody(t, w, &view)
	assert.Equal(t, "ana", view.AuthorName)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "first", view.Comments[0].Content)

	w = app.do(t, "GET", "/api/posts/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, "GET", "/api/posts/"+post.ID+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var views []services.CommentView
	decodeBody(t, w, &views)
	assert.Len(t, views, 1)

	require.Equal(t, http.StatusOK, app.do(t, "POST", "/api/login", map[string]string{"email": "b@x.com"}).Code)
	w = app.do(t, "PUT", "/api/posts/"+post.ID, map[string]string{"title": "B", "content": "y"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = app.do(t, "DELETE", "/api/posts/"+post.ID+"/comments/"+comment.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.Equal(t, http.StatusOK, app.do(t, "POST", "/api/login", map[string]string{"email": "a@x.com"}).Code)
	w = app.do(t, "PUT", "/api/posts/"+post.ID, map[string]string{"title": "A2", "content": "x2"})
	require.Equal(t, http.StatusOK, w.Code)
	var edited models.Post
	decodeBody(t, w, &edited)
	assert.Equal(t, "A2", edited.Title)
	assert.Equal(t, post.ID, edited.ID)
	assert.True(t, edited.UpdatedAt.After(post.UpdatedAt))

	w = app.do(t, "DELETE", "/api/posts/"+post.ID+"/comments/"+comment.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, "DELETE", "/api/posts/"+post.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = app.do(t, "DELETE", "/api/posts/"+post.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedRoutes(t *testing.T) {
	app := setupTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		p := models.Post{ID: fmt.Sprintf("p%02d", i), Title: "T", Content: "x", AuthorID: "u1", CreatedAt: created, UpdatedAt: created}
		require.NoError(t, app.posts.Upsert(ctx, &p))
	}

	var state store.PostsState
	for _, want := range []int{10, 20, 25} {
		w := app.do(t, "POST", "/api/posts/load-more", nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeBody(t, w, &state)
		assert.Len(t, state.Posts, want)
		assert.True(t, state.HasMore)
	}

	w := app.do(t, "POST", "/api/posts/load-more", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &state)
	assert.Len(t, state.Posts, 25)
	assert.False(t, state.HasMore)

	w = app.do(t, "POST", "/api/posts/load-more", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, "GET", "/api/posts", nil)
	decodeBody(t, w, &state)
	assert.Equal(t, "p24", state.Posts[0].ID)
	assert.Equal(t, 4, state.Page)

	w = app.do(t, "POST", "/api/posts/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &state)
	assert.Len(t, state.Posts, 25)
}

func TestMetricsRoute(t *testing.T) {
	app := setupTestApp(t)
	app.do(t, "GET", "/api/session", nil)

	w := app.do(t, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "blogspace_http_requests_total")
	assert.NotEqual(t, "application/json", w.Header().Get("Content-Type"))
}
