package controllers

import (
	"net/http"

	"blogspace/app/feed"
	"blogspace/app/services"
	"blogspace/app/store"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PostController handles HTTP requests for blog posts and the feed
type PostController struct {
	posts  *services.PostService
	cursor *feed.Cursor
	store  *store.Store
	logger *zap.Logger
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService, cursor *feed.Cursor, st *store.Store, logger *zap.Logger) *PostController {
	return &PostController{posts: posts, cursor: cursor, store: st, logger: logger}
}

// Index returns the posts slice: displayed posts plus the cursor.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, pc.logger, http.StatusOK, pc.store.Posts())
}

// Reload replaces the displayed posts with every stored post
func (pc *PostController) Reload(w http.ResponseWriter, r *http.Request) {
	if _, err := pc.posts.LoadAll(r.Context()); err != nil {
		handleError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, pc.logger, http.StatusOK, pc.store.Posts())
}

// LoadMore fetches the next page and responds once it is in the store
func (pc *PostController) LoadMore(w http.ResponseWriter, r *http.Request) {
	pending, err := pc.cursor.LoadMore(r.Context())
	if err != nil {
		handleError(w, r, pc.logger, err)
		return
	}
	if _, err := pending.Wait(r.Context()); err != nil {
		handleError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, pc.logger, http.StatusOK, pc.store.Posts())
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.PostInput
	if err := decode(r, &in); err != nil {
		sendError(w, pc.logger, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.posts.Create(r.Context(), in)
	if err != nil {
		handleError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, pc.logger, http.StatusCreated, post)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	view, err := pc.posts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handleError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, pc.logger, http.StatusOK, view)
}

// Edit handles editing an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	var in services.PostInput
	if err := decode(r, &in); err != nil {
		sendError(w, pc.logger, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.posts.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		handleError(w, r, pc.logger, err)
		return
	}
	sendJSON(w, pc.logger, http.StatusOK, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := pc.posts.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		handleError(w, r, pc.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
