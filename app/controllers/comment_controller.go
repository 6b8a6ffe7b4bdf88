package controllers

import (
	"net/http"

	"blogspace/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	comments *services.CommentService
	logger   *zap.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService, logger *zap.Logger) *CommentController {
	return &CommentController{comments: comments, logger: logger}
}

// Index lists the comments of a post, oldest first
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	views, err := cc.comments.List(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handleError(w, r, cc.logger, err)
		return
	}
	sendJSON(w, cc.logger, http.StatusOK, views)
}

// Create adds a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CommentInput
	if err := decode(r, &in); err != nil {
		sendError(w, cc.logger, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := cc.comments.Add(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		handleError(w, r, cc.logger, err)
		return
	}
	sendJSON(w, cc.logger, http.StatusCreated, comment)
}

// Delete removes a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := cc.comments.Delete(r.Context(), vars["id"], vars["commentId"]); err != nil {
		handleError(w, r, cc.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
