package routes

import (
	"net/http"
	"time"

	"blogspace/app/controllers"
	"blogspace/app/feed"
	"blogspace/app/metrics"
	"blogspace/app/middleware"
	"blogspace/app/services"
	"blogspace/app/store"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Auth     *services.AuthService
	Posts    *services.PostService
	Comments *services.CommentService
	Cursor   *feed.Cursor
	Store    *store.Store
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(d Deps) *mux.Router {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	if d.Metrics != nil {
		router.Use(middleware.Metrics(d.Metrics))
		router.Handle("/metrics", d.Metrics.Handler()).Methods("GET")
	}

	authController := controllers.NewAuthController(d.Auth, d.Store, logger)
	postController := controllers.NewPostController(d.Posts, d.Cursor, d.Store, logger)
	commentController := controllers.NewCommentController(d.Comments, logger)

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	api.HandleFunc("/register", authController.Register).Methods("POST")
	api.HandleFunc("/login", authController.Login).Methods("POST")
	api.HandleFunc("/logout", authController.Logout).Methods("POST")
	api.HandleFunc("/session", authController.Session).Methods("GET")

	// Posts API endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/reload", postController.Reload).Methods("POST")
	posts.HandleFunc("/load-more", postController.LoadMore).Methods("POST")
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id}", postController.Edit).Methods("PUT")
	posts.HandleFunc("/{id}", postController.Delete).Methods("DELETE")

	// Comments API endpoints
	posts.HandleFunc("/{id}/comments", commentController.Index).Methods("GET")
	posts.HandleFunc("/{id}/comments", commentController.Create).Methods("POST")
	posts.HandleFunc("/{id}/comments/{commentId}", commentController.Delete).Methods("DELETE")

	return router
}

// NewServer wraps the router in an http.Server listening on addr.
func NewServer(addr string, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
