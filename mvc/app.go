package mvc

import (
	"context"
	"fmt"
	"net/http"

	"blogspace/app/feed"
	"blogspace/app/metrics"
	"blogspace/app/repositories"
	"blogspace/app/routes"
	"blogspace/app/services"
	"blogspace/app/storage"
	"blogspace/app/store"
	"blogspace/config"

	"go.uber.org/zap"
)

// App is the fully wired application.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Adapter storage.Adapter
	Store   *store.Store
	Router  http.Handler
}

// NewApp opens the configured storage and wires repositories, services, the
// feed cursor and the router on top of it.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	m := metrics.New()

	adapter, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	adapter = storage.Instrument(adapter, m, logger)

	c := repositories.NewCollections(adapter, cfg.DecodePolicy(), logger)
	users := repositories.NewUserRepository(c)
	posts := repositories.NewPostRepository(c)
	comments := repositories.NewCommentRepository(c)
	credentials := repositories.NewCredentialRepository(c)

	st := store.New()
	st.Subscribe(func(action store.Action, _ store.State) {
		logger.Debug("store action", zap.String("type", action.Type()))
	})

	cursor := feed.NewCursor(posts, st, feed.Options{
		PageSize: cfg.Feed.PageSize,
		Latency:  cfg.Feed.Latency,
		Metrics:  m,
		Logger:   logger,
	})

	router := routes.SetupRoutes(routes.Deps{
		Auth:     services.NewAuthService(users, credentials, st, logger),
		Posts:    services.NewPostService(posts, comments, users, st, logger),
		Comments: services.NewCommentService(comments, posts, users, st, logger),
		Cursor:   cursor,
		Store:    st,
		Metrics:  m,
		Logger:   logger,
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		Adapter: adapter,
		Store:   st,
		Router:  router,
	}, nil
}

// Close releases the storage.
func (a *App) Close() error {
	return a.Adapter.Close()
}
