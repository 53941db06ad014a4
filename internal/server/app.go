// Package server wires the application together: configuration, logging,
// the Postgres repositories, the domain services and the HTTP server, plus
// graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/blogward/blogward/internal/logging"
	"github.com/blogward/blogward/internal/server/config"
	"github.com/blogward/blogward/internal/server/httpapi"
	"github.com/blogward/blogward/internal/server/repositories/repomanager"
	"github.com/blogward/blogward/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	router *httpapi.HTTPServer
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userService := services.NewUserService(rm.Users(), cfg)
	blogService := services.NewBlogService(rm.Blogs())
	commentService := services.NewCommentService(rm.Blogs())

	cookieMaxAge := int(cfg.TokenValidityDuration.Seconds())
	authHandler := httpapi.NewAuthHandler(userService, logger, cookieMaxAge)
	blogHandler := httpapi.NewBlogHandler(blogService, commentService, logger)
	middleware := httpapi.NewMiddleware(userService, blogService)

	router := httpapi.NewRouter(authHandler, blogHandler, middleware, logger)
	srv := httpapi.NewHTTPServer(cfg.EndpointAddr, router, logger)

	return &App{config: cfg, logger: logger, repos: rm, router: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.router.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
