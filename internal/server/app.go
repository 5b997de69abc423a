// Package server initializes and runs the main application server: it
// loads configuration, opens the database and applies migrations, wires
// the services, and starts the HTTP endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mbelov/microblog/internal/logging"
	"github.com/mbelov/microblog/internal/server/config"
	"github.com/mbelov/microblog/internal/server/httpapi"
	"github.com/mbelov/microblog/internal/server/repositories/repomanager"
	"github.com/mbelov/microblog/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	postService *services.PostService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)
	ps := services.NewPostService(db, rm)

	return &App{config: cfg, logger: logger, db: db, userService: us, postService: ps}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.postService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
