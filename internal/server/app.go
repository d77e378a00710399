// Package server wires the account service together: configuration, the
// PostgreSQL pool and its migrations, the services, the gRPC endpoint and
// the HTTP health probes.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/userbase/internal/cryptox"
	"github.com/dmitrijs2005/userbase/internal/logging"
	"github.com/dmitrijs2005/userbase/internal/server/config"
	"github.com/dmitrijs2005/userbase/internal/server/health"
	"github.com/dmitrijs2005/userbase/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userbase/internal/server/services"

	gs "github.com/dmitrijs2005/userbase/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	authService *services.AuthService
}

// NewApp opens the database, applies pending migrations and builds the
// services. The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher, err := cryptox.NewHasher(c.HashParams())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: services.NewUserService(db, rm, hasher),
		authService: services.NewAuthService(db, rm, hasher),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.config.ShutdownTimeout, app.logger, app.userService, app.authService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := health.NewServer(app.config.EndpointAddrHTTP, app.config.ShutdownTimeout, app.db, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHealthServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}

func (app *App) Close() error {
	return app.db.Close()
}
