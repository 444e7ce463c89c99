package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smauel/access/internal/app"
	"github.com/smauel/access/internal/assignments"
	"github.com/smauel/access/internal/grants"
	"github.com/smauel/access/internal/observability"
	"github.com/smauel/access/internal/permissions"
	"github.com/smauel/access/internal/platform/db"
	"github.com/smauel/access/internal/roles"
	"github.com/smauel/access/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	metrics := observability.NewMetrics()

	permissionsRepo := permissions.NewRepository(pool)
	permissionsService := permissions.NewService(permissionsRepo)
	permissionsHandler := permissions.NewHandler(logger, permissionsService)

	rolesRepo := roles.NewRepository(pool)
	rolesService := roles.NewService(rolesRepo, permissionsService)
	rolesHandler := roles.NewHandler(logger, rolesService)

	grantsRepo := grants.NewRepository(pool)
	grantsService := grants.NewService(grantsRepo, permissionsService, rolesService, nil)
	grantsHandler := grants.NewHandler(logger, grantsService)

	assignmentsRepo := assignments.NewRepository(pool)
	assignmentsService := assignments.NewService(assignmentsRepo, rolesService, nil)
	assignmentsHandler := assignments.NewHandler(logger, assignmentsService)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		PermissionsHandler: permissionsHandler,
		RolesHandler:       rolesHandler,
		GrantsHandler:      grantsHandler,
		AssignmentsHandler: assignmentsHandler,
		UsersHandler:       usersHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
