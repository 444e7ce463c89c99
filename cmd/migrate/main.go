package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/smauel/access/internal/app"
	"github.com/smauel/access/internal/platform/db"
)

func main() {
	ctx := context.Background()

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

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		logger.Error("list migrations", slog.Any("error", err))
		os.Exit(1)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Error("read migration", slog.String("file", file), slog.Any("error", err))
			os.Exit(1)
		}
		if _, err := pool.Exec(ctx, string(content)); err != nil {
			logger.Error("apply migration", slog.String("file", file), slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("applied migration", slog.String("file", file))
	}

	logger.Info("migrations complete", slog.Int("count", len(files)))
}
