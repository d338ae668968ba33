// SPDX-License-Identifier: AGPL-3.0-only
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/yapster-gg/yapster-api/internal/api"
	"github.com/yapster-gg/yapster-api/internal/api/handlers"
	"github.com/yapster-gg/yapster-api/internal/cli"
	"github.com/yapster-gg/yapster-api/internal/config"
	"github.com/yapster-gg/yapster-api/internal/coordinator"
	"github.com/yapster-gg/yapster-api/internal/store"
	"github.com/yapster-gg/yapster-api/internal/worker"
)

func main() {

	resetPassword := flag.Bool("reset-password", false, "reset a user's password and exit")
	username := flag.String("username", "", "username for admin commands")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("failed to connect to the database", "error", err)
		os.Exit(1)
	}
	defer db.Close(ctx)

	if *resetPassword {
		cli.HandleResetPassword(db, *username)
		return
	}

	coord := coordinator.New(db, logger)

	w := worker.NewWorker(coord, logger)
	if cfg.ReconcileInterval > 0 {
		w.Start(cfg.ReconcileInterval)
		defer w.Stop()
	}

	h := handlers.NewHandler(db, coord, cfg, logger)
	r := api.NewRouter(h, cfg.SessionSecret)

	logger.Info("starting server", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
