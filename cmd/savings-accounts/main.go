// Package main Savings Accounts API
//
// @title           Savings Accounts API
// @version         1.0
// @description     API сберегательных счетов с выборкой по дню рождения клиента

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/savings-accounts/internal/app/savingsaccounts"
	"github.com/magabrotheeeer/savings-accounts/internal/config"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/logger"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	log.Info("starting savings-accounts", slog.String("env", cfg.Env))
	log.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := savingsaccounts.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("savings-accounts stopped gracefully")
}
