package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/savings-accounts/internal/app/scheduler"
	"github.com/magabrotheeeer/savings-accounts/internal/config"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/logger"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	log.Info("starting birthday scheduler",
		slog.String("env", cfg.Env),
		slog.Duration("interval", cfg.Interval),
		slog.String("timezone", cfg.Timezone),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := scheduler.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize scheduler app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("scheduler app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("scheduler app stopped gracefully")
}
