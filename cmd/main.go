package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"raffle-api/internal/app"
	"raffle-api/internal/config"
)

const (
	envDev   = "dev"
	envProd  = "prod"
	envLocal = "local"
)

// @title Raffle API
// @version 1.0
// @description Users, purchases and raffle entry accrual for promotional campaigns.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.basic BasicAuth
func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Server.Env)

	log.Info("starting raffle-api",
		slog.String("env", cfg.Server.Env),
		slog.String("stage", cfg.Stage),
		slog.String("version", cfg.Server.Version),
	)

	application, err := app.New(context.Background(), log, cfg)
	if err != nil {
		log.Error("failed to start application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	go application.HTTPServer.MustRun()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	if err := application.Stop(context.Background()); err != nil {
		log.Error("failed to stop application", slog.String("error", err.Error()))
		return
	}

	log.Info("application stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return log
}
