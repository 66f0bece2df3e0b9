package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"personalsite/internal/app"
	"personalsite/internal/config"
	"personalsite/internal/logging"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("load config", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		logging.Fatal("server stopped", "error", err)
	}
}
