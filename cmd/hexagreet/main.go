package main

//go:generate swag init --parseInternal -g cmd/hexagreet/main.go -d ../../ -o ../../internal/shared/infra/platform/httpserver/docs --outputTypes go

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/bootstrap"
	"github.com/davicafu/hexagreet/internal/config"
	"github.com/davicafu/hexagreet/pkg/logger"
)

// @title       Hexagreet API
// @version     2.0
// @description Greeting service with versioned API (v1, v2).
// @BasePath    /

// ---------------- Main ----------------
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return err
	}
	log := logger.Logger()
	defer func() { _ = log.Sync() }() // flush buffers al salir

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to bootstrap application", zap.Error(err))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("Errors while closing resources", zap.Error(err))
		}
	}()

	log.Info("Starting hexagreet",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
		zap.String("env", cfg.AppEnv),
	)
	if err := app.Run(ctx); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return err
	}
	log.Info("Server stopped")
	return nil
}
