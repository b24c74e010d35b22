package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kanban/internal/app"
	"kanban/internal/config"
	"kanban/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	if err := application.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		application.Close()
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		logger.Error("App: Сервер остановлен с ошибкой", err)
		application.Close()
		os.Exit(1)
	}
	logger.Info("App: Сервер остановлен")
}
