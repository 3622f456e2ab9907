package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// main starts the weather advisor API and stops it on SIGINT or SIGTERM.
// Failures before the app logger exists go to slog's default handler.
func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		slog.Error("weather advisor failed to start", "error", err)
		return 1
	}

	if err := app.Run(ctx); err != nil {
		slog.Error("weather advisor stopped with error", "error", err)
		return 1
	}
	return 0
}
