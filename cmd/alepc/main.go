package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	domainerr "alepc/internal/domain/errors"
)

const envLogLevel = "ALEPC_LOG"

func main() {
	// A missing .env is fine; it only supplies ALEPC_CONFIG and ALEPC_LOG.
	_ = godotenv.Load()
	setupLogging(os.Getenv(envLogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		domainerr.Print(os.Stderr, err)
		stop()
		os.Exit(domainerr.ExitCode(err))
	}
}

func setupLogging(level string) {
	lvl := slog.LevelWarn
	if level = strings.TrimSpace(level); level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = slog.LevelWarn
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
