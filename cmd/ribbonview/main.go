//go:build !android

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ribbon/internal/config"
	"ribbon/internal/viewer"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.BindFlags(flag.CommandLine)
	flag.IntVar(&cfg.WindowWidth, "width", cfg.WindowWidth, "window width")
	flag.IntVar(&cfg.WindowHeight, "height", cfg.WindowHeight, "window height")
	flag.Float64Var(&cfg.RunSpeed, "speed", cfg.RunSpeed, "runner speed in units per second")
	configSrc := flag.String("config", "", "config file or URL (anything go-getter fetches)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := config.Resolve(ctx, cfg, flag.CommandLine, *configSrc); err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := cfg.NewLogger(os.Stdout)

	err := viewer.Run(ctx, viewer.Config{
		Options:   cfg.TrackOptions(),
		Seed:      cfg.Seed,
		Width:     cfg.WindowWidth,
		Height:    cfg.WindowHeight,
		Speed:     cfg.RunSpeed,
		Challenge: cfg.ChallengeAt,
	}, log)
	if err != nil {
		log.Error("viewer", "error", err)
		os.Exit(1)
	}
}
