package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"ribbon/internal/config"
	"ribbon/internal/preview"
	"ribbon/internal/track"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.BindFlags(flag.CommandLine)
	flag.Float64Var(&cfg.RunSpeed, "speed", cfg.RunSpeed, "runner speed in units per second")
	configSrc := flag.String("config", "", "config file or URL (anything go-getter fetches)")
	logPath := flag.String("log-file", "", "write logs here; the terminal belongs to the preview")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := config.Resolve(ctx, cfg, flag.CommandLine, *configSrc); err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Error("open log", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	log := cfg.NewLogger(out)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("preview", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	gen := track.New(cfg.TrackOptions(), log)
	gen.Reset(cfg.Seed)
	tracker := track.NewTracker(gen)
	tracker.Challenge = cfg.ChallengeAt
	tracker.Prime()

	app := preview.NewApp(screen, gen, tracker, cfg.RunSpeed, log)
	err = app.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info("preview closed", "distance", tracker.Distance(), "sections", gen.Stats().Sections)
	return err
}
