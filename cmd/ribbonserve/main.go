package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ribbon/internal/config"
	"ribbon/internal/stream"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.BindFlags(flag.CommandLine)
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	configSrc := flag.String("config", "", "config file or URL (anything go-getter fetches)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := config.Resolve(ctx, cfg, flag.CommandLine, *configSrc); err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := cfg.NewLogger(os.Stdout)

	if err := serve(ctx, cfg, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	handler := stream.NewHandler(stream.HandlerConfig{
		Logger:  log,
		Options: cfg.TrackOptions(),
		Seed:    cfg.Seed,
	})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           stream.NewHTTPHandler(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr, "seed", cfg.Seed)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
