package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ribbon/internal/config"
	"ribbon/internal/export"
	"ribbon/internal/track"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.BindFlags(flag.CommandLine)
	flag.IntVar(&cfg.Sections, "sections", cfg.Sections, "number of sections to generate")
	configSrc := flag.String("config", "", "config file or URL (anything go-getter fetches)")
	objPath := flag.String("obj", "", "write the generated sections to this Wavefront OBJ file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := config.Resolve(ctx, cfg, flag.CommandLine, *configSrc); err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := cfg.NewLogger(os.Stdout)

	if err := run(ctx, cfg, *objPath, log); err != nil {
		log.Error("generate", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, objPath string, log *slog.Logger) error {
	opts := cfg.TrackOptions()

	var obj *export.Writer
	if objPath != "" {
		f, err := os.Create(objPath)
		if err != nil {
			return fmt.Errorf("create obj: %w", err)
		}
		defer f.Close()
		obj = export.NewWriter(f)
		// evicted sections are written before their geometry is dropped
		opts.OnEvict = obj.Section
	}

	gen := track.New(opts, log)
	gen.Reset(cfg.Seed)

	for i := range cfg.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		s := gen.Advance(cfg.ChallengeAt(i))
		log.Info("section",
			"section", s.Index,
			"start", s.Start,
			"challenge", s.Challenge,
			"curve", s.CurveKind,
			"blocks", len(s.Blocks),
			"powerups", len(s.Powerups),
			"prefabs", len(s.Prefabs),
		)
	}

	if obj != nil {
		for _, s := range gen.Live() {
			obj.Section(s)
		}
		if err := obj.Flush(); err != nil {
			return err
		}
		log.Info("wrote obj", "path", objPath)
	}

	st := gen.Stats()
	log.Info("done",
		"seed", cfg.Seed,
		"sections", st.Sections,
		"distance", gen.Distance(),
		"blocks", st.Blocks,
		"powerups", st.Powerups,
		"fills", st.Fills,
		"evicted", st.Evicted,
	)
	return nil
}
