package config

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// BindFlags registers the flags every command shares, defaulting to the
// values already in c. Flag names match the keys Merge checks.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "track seed (env "+SeedEnv+" overrides)")
	fs.Float64Var(&c.Res, "res", c.Res, "distance between sampling steps")
	fs.Float64Var(&c.SectionLength, "section-length", c.SectionLength, "distance covered by one section")
	fs.IntVar(&c.Window, "window", c.Window, "live sections kept in the streaming window")
	fs.BoolVar(&c.Obstacles, "obstacles", c.Obstacles, "build obstacle blocks")
	fs.BoolVar(&c.Powerups, "powerups", c.Powerups, "place powerups")
	fs.IntVar(&c.ChallengeStart, "challenge", c.ChallengeStart, "challenge of the first section")
	fs.IntVar(&c.ChallengeRamp, "ramp", c.ChallengeRamp, "challenge added per section")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// Explicit returns the names of the flags set on the command line.
func Explicit(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// Resolve finishes a parsed command line: when src names a config file or
// URL it is fetched and merged under the explicit flags, then the
// environment is applied and the result validated.
func Resolve(ctx context.Context, cfg *Config, fs *flag.FlagSet, src string) error {
	if src != "" {
		dir, err := os.MkdirTemp("", "ribbon-config-")
		if err != nil {
			return fmt.Errorf("config dir: %w", err)
		}
		defer os.RemoveAll(dir)

		fromFile, err := Fetch(ctx, src, dir)
		if err != nil {
			return err
		}
		Merge(cfg, fromFile, Explicit(fs))
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	return cfg.Validate()
}

// NewLogger builds the text logger the commands write to.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
