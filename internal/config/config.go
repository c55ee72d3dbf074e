package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	getter "github.com/hashicorp/go-getter"

	"ribbon/internal/track"
)

// SeedEnv overrides the configured seed when set.
const SeedEnv = "RIBBON_SEED"

var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything the commands need to build and serve a track.
type Config struct {
	Seed          int64   `json:"seed"`
	Res           float64 `json:"res"`
	SectionLength float64 `json:"section_length"`
	Window        int     `json:"window"`
	Obstacles     bool    `json:"obstacles"`
	Powerups      bool    `json:"powerups"`

	// challenge handed to section i is ChallengeStart + i*ChallengeRamp
	ChallengeStart int `json:"challenge_start"`
	ChallengeRamp  int `json:"challenge_ramp"`

	Sections int    `json:"sections"` // sections generated by the batch command
	Addr     string `json:"addr"`     // stream server listen address

	WindowWidth  int     `json:"window_width"`
	WindowHeight int     `json:"window_height"`
	RunSpeed     float64 `json:"run_speed"` // viewer runner, units per second

	LogLevel string `json:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:          track.DefaultSeed,
		Res:           track.DefaultRes,
		SectionLength: track.DefaultSectionLength,
		Window:        track.DefaultWindow,
		Obstacles:     true,
		Powerups:      true,
		ChallengeRamp: 1,
		Sections:      8,
		Addr:          ":8080",
		WindowWidth:   1280,
		WindowHeight:  720,
		RunSpeed:      30,
		LogLevel:      "info",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["res"] {
		cfg.Res = fromFile.Res
	}
	if !explicitFlags["section-length"] {
		cfg.SectionLength = fromFile.SectionLength
	}
	if !explicitFlags["window"] {
		cfg.Window = fromFile.Window
	}
	if !explicitFlags["obstacles"] {
		cfg.Obstacles = fromFile.Obstacles
	}
	if !explicitFlags["powerups"] {
		cfg.Powerups = fromFile.Powerups
	}
	if !explicitFlags["challenge"] {
		cfg.ChallengeStart = fromFile.ChallengeStart
	}
	if !explicitFlags["ramp"] {
		cfg.ChallengeRamp = fromFile.ChallengeRamp
	}
	if !explicitFlags["sections"] {
		cfg.Sections = fromFile.Sections
	}
	if !explicitFlags["addr"] {
		cfg.Addr = fromFile.Addr
	}
	if !explicitFlags["width"] {
		cfg.WindowWidth = fromFile.WindowWidth
	}
	if !explicitFlags["height"] {
		cfg.WindowHeight = fromFile.WindowHeight
	}
	if !explicitFlags["speed"] {
		cfg.RunSpeed = fromFile.RunSpeed
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}

// Validate reports the first out-of-range field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Res <= 0:
		return fmt.Errorf("%w: res must be positive, got %v", ErrInvalidConfig, c.Res)
	case c.SectionLength < c.Res:
		return fmt.Errorf("%w: section_length %v shorter than one step", ErrInvalidConfig, c.SectionLength)
	case c.Window < track.MinWindow:
		return fmt.Errorf("%w: window must be at least %d, got %d", ErrInvalidConfig, track.MinWindow, c.Window)
	case c.ChallengeStart < 0 || c.ChallengeRamp < 0:
		return fmt.Errorf("%w: challenge must not be negative", ErrInvalidConfig)
	case c.Sections < 0:
		return fmt.Errorf("%w: sections must not be negative, got %d", ErrInvalidConfig, c.Sections)
	case c.RunSpeed < 0:
		return fmt.Errorf("%w: run_speed must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// ChallengeAt is the challenge for the section with the given index.
func (c *Config) ChallengeAt(index int) int {
	return c.ChallengeStart + index*c.ChallengeRamp
}

// TrackOptions converts the generation fields for track.New.
func (c *Config) TrackOptions() track.Options {
	return track.Options{
		Res:            c.Res,
		SectionLength:  c.SectionLength,
		Window:         c.Window,
		BuildObstacles: c.Obstacles,
		BuildPowerups:  c.Powerups,
	}
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return l, nil
}

// ApplyEnv lets RIBBON_SEED override the seed. A malformed value is an error
// rather than silently ignored.
func (c *Config) ApplyEnv() error {
	s := os.Getenv(SeedEnv)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, SeedEnv, s)
	}
	c.Seed = v
	return nil
}

// Load reads a JSON config file. Fields absent from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Fetch downloads a config preset from any source go-getter understands
// (local path, http, s3, git::...) into dir and loads it.
func Fetch(ctx context.Context, src, dir string) (*Config, error) {
	if isLocalPath(src) && !filepath.IsAbs(src) {
		abs, err := filepath.Abs(src)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", src, err)
		}
		src = abs
	}
	dst := filepath.Join(dir, "ribbon.json")
	if err := getter.GetFile(dst, src, getter.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("fetch config %s: %w", src, err)
	}
	return Load(dst)
}

func isLocalPath(src string) bool {
	return !strings.Contains(src, "://") && !strings.Contains(src, "::")
}
