package config

import (
	"bytes"
	"context"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*Config, *flag.FlagSet) {
	t.Helper()
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cfg, fs
}

func TestBindFlags(t *testing.T) {
	cfg, fs := parse(t, "-seed", "11", "-window", "6", "-obstacles=false")
	assert.Equal(t, int64(11), cfg.Seed)
	assert.Equal(t, 6, cfg.Window)
	assert.False(t, cfg.Obstacles)
	assert.Equal(t, map[string]bool{"seed": true, "window": true, "obstacles": true}, Explicit(fs))
}

func TestResolve_FileUnderFlags(t *testing.T) {
	t.Setenv(SeedEnv, "")
	src := writeFile(t, `{"seed": 500, "window": 2, "challenge_ramp": 4}`)
	cfg, fs := parse(t, "-seed", "11")

	require.NoError(t, Resolve(context.Background(), cfg, fs, src))
	assert.Equal(t, int64(11), cfg.Seed, "explicit flag wins")
	assert.Equal(t, 2, cfg.Window)
	assert.Equal(t, 4, cfg.ChallengeRamp)
}

func TestResolve_EnvAndValidation(t *testing.T) {
	t.Setenv(SeedEnv, "99")
	cfg, fs := parse(t)
	require.NoError(t, Resolve(context.Background(), cfg, fs, ""))
	assert.Equal(t, int64(99), cfg.Seed)

	cfg, fs = parse(t, "-window", "0")
	assert.ErrorIs(t, Resolve(context.Background(), cfg, fs, ""), ErrInvalidConfig)
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogLevel = "warn"
	log := cfg.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "section", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "section=3")
}
