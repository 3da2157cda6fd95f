// Package config resolves runtime settings from command-line flags and MEMTREE_ environment variables
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/memory-tree/parameter"
)

// EnvPrefix is prepended to every env tag
const EnvPrefix = "MEMTREE_"

// ErrInvalid marks a configuration that parsed but cannot run
var ErrInvalid = errors.New("invalid config")

// Color modes
const (
	ColorAuto = "auto"
	ColorRGB  = "truecolor"
	Color256  = "256"
	ColorMono = "mono"
)

// Config is the resolved runtime configuration
// Precedence: defaults < flags < environment
type Config struct {
	LowPower   bool   `env:"LOW_POWER"`
	Debug      bool   `env:"DEBUG"`
	FPS        int    `env:"FPS"`
	StreamAddr string `env:"STREAM_ADDR"`
	Seed       uint64 `env:"SEED"`
	ColorMode  string `env:"COLOR"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		FPS:       parameter.DefaultFPS,
		Seed:      1,
		ColorMode: ColorAuto,
	}
}

// Load parses args as flags, applies environment overrides, then validates
func Load(name string, args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&cfg.LowPower, "low", cfg.LowPower, "Start in low particle density")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Write logs to logs/")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "Target frames per second")
	fs.StringVar(&cfg.StreamAddr, "stream", cfg.StreamAddr, "Websocket stream listen address, empty disables")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Particle placement seed")
	fs.StringVar(&cfg.ColorMode, "color", cfg.ColorMode, "Color mode: auto, truecolor, 256, mono")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.ColorMode = strings.ToLower(strings.TrimSpace(cfg.ColorMode))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and formats
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > parameter.MaxFPS {
		return fmt.Errorf("%w: fps %d outside [1, %d]", ErrInvalid, c.FPS, parameter.MaxFPS)
	}
	switch c.ColorMode {
	case ColorAuto, ColorRGB, Color256, ColorMono:
	default:
		return fmt.Errorf("%w: color mode %q", ErrInvalid, c.ColorMode)
	}
	if c.StreamAddr != "" {
		if _, _, err := net.SplitHostPort(c.StreamAddr); err != nil {
			return fmt.Errorf("%w: stream address %q: %v", ErrInvalid, c.StreamAddr, err)
		}
	}
	return nil
}
