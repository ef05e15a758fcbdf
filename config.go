package main

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// === CONFIG ===

// Default configuration values for the animation.
const (
	MinStreamLength = 6
	MaxStreamLength = 14
	Pause           = 100 * time.Millisecond
	Density         = 0.01
	TickBudget      = 1000

	defaultBackend = backendANSI
)

// Rendering backends selectable with -backend.
const (
	backendANSI  = "ansi"
	backendTcell = "tcell"
)

// closingMessage is printed once after the tick budget is exhausted.
const closingMessage = "Follow the white rabbit..."

// Config holds the configuration for the digital rain animation.
type Config struct {
	MinStreamLength int           // Shortest stream lifetime in ticks
	MaxStreamLength int           // Longest stream lifetime in ticks
	Pause           time.Duration // Sleep between ticks
	Density         float64       // Per column, per tick spawn probability
	Ticks           int           // Tick budget, 0 runs until interrupted
	Seed            uint64        // RNG seed, 0 seeds from the clock
	Backend         string        // Rendering backend (ansi, tcell)
	Debug           bool          // Enable debug logging
}

// DefaultConfig returns the compile-time defaults.
func DefaultConfig() Config {
	return Config{
		MinStreamLength: MinStreamLength,
		MaxStreamLength: MaxStreamLength,
		Pause:           Pause,
		Density:         Density,
		Ticks:           TickBudget,
		Backend:         defaultBackend,
	}
}

// validate checks the configuration for validity.
func (c *Config) validate() error {
	if c.MinStreamLength < 2 || c.MaxStreamLength < c.MinStreamLength || c.MaxStreamLength > 255 {
		return errors.Errorf("invalid stream length range (2-255): got %d-%d", c.MinStreamLength, c.MaxStreamLength)
	}
	if c.Density < 0 || c.Density > 1 {
		return errors.Errorf("density out of range (0-1): got %g", c.Density)
	}
	if c.Pause < 0 {
		return errors.Errorf("negative pause: %s", c.Pause)
	}
	if c.Ticks < 0 {
		return errors.Errorf("negative tick budget: %d", c.Ticks)
	}
	switch c.Backend {
	case backendANSI, backendTcell:
	default:
		return errors.Errorf("unknown backend: %s", c.Backend)
	}
	return nil
}

// === CONFIG PARSER ===

// ConfigParser parses command-line flags into a Config.
type ConfigParser struct {
	name   string
	output io.Writer
}

// NewConfigParser creates a ConfigParser reporting usage to output.
func NewConfigParser(name string, output io.Writer) *ConfigParser {
	return &ConfigParser{name: name, output: output}
}

// Parse processes command-line arguments and returns a validated Config.
func (p *ConfigParser) Parse(args []string) (*Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet(p.name, flag.ContinueOnError)
	fs.SetOutput(p.output)
	fs.IntVar(&cfg.MinStreamLength, "min", cfg.MinStreamLength, "minimum stream length in ticks")
	fs.IntVar(&cfg.MaxStreamLength, "max", cfg.MaxStreamLength, "maximum stream length in ticks")
	fs.DurationVar(&cfg.Pause, "pause", cfg.Pause, "pause between frames")
	fs.Float64Var(&cfg.Density, "density", cfg.Density, "per column spawn probability (0-1)")
	fs.IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "number of frames to render, 0 for unbounded")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "random seed, 0 for time based")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "rendering backend ("+backendANSI+", "+backendTcell+")")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}
	if fs.NArg() > 0 {
		return nil, errors.New("unexpected arguments: " + strings.Join(fs.Args(), " "))
	}

	cfg.Backend = strings.ToLower(cfg.Backend)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
