package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the parameters shared by every host binary.
type Config struct {
	Sim  string `toml:"sim"`
	File string `toml:"-"`

	Grid  GridConfig  `toml:"grid"`
	Run   RunConfig   `toml:"run"`
	Serve ServeConfig `toml:"serve"`
}

// GridConfig sizes and seeds the simulation.
type GridConfig struct {
	Width  int   `toml:"width"`
	Height int   `toml:"height"`
	Seed   int64 `toml:"seed"`
}

// RunConfig controls pacing and presentation.
type RunConfig struct {
	Scale       int `toml:"scale"`
	TPS         int `toml:"tps"`
	Generations int `toml:"generations"`
}

// ServeConfig configures the network host.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:   "life",
		Grid:  GridConfig{Width: 64, Height: 64, Seed: 42},
		Run:   RunConfig{Scale: 8, TPS: 10},
		Serve: ServeConfig{Addr: "127.0.0.1:8080"},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "optional TOML configuration file")
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Grid.Width, "w", c.Grid.Width, "grid width in cells")
	fs.IntVar(&c.Grid.Height, "h", c.Grid.Height, "grid height in cells")
	fs.Int64Var(&c.Grid.Seed, "seed", c.Grid.Seed, "seed for simulation reset")
	fs.IntVar(&c.Run.Scale, "scale", c.Run.Scale, "pixel scale multiplier")
	fs.IntVar(&c.Run.TPS, "tps", c.Run.TPS, "ticks per second")
	fs.IntVar(&c.Run.Generations, "gens", c.Run.Generations, "stop after this many generations (0 runs forever)")
	fs.StringVar(&c.Serve.Addr, "addr", c.Serve.Addr, "listen address for the stream server")
}

// Load builds a Config bound to fs, parses args and merges the optional
// config file. Flags given on the command line take precedence over the file.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	c := NewConfig()
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.File != "" {
		if err := c.overlayFile(fs); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// overlayFile loads c.File and then reapplies the flags that were set
// explicitly, so the command line wins over the file.
func (c *Config) overlayFile(fs *flag.FlagSet) error {
	type setFlag struct{ name, value string }
	var explicit []setFlag
	fs.Visit(func(f *flag.Flag) {
		explicit = append(explicit, setFlag{f.Name, f.Value.String()})
	})

	if err := c.LoadFile(c.File); err != nil {
		return err
	}
	for _, f := range explicit {
		if err := fs.Set(f.name, f.value); err != nil {
			return fmt.Errorf("reapplying -%s: %w", f.name, err)
		}
	}
	return nil
}

// LoadFile overlays the TOML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Sim == "":
		return fmt.Errorf("%w: sim must be set", ErrInvalidConfig)
	case c.Grid.Width <= 0 || c.Grid.Height <= 0:
		return fmt.Errorf("%w: grid must be positive, got %dx%d", ErrInvalidConfig, c.Grid.Width, c.Grid.Height)
	case c.Run.Scale <= 0:
		return fmt.Errorf("%w: scale must be positive, got %d", ErrInvalidConfig, c.Run.Scale)
	case c.Run.TPS <= 0:
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalidConfig, c.Run.TPS)
	case c.Run.Generations < 0:
		return fmt.Errorf("%w: generations must not be negative, got %d", ErrInvalidConfig, c.Run.Generations)
	}
	return nil
}

// SimParams renders the grid settings in the form simulation factories take.
func (c *Config) SimParams() map[string]string {
	return map[string]string{
		"w":    strconv.Itoa(c.Grid.Width),
		"h":    strconv.Itoa(c.Grid.Height),
		"seed": strconv.FormatInt(c.Grid.Seed, 10),
	}
}
