package life

import (
	"strconv"

	"d2ca/pkg/core"
)

// Config holds parameters for a registry-built Life simulation.
type Config struct {
	Width  int
	Height int
	Seed   int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 64, Seed: 42}
}

// FromMap populates a Config from a string map. Unparseable or out of range
// entries keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		c := FromMap(cfg)
		l, err := NewWithSource(c.Width, c.Height, core.NewRNG(c.Seed))
		if err != nil {
			return nil, err
		}
		return l, nil
	})
}
