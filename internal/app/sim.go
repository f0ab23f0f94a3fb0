package app

import (
	"fmt"

	"d2ca/pkg/core"
)

// NewSim builds the configured simulation from the registry.
func (c *Config) NewSim() (core.Sim, error) {
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q", c.Sim)
	}
	sim, err := factory(c.SimParams())
	if err != nil {
		return nil, fmt.Errorf("building sim %q: %w", c.Sim, err)
	}
	return sim, nil
}
