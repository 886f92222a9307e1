package stepping

import (
	"fmt"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/switchbank"
)

// Controller owns the advance rule of a machine. It implements switchbank.Stepper.
type Controller struct {
	speeds   domain.Speeds
	mode     domain.Mode
	twenties Odometer
}

var _ switchbank.Stepper = (*Controller)(nil)

// New validates the speed assignment and builds a controller for the given mode.
// An empty mode means domain.ModeCascade.
func New(speeds domain.Speeds, mode domain.Mode) (*Controller, error) {
	if err := speeds.Validate(); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = domain.ModeCascade
	}
	if mode != domain.ModeCascade && mode != domain.ModeTypeB {
		return nil, fmt.Errorf("unknown stepping mode %q", mode)
	}

	return &Controller{
		speeds: speeds,
		mode:   mode,
		twenties: Odometer{
			Radix: domain.SwitchContacts,
			Order: speeds.Order(),
		},
	}, nil
}

// Speeds returns the role binding.
func (c *Controller) Speeds() domain.Speeds { return c.speeds }

// Mode returns the stepping rule in use.
func (c *Controller) Mode() domain.Mode { return c.mode }

// Advance moves p to the positions used by the next letter.
func (c *Controller) Advance(p *domain.Positions) switchbank.Motion {
	if c.mode == domain.ModeTypeB {
		return c.advanceTypeB(p)
	}
	return c.advanceCascade(p)
}

// advanceCascade: sixes and fast always step; medium carries when fast wraps, slow
// carries when medium wraps.
func (c *Controller) advanceCascade(p *domain.Positions) switchbank.Motion {
	var m switchbank.Motion

	moved := c.twenties.Advance(p.Twenties[:])
	for _, idx := range c.twenties.Order[:moved] {
		m.Twenties[idx] = true
	}

	p.Sixes = (p.Sixes + 1) % domain.SwitchContacts
	m.Sixes = true
	return m
}

// advanceTypeB steps one twenties switch per letter, chosen by the sixes position
// before it moves, then steps the sixes switch.
func (c *Controller) advanceTypeB(p *domain.Positions) switchbank.Motion {
	var m switchbank.Motion

	last := domain.SwitchContacts - 1
	medium := c.speeds.Medium - 1

	idx := c.speeds.Fast - 1
	switch {
	case p.Sixes == last-1 && p.Twenties[medium] == last:
		idx = c.speeds.Slow - 1
	case p.Sixes == last:
		idx = medium
	}
	p.Twenties[idx] = (p.Twenties[idx] + 1) % domain.SwitchContacts
	m.Twenties[idx] = true

	p.Sixes = (p.Sixes + 1) % domain.SwitchContacts
	m.Sixes = true
	return m
}
