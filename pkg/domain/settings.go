package domain

import (
	"fmt"
	"strings"
)

// SwitchContacts is the number of physical positions on every stepping switch.
const SwitchContacts = 25

// Positions is the mutable state of the switch bank.
// Twenties[0] is twenties switch #1, Twenties[2] is #3.
type Positions struct {
	Sixes    int    `json:"sixes" yaml:"sixes" mapstructure:"sixes"`
	Twenties [3]int `json:"twenties" yaml:"twenties" mapstructure:"twenties"`
}

// Validate checks that every position lies in [0,24].
func (p Positions) Validate() error {
	if p.Sixes < 0 || p.Sixes >= SwitchContacts {
		return fmt.Errorf("%w: sixes switch at %d", ErrInvalidPosition, p.Sixes)
	}
	for i, pos := range p.Twenties {
		if pos < 0 || pos >= SwitchContacts {
			return fmt.Errorf("%w: twenties switch #%d at %d", ErrInvalidPosition, i+1, pos)
		}
	}
	return nil
}

func (p Positions) String() string {
	return fmt.Sprintf("sixes=%d twenties=%d,%d,%d", p.Sixes, p.Twenties[0], p.Twenties[1], p.Twenties[2])
}

// Role is the cadence assigned to a twenties switch.
type Role uint8

const (
	RoleFast Role = iota
	RoleMedium
	RoleSlow
)

func (r Role) String() string {
	switch r {
	case RoleFast:
		return "fast"
	case RoleMedium:
		return "medium"
	case RoleSlow:
		return "slow"
	default:
		return "unknown"
	}
}

// Speeds binds each role to a twenties switch number (1..3).
type Speeds struct {
	Fast   int `json:"fast" yaml:"fast" mapstructure:"fast"`
	Medium int `json:"medium" yaml:"medium" mapstructure:"medium"`
	Slow   int `json:"slow" yaml:"slow" mapstructure:"slow"`
}

// DefaultSpeeds makes switch #1 fast, #2 medium and #3 slow.
var DefaultSpeeds = Speeds{Fast: 1, Medium: 2, Slow: 3}

// Validate checks that the roles form a permutation of {1,2,3}.
func (s Speeds) Validate() error {
	var seen [4]bool
	for _, n := range []int{s.Fast, s.Medium, s.Slow} {
		if n < 1 || n > 3 {
			return fmt.Errorf("%w: switch %d out of range 1-3", ErrInvalidSpeedAssignment, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: switch %d assigned twice", ErrInvalidSpeedAssignment, n)
		}
		seen[n] = true
	}
	return nil
}

// Order returns the zero-based switch indices from fastest to slowest.
func (s Speeds) Order() []int {
	return []int{s.Fast - 1, s.Medium - 1, s.Slow - 1}
}

// Switch returns the switch number bound to a role.
func (s Speeds) Switch(r Role) int {
	switch r {
	case RoleFast:
		return s.Fast
	case RoleMedium:
		return s.Medium
	default:
		return s.Slow
	}
}

// Policy decides what happens to characters outside the alphabet.
type Policy string

const (
	// PolicyPassThrough copies non-letters to the output without stepping the switches.
	PolicyPassThrough Policy = "pass-through"
	// PolicyReject aborts the message with a CharacterClassError.
	PolicyReject Policy = "reject"
	// PolicyStrip drops non-letters from the output.
	PolicyStrip Policy = "strip"
)

// ParsePolicy accepts the policy names used in key sheets and flags.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", "passthrough", PolicyPassThrough:
		return PolicyPassThrough, nil
	case PolicyReject, PolicyStrip:
		return p, nil
	default:
		return "", fmt.Errorf("unknown non-letter policy %q", s)
	}
}

// Mode selects the stepping rule.
type Mode string

const (
	// ModeCascade steps the twenties switches as a three-level base-25 odometer.
	ModeCascade Mode = "cascade"
	// ModeTypeB steps exactly one twenties switch per letter, gated by the sixes switch.
	ModeTypeB Mode = "typeb"
)

// ParseMode accepts the mode names used in key sheets and flags.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeCascade:
		return ModeCascade, nil
	case ModeTypeB, "type-b", "historical":
		return ModeTypeB, nil
	default:
		return "", fmt.Errorf("unknown stepping mode %q", s)
	}
}

// Direction selects which way a signal travels through the switch network.
type Direction uint8

const (
	Encipher Direction = iota
	Decipher
)

func (d Direction) String() string {
	if d == Decipher {
		return "decrypt"
	}
	return "encrypt"
}

// Settings is everything needed to build a machine.
type Settings struct {
	Positions Positions `json:"positions" yaml:"positions" mapstructure:"positions"`
	Speeds    Speeds    `json:"speeds" yaml:"speeds" mapstructure:"speeds"`
	Plugboard string    `json:"plugboard,omitempty" yaml:"plugboard,omitempty" mapstructure:"plugboard"`
	Policy    Policy    `json:"policy,omitempty" yaml:"policy,omitempty" mapstructure:"policy"`
	Mode      Mode      `json:"mode,omitempty" yaml:"mode,omitempty" mapstructure:"mode"`
}

// DefaultSettings returns all-zero positions, default speeds, identity plugboard,
// pass-through and cascade stepping.
func DefaultSettings() Settings {
	return Settings{
		Speeds: DefaultSpeeds,
		Policy: PolicyPassThrough,
		Mode:   ModeCascade,
	}
}
