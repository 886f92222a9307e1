package typeb

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/typeb/internal/engine"
	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/aretw0/typeb/pkg/plugboard"
	"github.com/aretw0/typeb/pkg/stepping"
	"github.com/aretw0/typeb/pkg/switchbank"
)

// Machine is one Type B cipher machine set up for one message.
// It is not safe for concurrent use; build one Machine per message stream.
type Machine struct {
	engine   *engine.Engine
	settings domain.Settings
}

type config struct {
	settings domain.Settings
	wiring   switchbank.Wiring
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	err      error
}

// Option defines a functional option for configuring the Machine.
type Option func(*config)

// WithSettings replaces all settings at once.
func WithSettings(s domain.Settings) Option {
	return func(c *config) {
		c.settings = s
	}
}

// WithPositions sets the initial switch positions (0-based).
func WithPositions(p domain.Positions) Option {
	return func(c *config) {
		c.settings.Positions = p
	}
}

// WithSpeeds sets which twenties switch is fast, medium and slow.
func WithSpeeds(s domain.Speeds) Option {
	return func(c *config) {
		c.settings.Speeds = s
	}
}

// WithPlugboard sets the 26-letter plugboard permutation.
func WithPlugboard(perm string) Option {
	return func(c *config) {
		c.settings.Plugboard = perm
	}
}

// WithPolicy sets what happens to characters outside the alphabet.
func WithPolicy(p domain.Policy) Option {
	return func(c *config) {
		c.settings.Policy = p
	}
}

// WithMode selects the stepping rule.
func WithMode(m domain.Mode) Option {
	return func(c *config) {
		c.settings.Mode = m
	}
}

// WithKeySheet applies the settings of a key sheet. Invalid sheets surface from New.
func WithKeySheet(sheet keysheet.Sheet) Option {
	return func(c *config) {
		s, err := sheet.Settings()
		if err != nil {
			c.err = err
			return
		}
		c.settings = s
	}
}

// WithWiring replaces the switch tables. Mostly useful for tests and variants.
func WithWiring(w switchbank.Wiring) Option {
	return func(c *config) {
		c.wiring = w
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New builds a machine. Without options it starts with every switch at 0, switch #1
// fast, #2 medium, #3 slow, a straight plugboard, pass-through for non-letters and
// cascade stepping.
func New(opts ...Option) (*Machine, error) {
	cfg := &config{
		settings: domain.DefaultSettings(),
		wiring:   switchbank.Historical,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	s := cfg.settings
	policy, err := domain.ParsePolicy(string(s.Policy))
	if err != nil {
		return nil, err
	}
	s.Policy = policy

	bank, err := switchbank.New(cfg.wiring, s.Positions)
	if err != nil {
		return nil, err
	}

	ctrl, err := stepping.New(s.Speeds, s.Mode)
	if err != nil {
		return nil, err
	}
	s.Mode = ctrl.Mode()

	pb, err := plugboard.New(s.Plugboard)
	if err != nil {
		return nil, err
	}
	if s.Plugboard != "" {
		s.Plugboard = pb.String()
	}

	logger := cfg.logger.With("switches", keysheet.Format(s.Positions, s.Speeds), "mode", string(s.Mode))
	logger.Debug("machine ready", "plugboard", pb.String(), "policy", string(s.Policy))

	return &Machine{
		engine: engine.New(pb, bank, ctrl,
			engine.WithPolicy(s.Policy),
			engine.WithLifecycleHooks(cfg.hooks),
			engine.WithLogger(logger),
		),
		settings: s,
	}, nil
}

// FromKeySheet builds a machine from shorthand switch settings and a plugboard,
// e.g. FromKeySheet("9-1,24,6-23", "NOKTYUXEQLHBRMPDICJASVWGZF").
func FromKeySheet(switches, perm string, opts ...Option) (*Machine, error) {
	pos, speeds, err := keysheet.Parse(switches)
	if err != nil {
		return nil, err
	}
	base := []Option{WithPositions(pos), WithSpeeds(speeds), WithPlugboard(perm)}
	return New(append(base, opts...)...)
}

// Encrypt enciphers text, advancing the switches once per letter. A message refused
// under the reject policy moves no switch, so the call can be retried on the same
// machine.
func (m *Machine) Encrypt(text string) (string, error) {
	return m.EncryptContext(context.Background(), text)
}

// Decrypt deciphers text, advancing the switches once per letter. Rejected messages
// leave the positions as they were.
func (m *Machine) Decrypt(text string) (string, error) {
	return m.DecryptContext(context.Background(), text)
}

// EncryptContext is Encrypt with a context handed to lifecycle hooks.
func (m *Machine) EncryptContext(ctx context.Context, text string) (string, error) {
	out, err := m.engine.Process(ctx, text, domain.Encipher)
	if err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}
	return out, nil
}

// DecryptContext is Decrypt with a context handed to lifecycle hooks.
func (m *Machine) DecryptContext(ctx context.Context, text string) (string, error) {
	out, err := m.engine.Process(ctx, text, domain.Decipher)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return out, nil
}

// Positions returns the switch positions the next letter will use.
func (m *Machine) Positions() domain.Positions {
	return m.engine.Positions()
}

// Settings returns the normalized settings the machine was built with.
func (m *Machine) Settings() domain.Settings {
	return m.settings
}
