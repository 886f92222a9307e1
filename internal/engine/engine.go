// Package engine runs text through the plugboard and switch network one letter at a time.
package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/plugboard"
	"github.com/aretw0/typeb/pkg/stepping"
	"github.com/aretw0/typeb/pkg/switchbank"
)

// Engine is the per-message cipher core. It owns the bank's mutable positions and is
// not safe for concurrent use.
type Engine struct {
	plugboard  *plugboard.Plugboard
	bank       *switchbank.Bank
	controller *stepping.Controller
	policy     domain.Policy
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets the non-letter policy (default: pass-through).
func WithPolicy(p domain.Policy) Option {
	return func(e *Engine) {
		if p != "" {
			e.policy = p
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = h
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New wires the components of one machine.
func New(pb *plugboard.Plugboard, bank *switchbank.Bank, ctrl *stepping.Controller, opts ...Option) *Engine {
	e := &Engine{
		plugboard:  pb,
		bank:       bank,
		controller: ctrl,
		policy:     domain.PolicyPassThrough,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Positions returns the positions the next letter will use.
func (e *Engine) Positions() domain.Positions {
	return e.bank.Positions()
}

// Policy returns the non-letter policy in effect.
func (e *Engine) Policy() domain.Policy {
	return e.policy
}

// Process transforms text in the given direction, advancing the switches once per
// letter. Under PolicyReject a message holding any non-letter is refused before a
// single switch moves, so the engine can be reused with corrected input.
// Pass-through copies non-letter bytes verbatim, invalid UTF-8 included.
func (e *Engine) Process(ctx context.Context, text string, dir domain.Direction) (string, error) {
	start := time.Now()

	var out strings.Builder
	var err error
	letters, skipped := 0, 0

	if e.policy == domain.PolicyReject {
		err = firstNonLetter(text)
	}

	if err == nil {
		out.Grow(len(text))
		for i, index := 0, 0; i < len(text); index++ {
			r, size := utf8.DecodeRuneInString(text[i:])
			letter, ok := byte(0), false
			if r < utf8.RuneSelf {
				letter, ok = domain.Normalize(byte(r))
			}

			switch {
			case ok:
				out.WriteByte(e.transform(ctx, index, letter, dir))
				letters++
			case e.policy == domain.PolicyStrip:
				skipped++
			default:
				out.WriteString(text[i : i+size])
				skipped++
			}
			i += size
		}
	}

	final := e.bank.Positions()
	e.logger.Debug("message processed",
		"direction", dir.String(),
		"letters", letters,
		"skipped", skipped,
		"positions", final.String(),
		"error", err,
	)

	if e.hooks.OnMessage != nil {
		e.hooks.OnMessage(ctx, &domain.MessageEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventMessage, Direction: dir},
			Letters:   letters,
			Skipped:   skipped,
			Final:     final,
			Duration:  time.Since(start),
			Err:       err,
		})
	}

	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// firstNonLetter reports the first character outside the alphabet, indexed in runes.
func firstNonLetter(text string) error {
	for i, index := 0, 0; i < len(text); index++ {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r >= utf8.RuneSelf {
			return &domain.CharacterClassError{Char: r, Index: index}
		}
		if _, ok := domain.Normalize(byte(r)); !ok {
			return &domain.CharacterClassError{Char: r, Index: index}
		}
		i += size
	}
	return nil
}

// transform handles one upper-case letter: plugboard in, switch network at the current
// positions, plugboard out, then advance.
func (e *Engine) transform(ctx context.Context, index int, letter byte, dir domain.Direction) byte {
	contact := domain.Contact(e.plugboard.Substitute(letter))
	class := domain.ClassOf(contact)
	used := e.bank.Positions()

	routed := e.bank.Lookup(class, contact, dir)
	output := e.plugboard.Invert(domain.Letter(routed))

	motion := e.bank.Step(e.controller)

	if e.hooks.OnLetter != nil {
		e.hooks.OnLetter(ctx, &domain.LetterEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventLetter, Direction: dir},
			Index:     index,
			Input:     letter,
			Output:    output,
			Class:     class,
			Positions: used,
			Stepped:   e.rolesMoved(motion),
		})
	}

	return output
}

func (e *Engine) rolesMoved(m switchbank.Motion) []domain.Role {
	speeds := e.controller.Speeds()
	var roles []domain.Role
	for _, r := range []domain.Role{domain.RoleFast, domain.RoleMedium, domain.RoleSlow} {
		if m.Twenties[speeds.Switch(r)-1] {
			roles = append(roles, r)
		}
	}
	return roles
}
