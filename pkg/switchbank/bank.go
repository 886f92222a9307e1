// Package switchbank models the four stepping switches of the machine and their
// current wiper positions.
package switchbank

import (
	"fmt"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/wiring"
)

// Kind tags a Switch as serving the sixes or the twenties half of the alphabet.
type Kind uint8

const (
	KindSixes Kind = iota
	KindTwenties
)

func (k Kind) String() string {
	if k == KindSixes {
		return "sixes"
	}
	return "twenties"
}

// Switch is a stepping switch: its kind, its wiring and the size of its letter domain.
type Switch struct {
	Kind   Kind
	Table  *wiring.Table
	Domain int
}

// NewSwitch checks that table fits the kind of switch it is wired into.
func NewSwitch(kind Kind, table *wiring.Table) (Switch, error) {
	want := domain.TwentiesSize
	if kind == KindSixes {
		want = domain.SixesSize
	}
	if table == nil || table.Size() != want {
		return Switch{}, fmt.Errorf("%w: %s switch needs a %d-contact table", domain.ErrInvalidWiring, kind, want)
	}
	return Switch{Kind: kind, Table: table, Domain: want}, nil
}

func (s Switch) route(pos, contact int, dir domain.Direction) int {
	if dir == domain.Encipher {
		return s.Table.Inverse(pos, contact)
	}
	return s.Table.Forward(pos, contact)
}

// Motion records which switches moved during one step.
type Motion struct {
	Sixes    bool
	Twenties [3]bool
}

// Stepper advances positions. Only a Stepper may move the bank.
type Stepper interface {
	Advance(p *domain.Positions) Motion
}

// Wiring is the set of tables a Bank is built from.
type Wiring struct {
	Sixes    *wiring.Table
	Twenties [3]*wiring.Table
}

// Historical is the published Type B wiring.
var Historical = Wiring{
	Sixes:    wiring.Sixes,
	Twenties: [3]*wiring.Table{wiring.TwentiesI, wiring.TwentiesII, wiring.TwentiesIII},
}

// Bank is the switch network plus its wiper positions. Not safe for concurrent use.
type Bank struct {
	sixes    Switch
	twenties [3]Switch
	pos      domain.Positions
}

// New builds a bank from validated initial positions.
func New(w Wiring, start domain.Positions) (*Bank, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}

	sixes, err := NewSwitch(KindSixes, w.Sixes)
	if err != nil {
		return nil, err
	}

	b := &Bank{sixes: sixes, pos: start}
	for i, tbl := range w.Twenties {
		sw, err := NewSwitch(KindTwenties, tbl)
		if err != nil {
			return nil, fmt.Errorf("twenties switch #%d: %w", i+1, err)
		}
		b.twenties[i] = sw
	}
	return b, nil
}

// Lookup routes a contact through the network at the current positions.
// Sixes contacts go through the sixes switch. Twenties contacts traverse all three
// twenties switches in series: #1, #2, #3 when enciphering, the reverse when deciphering.
func (b *Bank) Lookup(class domain.Class, contact int, dir domain.Direction) int {
	if class == domain.ClassSixes {
		return b.sixes.route(b.pos.Sixes, contact, dir)
	}

	if dir == domain.Encipher {
		for i := 0; i < len(b.twenties); i++ {
			contact = b.twenties[i].route(b.pos.Twenties[i], contact, dir)
		}
		return contact
	}
	for i := len(b.twenties) - 1; i >= 0; i-- {
		contact = b.twenties[i].route(b.pos.Twenties[i], contact, dir)
	}
	return contact
}

// Positions returns a copy of the current wiper positions.
func (b *Bank) Positions() domain.Positions {
	return b.pos
}

// Step lets s advance the wipers.
func (b *Bank) Step(s Stepper) Motion {
	return s.Advance(&b.pos)
}
