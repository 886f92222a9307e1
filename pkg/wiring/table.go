// Package wiring holds the fixed routing tables of the stepping switches.
//
// A table has one row per input contact and one column per wiper position; the cell is
// the output contact. Contacts are absolute indices into domain.Alphabet, so the sixes
// table works on contacts 0-5 and the twenties tables on contacts 6-25.
package wiring

import (
	"fmt"

	"github.com/aretw0/typeb/pkg/domain"
)

// Table is an immutable routing table for one switch. Safe for concurrent use.
type Table struct {
	name string
	base int
	size int
	fwd  [domain.SwitchContacts][]uint8
	inv  [domain.SwitchContacts][]uint8
}

// FromRows builds a table from its letter form. inputs names the input contacts in
// order; rows[i] gives, for inputs[i], the output letter at each of the 25 positions.
// The inputs must be a contiguous run of domain.Alphabet and every column must be a
// permutation of it.
func FromRows(name, inputs string, rows []string) (*Table, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: %s has no inputs", domain.ErrInvalidWiring, name)
	}
	if len(rows) != len(inputs) {
		return nil, fmt.Errorf("%w: %s has %d inputs but %d rows", domain.ErrInvalidWiring, name, len(inputs), len(rows))
	}

	base := domain.Contact(inputs[0])
	if base < 0 {
		return nil, fmt.Errorf("%w: %s input %q is not a letter", domain.ErrInvalidWiring, name, inputs[0])
	}
	size := len(inputs)
	if base+size > domain.Letters {
		return nil, fmt.Errorf("%w: %s inputs overrun the alphabet", domain.ErrInvalidWiring, name)
	}
	for i := 0; i < size; i++ {
		if domain.Contact(inputs[i]) != base+i {
			return nil, fmt.Errorf("%w: %s inputs must follow contact order, got %q", domain.ErrInvalidWiring, name, inputs)
		}
	}

	t := &Table{name: name, base: base, size: size}
	for pos := 0; pos < domain.SwitchContacts; pos++ {
		t.fwd[pos] = make([]uint8, size)
		t.inv[pos] = make([]uint8, size)
		for i := range t.inv[pos] {
			t.inv[pos][i] = 0xff
		}
	}

	for in, row := range rows {
		if len(row) != domain.SwitchContacts {
			return nil, fmt.Errorf("%w: %s row %c has %d positions, want %d",
				domain.ErrInvalidWiring, name, inputs[in], len(row), domain.SwitchContacts)
		}
		for pos := 0; pos < domain.SwitchContacts; pos++ {
			out := domain.Contact(row[pos]) - base
			if out < 0 || out >= size {
				return nil, fmt.Errorf("%w: %s row %c routes to %q outside the switch domain",
					domain.ErrInvalidWiring, name, inputs[in], row[pos])
			}
			if t.inv[pos][out] != 0xff {
				return nil, fmt.Errorf("%w: %s position %d routes two inputs to %c",
					domain.ErrInvalidWiring, name, pos, row[pos])
			}
			t.fwd[pos][in] = uint8(out)
			t.inv[pos][out] = uint8(in)
		}
	}

	return t, nil
}

// MustFromRows is FromRows for static data; it panics on a malformed table.
func MustFromRows(name, inputs string, rows []string) *Table {
	t, err := FromRows(name, inputs, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table's label.
func (t *Table) Name() string { return t.name }

// Size returns the number of contacts in the table's domain.
func (t *Table) Size() int { return t.size }

// Base returns the first contact of the table's domain.
func (t *Table) Base() int { return t.base }

// Forward routes contact through the switch from input to output at the given position.
func (t *Table) Forward(pos, contact int) int {
	return t.base + int(t.fwd[pos][contact-t.base])
}

// Inverse routes contact backwards, from output to input.
func (t *Table) Inverse(pos, contact int) int {
	return t.base + int(t.inv[pos][contact-t.base])
}

// Row renders the outputs for one input contact across all positions, in letter form.
func (t *Table) Row(contact int) string {
	out := make([]byte, domain.SwitchContacts)
	for pos := range out {
		out[pos] = domain.Letter(t.Forward(pos, contact))
	}
	return string(out)
}
