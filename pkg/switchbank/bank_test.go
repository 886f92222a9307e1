package switchbank_test

import (
	"testing"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/switchbank"
	"github.com/aretw0/typeb/pkg/wiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStepper struct{ calls int }

func (f *fixedStepper) Advance(p *domain.Positions) switchbank.Motion {
	f.calls++
	p.Sixes = (p.Sixes + 1) % domain.SwitchContacts
	return switchbank.Motion{Sixes: true}
}

func TestNew_RejectsBadPositions(t *testing.T) {
	_, err := switchbank.New(switchbank.Historical, domain.Positions{Sixes: 25})
	assert.ErrorIs(t, err, domain.ErrInvalidPosition)

	_, err = switchbank.New(switchbank.Historical, domain.Positions{Twenties: [3]int{0, -1, 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidPosition)
}

func TestNew_RejectsMismatchedTables(t *testing.T) {
	w := switchbank.Historical
	w.Sixes = wiring.TwentiesI
	_, err := switchbank.New(w, domain.Positions{})
	assert.ErrorIs(t, err, domain.ErrInvalidWiring)

	w = switchbank.Historical
	w.Twenties[1] = wiring.Sixes
	_, err = switchbank.New(w, domain.Positions{})
	assert.ErrorIs(t, err, domain.ErrInvalidWiring)
}

func TestLookup_Sixes(t *testing.T) {
	bank, err := switchbank.New(switchbank.Historical, domain.Positions{})
	require.NoError(t, err)

	a := domain.Contact('A')
	assert.Equal(t, domain.Contact('E'), bank.Lookup(domain.ClassSixes, a, domain.Decipher))
	// A is the preimage of E at position 0 as well.
	assert.Equal(t, domain.Contact('E'), bank.Lookup(domain.ClassSixes, a, domain.Encipher))
}

func TestLookup_DirectionsAreInverse(t *testing.T) {
	bank, err := switchbank.New(switchbank.Historical, domain.Positions{Sixes: 7, Twenties: [3]int{3, 17, 24}})
	require.NoError(t, err)

	for c := 0; c < domain.Letters; c++ {
		class := domain.ClassOf(c)
		enc := bank.Lookup(class, c, domain.Encipher)
		assert.Equal(t, class, domain.ClassOf(enc))
		assert.Equal(t, c, bank.Lookup(class, enc, domain.Decipher), "contact %c", domain.Letter(c))
	}
}

func TestLookup_TwentiesChain(t *testing.T) {
	pos := domain.Positions{Twenties: [3]int{4, 9, 21}}
	bank, err := switchbank.New(switchbank.Historical, pos)
	require.NoError(t, err)

	c := domain.Contact('T')

	// Deciphering walks #3, #2, #1 forwards.
	dec := wiring.TwentiesI.Forward(4, wiring.TwentiesII.Forward(9, wiring.TwentiesIII.Forward(21, c)))
	assert.Equal(t, dec, bank.Lookup(domain.ClassTwenties, c, domain.Decipher))

	// Enciphering walks #1, #2, #3 backwards.
	enc := wiring.TwentiesIII.Inverse(21, wiring.TwentiesII.Inverse(9, wiring.TwentiesI.Inverse(4, c)))
	assert.Equal(t, enc, bank.Lookup(domain.ClassTwenties, c, domain.Encipher))
}

func TestStep_DelegatesToStepper(t *testing.T) {
	bank, err := switchbank.New(switchbank.Historical, domain.Positions{Sixes: 24})
	require.NoError(t, err)

	s := &fixedStepper{}
	m := bank.Step(s)
	assert.True(t, m.Sixes)
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, 0, bank.Positions().Sixes)

	// Positions returns a copy.
	p := bank.Positions()
	p.Sixes = 12
	assert.Equal(t, 0, bank.Positions().Sixes)
}
