package typeb_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/aretw0/typeb"
	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// First part of the fourteen-part message of 7 December 1941.
	pearlSwitches  = "9-1,24,6-23"
	pearlPlugboard = "NOKTYUXEQLHBRMPDICJASVWGZF"
	pearlPlain     = "FOVTATAKIDASINIMUIMINOMOXIWOODOTAMINO"
	pearlCipher    = "ZTXODNWKCCMAVNZXYWEETUQTCIMNYZOUXHBNY"
)

func TestFacade_HistoricalMessage(t *testing.T) {
	enc, err := typeb.FromKeySheet(pearlSwitches, pearlPlugboard, typeb.WithMode(domain.ModeTypeB))
	require.NoError(t, err)
	got, err := enc.Encrypt(pearlPlain)
	require.NoError(t, err)
	assert.Equal(t, pearlCipher, got)

	dec, err := typeb.FromKeySheet(pearlSwitches, pearlPlugboard, typeb.WithMode(domain.ModeTypeB))
	require.NoError(t, err)
	back, err := dec.Decrypt(pearlCipher)
	require.NoError(t, err)
	assert.Equal(t, pearlPlain, back)
}

func TestFacade_ConcreteScenario(t *testing.T) {
	build := func() *typeb.Machine {
		m, err := typeb.New(
			typeb.WithPositions(domain.Positions{Sixes: 8, Twenties: [3]int{0, 23, 5}}),
			typeb.WithSpeeds(domain.Speeds{Fast: 2, Medium: 3, Slow: 1}),
		)
		require.NoError(t, err)
		return m
	}

	cipher, err := build().Encrypt("ATTACKATDAWN")
	require.NoError(t, err)
	assert.Equal(t, "YMRYFDAMSOFS", cipher)

	plain, err := build().Decrypt(cipher)
	require.NoError(t, err)
	assert.Equal(t, "ATTACKATDAWN", plain)
}

func TestFacade_Defaults(t *testing.T) {
	m, err := typeb.New()
	require.NoError(t, err)

	s := m.Settings()
	assert.Equal(t, domain.Positions{}, s.Positions)
	assert.Equal(t, domain.DefaultSpeeds, s.Speeds)
	assert.Equal(t, domain.PolicyPassThrough, s.Policy)
	assert.Equal(t, domain.ModeCascade, s.Mode)
	assert.Empty(t, s.Plugboard)
}

func TestFacade_ConstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []typeb.Option
		want error
	}{
		{"plugboard", []typeb.Option{typeb.WithPlugboard("ABCDEFGHIJKLMNOPQRSTUVWXYY")}, domain.ErrInvalidPlugboard},
		{"speeds", []typeb.Option{typeb.WithSpeeds(domain.Speeds{Fast: 1, Medium: 1, Slow: 3})}, domain.ErrInvalidSpeedAssignment},
		{"sixes position", []typeb.Option{typeb.WithPositions(domain.Positions{Sixes: 25})}, domain.ErrInvalidPosition},
		{"twenties position", []typeb.Option{typeb.WithPositions(domain.Positions{Twenties: [3]int{0, 0, -3}})}, domain.ErrInvalidPosition},
		{"key sheet", []typeb.Option{typeb.WithKeySheet(keysheet.Sheet{Switches: "9-1,24,6-33"})}, domain.ErrInvalidKeySheet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := typeb.New(tt.opts...)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := typeb.New(typeb.WithPolicy("ignore"))
	assert.Error(t, err)
	_, err = typeb.New(typeb.WithMode("rotor"))
	assert.Error(t, err)
}

func TestFacade_Determinism(t *testing.T) {
	var outputs []string
	for i := 0; i < 3; i++ {
		m, err := typeb.FromKeySheet(pearlSwitches, pearlPlugboard)
		require.NoError(t, err)
		out, err := m.Encrypt(pearlPlain)
		require.NoError(t, err)
		outputs = append(outputs, out)
	}
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[1], outputs[2])
}

func TestFacade_Reciprocity(t *testing.T) {
	rng := rand.New(rand.NewSource(1941))
	for _, mode := range []domain.Mode{domain.ModeCascade, domain.ModeTypeB} {
		for trial := 0; trial < 20; trial++ {
			var sb strings.Builder
			n := 1 + rng.Intn(1500)
			for i := 0; i < n; i++ {
				sb.WriteByte(byte('A' + rng.Intn(26)))
			}
			msg := sb.String()

			perm := []byte(domain.Alphabet)
			rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
			opts := []typeb.Option{
				typeb.WithMode(mode),
				typeb.WithPlugboard(string(perm)),
				typeb.WithPositions(domain.Positions{
					Sixes:    rng.Intn(25),
					Twenties: [3]int{rng.Intn(25), rng.Intn(25), rng.Intn(25)},
				}),
				typeb.WithSpeeds(domain.Speeds{Fast: 3, Medium: 1, Slow: 2}),
			}

			enc, err := typeb.New(opts...)
			require.NoError(t, err)
			cipher, err := enc.Encrypt(msg)
			require.NoError(t, err)
			require.Len(t, cipher, len(msg))

			dec, err := typeb.New(opts...)
			require.NoError(t, err)
			plain, err := dec.Decrypt(cipher)
			require.NoError(t, err)
			require.Equal(t, msg, plain, "mode %s trial %d", mode, trial)
		}
	}
}

func TestFacade_SteppingCycles(t *testing.T) {
	speeds := domain.Speeds{Fast: 2, Medium: 3, Slow: 1}
	m, err := typeb.New(typeb.WithSpeeds(speeds))
	require.NoError(t, err)

	_, err = m.Encrypt(strings.Repeat("A", 25))
	require.NoError(t, err)
	p := m.Positions()
	assert.Equal(t, 0, p.Sixes)
	assert.Equal(t, 0, p.Twenties[speeds.Fast-1])
	assert.Equal(t, 1, p.Twenties[speeds.Medium-1])

	_, err = m.Encrypt(strings.Repeat("B", 600))
	require.NoError(t, err)
	p = m.Positions()
	assert.Equal(t, 0, p.Twenties[speeds.Fast-1])
	assert.Equal(t, 0, p.Twenties[speeds.Medium-1])
	assert.Equal(t, 1, p.Twenties[speeds.Slow-1])
}

func TestFacade_NonLetterPolicies(t *testing.T) {
	pass, err := typeb.New()
	require.NoError(t, err)
	out, err := pass.Encrypt("AB CD")
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.Equal(t, " ", out[2:3])

	strip, err := typeb.New(typeb.WithPolicy(domain.PolicyStrip))
	require.NoError(t, err)
	in := "ATTACK AT DAWN, 0600."
	out, err = strip.Encrypt(in)
	require.NoError(t, err)
	assert.Len(t, out, len("ATTACKATDAWN"))

	reject, err := typeb.New(typeb.WithPolicy(domain.PolicyReject))
	require.NoError(t, err)
	_, err = reject.Encrypt("AB CD")
	var cce *domain.CharacterClassError
	require.True(t, errors.As(err, &cce))
	assert.Equal(t, ' ', cce.Char)
	assert.Equal(t, 2, cce.Index)
}

func TestFacade_KeySheetOption(t *testing.T) {
	sheet := keysheet.Sheet{
		Name:      "pearl",
		Switches:  pearlSwitches,
		Plugboard: strings.ToLower(pearlPlugboard),
		Mode:      "typeb",
	}
	m, err := typeb.New(typeb.WithKeySheet(sheet))
	require.NoError(t, err)
	assert.Equal(t, pearlPlugboard, m.Settings().Plugboard)

	got, err := m.Encrypt(pearlPlain)
	require.NoError(t, err)
	assert.Equal(t, pearlCipher, got)
}
