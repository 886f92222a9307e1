package stepping_test

import (
	"testing"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/stepping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidSpeeds(t *testing.T) {
	tests := []struct {
		name   string
		speeds domain.Speeds
	}{
		{"zero value", domain.Speeds{}},
		{"repeated", domain.Speeds{Fast: 1, Medium: 1, Slow: 3}},
		{"out of range", domain.Speeds{Fast: 1, Medium: 2, Slow: 4}},
		{"negative", domain.Speeds{Fast: -1, Medium: 2, Slow: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stepping.New(tt.speeds, domain.ModeCascade)
			assert.ErrorIs(t, err, domain.ErrInvalidSpeedAssignment)
		})
	}
}

func TestNew_UnknownMode(t *testing.T) {
	_, err := stepping.New(domain.DefaultSpeeds, "rotor")
	assert.Error(t, err)

	c, err := stepping.New(domain.DefaultSpeeds, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeCascade, c.Mode())
}

func TestCascade_StepsEveryLetter(t *testing.T) {
	c, err := stepping.New(domain.Speeds{Fast: 2, Medium: 3, Slow: 1}, domain.ModeCascade)
	require.NoError(t, err)

	p := domain.Positions{Sixes: 3, Twenties: [3]int{7, 11, 13}}
	m := c.Advance(&p)

	assert.Equal(t, domain.Positions{Sixes: 4, Twenties: [3]int{7, 12, 13}}, p)
	assert.True(t, m.Sixes)
	assert.Equal(t, [3]bool{false, true, false}, m.Twenties)
}

func TestCascade_Cycle25(t *testing.T) {
	speeds := domain.Speeds{Fast: 2, Medium: 3, Slow: 1}
	c, err := stepping.New(speeds, domain.ModeCascade)
	require.NoError(t, err)

	var p domain.Positions
	for i := 0; i < 25; i++ {
		c.Advance(&p)
	}

	assert.Equal(t, 0, p.Sixes)
	assert.Equal(t, 0, p.Twenties[speeds.Fast-1])
	assert.Equal(t, 1, p.Twenties[speeds.Medium-1])
	assert.Equal(t, 0, p.Twenties[speeds.Slow-1])
}

func TestCascade_Carry625(t *testing.T) {
	speeds := domain.Speeds{Fast: 3, Medium: 1, Slow: 2}
	c, err := stepping.New(speeds, domain.ModeCascade)
	require.NoError(t, err)

	var p domain.Positions
	for i := 0; i < 624; i++ {
		c.Advance(&p)
	}
	assert.Equal(t, 0, p.Twenties[speeds.Slow-1], "slow must not move before letter 625")

	m := c.Advance(&p)
	assert.Equal(t, 0, p.Sixes)
	assert.Equal(t, 0, p.Twenties[speeds.Fast-1])
	assert.Equal(t, 0, p.Twenties[speeds.Medium-1])
	assert.Equal(t, 1, p.Twenties[speeds.Slow-1])
	assert.Equal(t, [3]bool{true, true, true}, m.Twenties)
}

func TestCascade_CarryUsesPositionBeforeAdvance(t *testing.T) {
	c, err := stepping.New(domain.DefaultSpeeds, domain.ModeCascade)
	require.NoError(t, err)

	p := domain.Positions{Twenties: [3]int{24, 24, 3}}
	c.Advance(&p)
	assert.Equal(t, [3]int{0, 0, 4}, p.Twenties)

	// Medium sits at 24 but fast did not wrap: no carry.
	p = domain.Positions{Twenties: [3]int{10, 24, 3}}
	c.Advance(&p)
	assert.Equal(t, [3]int{11, 24, 3}, p.Twenties)
}

func TestTypeB_OneTwentiesSwitchPerLetter(t *testing.T) {
	speeds := domain.Speeds{Fast: 2, Medium: 3, Slow: 1}
	c, err := stepping.New(speeds, domain.ModeTypeB)
	require.NoError(t, err)

	tests := []struct {
		name  string
		start domain.Positions
		want  domain.Positions
	}{
		{
			name:  "fast by default",
			start: domain.Positions{Sixes: 0, Twenties: [3]int{1, 2, 3}},
			want:  domain.Positions{Sixes: 1, Twenties: [3]int{1, 3, 3}},
		},
		{
			name:  "medium when sixes is at 24",
			start: domain.Positions{Sixes: 24, Twenties: [3]int{1, 2, 3}},
			want:  domain.Positions{Sixes: 0, Twenties: [3]int{1, 2, 4}},
		},
		{
			name:  "slow when sixes is at 23 and medium at 24",
			start: domain.Positions{Sixes: 23, Twenties: [3]int{1, 2, 24}},
			want:  domain.Positions{Sixes: 24, Twenties: [3]int{2, 2, 24}},
		},
		{
			name:  "fast when sixes is at 23 and medium elsewhere",
			start: domain.Positions{Sixes: 23, Twenties: [3]int{1, 24, 3}},
			want:  domain.Positions{Sixes: 24, Twenties: [3]int{1, 0, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.start
			m := c.Advance(&p)
			assert.Equal(t, tt.want, p)

			moved := 0
			for _, b := range m.Twenties {
				if b {
					moved++
				}
			}
			assert.Equal(t, 1, moved)
			assert.True(t, m.Sixes)
		})
	}
}
