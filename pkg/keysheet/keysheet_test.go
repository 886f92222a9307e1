package keysheet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	pos, speeds, err := keysheet.Parse("9-1,24,6-23")
	require.NoError(t, err)

	assert.Equal(t, domain.Positions{Sixes: 8, Twenties: [3]int{0, 23, 5}}, pos)
	assert.Equal(t, domain.Speeds{Fast: 2, Medium: 3, Slow: 1}, speeds)
	assert.Equal(t, "9-1,24,6-23", keysheet.Format(pos, speeds))
}

func TestParse_Whitespace(t *testing.T) {
	pos, speeds, err := keysheet.Parse("  1-1, 1 ,25-31 ")
	require.NoError(t, err)
	assert.Equal(t, domain.Positions{Twenties: [3]int{0, 0, 24}}, pos)
	assert.Equal(t, domain.Speeds{Fast: 3, Medium: 1, Slow: 2}, speeds)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		also error
	}{
		{"empty", "", nil},
		{"missing dash", "9,1,24,6-23", nil},
		{"two twenties", "9-1,24-23", nil},
		{"not a number", "x-1,24,6-23", nil},
		{"position zero", "0-1,24,6-23", domain.ErrInvalidPosition},
		{"position 26", "9-1,26,6-23", domain.ErrInvalidPosition},
		{"one speed digit", "9-1,24,6-2", nil},
		{"speed not digits", "9-1,24,6-ab", nil},
		{"same fast and medium", "9-1,24,6-22", domain.ErrInvalidSpeedAssignment},
		{"speed out of range", "9-1,24,6-14", domain.ErrInvalidSpeedAssignment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := keysheet.Parse(tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidKeySheet)
			if tt.also != nil {
				assert.ErrorIs(t, err, tt.also)
			}
		})
	}
}

func TestDecode_Shorthand(t *testing.T) {
	doc := []byte(`
name: "1941-12-07"
switches: 9-1,24,6-23
plugboard: noktyuxeqlhbrmpdicjasvwgzf
mode: typeb
policy: reject
notes: fourteen-part message, part 1
`)
	sheet, err := keysheet.Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, "1941-12-07", sheet.Name)

	s, err := sheet.Settings()
	require.NoError(t, err)
	assert.Equal(t, domain.Positions{Sixes: 8, Twenties: [3]int{0, 23, 5}}, s.Positions)
	assert.Equal(t, domain.Speeds{Fast: 2, Medium: 3, Slow: 1}, s.Speeds)
	assert.Equal(t, "NOKTYUXEQLHBRMPDICJASVWGZF", s.Plugboard)
	assert.Equal(t, domain.ModeTypeB, s.Mode)
	assert.Equal(t, domain.PolicyReject, s.Policy)
}

func TestDecode_Explicit(t *testing.T) {
	doc := []byte(`
name: explicit
positions:
  sixes: 3
  twenties: [4, "5", 6]
speeds:
  fast: 3
  medium: 2
  slow: 1
`)
	sheet, err := keysheet.Decode(doc)
	require.NoError(t, err)

	s, err := sheet.Settings()
	require.NoError(t, err)
	assert.Equal(t, domain.Positions{Sixes: 3, Twenties: [3]int{4, 5, 6}}, s.Positions)
	assert.Equal(t, domain.Speeds{Fast: 3, Medium: 2, Slow: 1}, s.Speeds)
	assert.Equal(t, domain.ModeCascade, s.Mode)
	assert.Equal(t, domain.PolicyPassThrough, s.Policy)
	assert.Empty(t, s.Plugboard)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not yaml", "switches: [unterminated"},
		{"unknown key", "name: x\nrotors: 3\n"},
		{"too many twenties", "positions:\n  twenties: [1, 2, 3, 4]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := keysheet.Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, domain.ErrInvalidKeySheet)
		})
	}
}

func TestSettings_Errors(t *testing.T) {
	pos := domain.Positions{}
	tests := []struct {
		name  string
		sheet keysheet.Sheet
		want  error
	}{
		{"both notations", keysheet.Sheet{Switches: "1-1,1,1-12", Positions: &pos}, domain.ErrInvalidKeySheet},
		{"bad position", keysheet.Sheet{Positions: &domain.Positions{Sixes: 30}}, domain.ErrInvalidPosition},
		{"bad speeds", keysheet.Sheet{Speeds: &domain.Speeds{Fast: 1, Medium: 1, Slow: 1}}, domain.ErrInvalidSpeedAssignment},
		{"bad plugboard", keysheet.Sheet{Plugboard: "ABC"}, domain.ErrInvalidPlugboard},
		{"bad mode", keysheet.Sheet{Mode: "rotor"}, domain.ErrInvalidKeySheet},
		{"bad policy", keysheet.Sheet{Policy: "ignore"}, domain.ErrInvalidKeySheet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.sheet.Settings()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromSettings_RoundTrip(t *testing.T) {
	in := domain.Settings{
		Positions: domain.Positions{Sixes: 8, Twenties: [3]int{0, 23, 5}},
		Speeds:    domain.Speeds{Fast: 2, Medium: 3, Slow: 1},
		Plugboard: "NOKTYUXEQLHBRMPDICJASVWGZF",
		Mode:      domain.ModeTypeB,
		Policy:    domain.PolicyStrip,
	}
	sheet := keysheet.FromSettings("daily", in)
	assert.Equal(t, "9-1,24,6-23", sheet.Switches)

	data, err := sheet.Encode()
	require.NoError(t, err)

	back, err := keysheet.Decode(data)
	require.NoError(t, err)
	out, err := back.Settings()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "monday.yaml")
	require.NoError(t, os.WriteFile(path, []byte("switches: 1-1,1,1-12\n"), 0o644))

	sheet, err := keysheet.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "monday", sheet.Name)

	_, err = keysheet.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, keysheet.ValidateName("1941-12-07"))
	for _, bad := range []string{"", "../etc", "a/b", `a\b`, ".hidden"} {
		assert.ErrorIs(t, keysheet.ValidateName(bad), domain.ErrInvalidKeySheet, bad)
	}
}

func TestSettings_SealedSheet(t *testing.T) {
	_, err := keysheet.Sheet{Name: "x", Sealed: "b64"}.Settings()
	assert.ErrorIs(t, err, domain.ErrInvalidKeySheet)
}
