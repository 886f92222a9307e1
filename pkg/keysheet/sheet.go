package keysheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/plugboard"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Sheet is one day's key: a named set of machine settings.
//
// Switch settings come either from Switches (shorthand, 1-based) or from the explicit
// Positions/Speeds blocks (0-based), not both.
type Sheet struct {
	Name      string            `yaml:"name" json:"name" mapstructure:"name"`
	Switches  string            `yaml:"switches,omitempty" json:"switches,omitempty" mapstructure:"switches"`
	Positions *domain.Positions `yaml:"positions,omitempty" json:"positions,omitempty" mapstructure:"positions"`
	Speeds    *domain.Speeds    `yaml:"speeds,omitempty" json:"speeds,omitempty" mapstructure:"speeds"`
	Plugboard string            `yaml:"plugboard,omitempty" json:"plugboard,omitempty" mapstructure:"plugboard"`
	Mode      string            `yaml:"mode,omitempty" json:"mode,omitempty" mapstructure:"mode"`
	Policy    string            `yaml:"policy,omitempty" json:"policy,omitempty" mapstructure:"policy"`
	Notes     string            `yaml:"notes,omitempty" json:"notes,omitempty" mapstructure:"notes"`

	// Sealed holds the whole sheet encrypted at rest; see pkg/persistence/middleware.
	Sealed string `yaml:"sealed,omitempty" json:"sealed,omitempty" mapstructure:"sealed"`
}

// ValidateName reports whether name can identify a stored sheet: non-empty, no path
// separators, no leading dot.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: sheet has no name", domain.ErrInvalidKeySheet)
	case strings.ContainsAny(name, `/\`), strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: invalid sheet name %q", domain.ErrInvalidKeySheet, name)
	}
	return nil
}

// FromSettings renders settings as a sheet using the shorthand notation.
func FromSettings(name string, s domain.Settings) Sheet {
	return Sheet{
		Name:      name,
		Switches:  Format(s.Positions, s.Speeds),
		Plugboard: s.Plugboard,
		Mode:      string(s.Mode),
		Policy:    string(s.Policy),
	}
}

// Settings validates the sheet and converts it to machine settings.
func (s Sheet) Settings() (domain.Settings, error) {
	out := domain.DefaultSettings()

	switch {
	case s.Sealed != "":
		return out, fmt.Errorf("%w: %q is sealed and must be opened with the store key", domain.ErrInvalidKeySheet, s.Name)
	case s.Switches != "" && (s.Positions != nil || s.Speeds != nil):
		return out, fmt.Errorf("%w: %q sets both switches and positions/speeds", domain.ErrInvalidKeySheet, s.Name)
	case s.Switches != "":
		pos, speeds, err := Parse(s.Switches)
		if err != nil {
			return out, err
		}
		out.Positions, out.Speeds = pos, speeds
	default:
		if s.Positions != nil {
			out.Positions = *s.Positions
		}
		if s.Speeds != nil {
			out.Speeds = *s.Speeds
		}
	}

	if err := out.Positions.Validate(); err != nil {
		return out, err
	}
	if err := out.Speeds.Validate(); err != nil {
		return out, err
	}

	pb, err := plugboard.New(s.Plugboard)
	if err != nil {
		return out, err
	}
	if s.Plugboard != "" {
		out.Plugboard = pb.String()
	}

	if out.Mode, err = domain.ParseMode(s.Mode); err != nil {
		return out, fmt.Errorf("%w: %w", domain.ErrInvalidKeySheet, err)
	}
	if out.Policy, err = domain.ParsePolicy(s.Policy); err != nil {
		return out, fmt.Errorf("%w: %w", domain.ErrInvalidKeySheet, err)
	}

	return out, nil
}

// FromMap decodes a loosely typed document (YAML or JSON decoded into a map) into a
// sheet. Numbers given as strings are accepted; unknown keys are rejected.
func FromMap(doc map[string]any) (Sheet, error) {
	var sheet Sheet
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &sheet,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return sheet, err
	}
	if err := dec.Decode(doc); err != nil {
		return sheet, fmt.Errorf("%w: %w", domain.ErrInvalidKeySheet, err)
	}
	return sheet, nil
}

// Decode parses a YAML key sheet.
func Decode(data []byte) (Sheet, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Sheet{}, fmt.Errorf("%w: %w", domain.ErrInvalidKeySheet, err)
	}
	if doc == nil {
		return Sheet{}, fmt.Errorf("%w: empty document", domain.ErrInvalidKeySheet)
	}
	return FromMap(doc)
}

// Encode renders the sheet as YAML.
func (s Sheet) Encode() ([]byte, error) {
	return yaml.Marshal(s)
}

// Load reads a YAML key sheet from disk. If the sheet has no name, the file name is used.
func Load(path string) (Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to read key sheet: %w", err)
	}
	sheet, err := Decode(data)
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", path, err)
	}
	if sheet.Name == "" {
		base := filepath.Base(path)
		sheet.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return sheet, nil
}
