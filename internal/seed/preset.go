package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yml
var builtinPresets []byte

// FixedAccount is an account created with known credentials.
type FixedAccount struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Bio   string `yaml:"bio"`
}

// Preset describes one seeding run.
type Preset struct {
	Name              string         `yaml:"name"`
	Accounts          int            `yaml:"accounts"`
	Posts             int            `yaml:"posts"`
	FollowsPerAccount int            `yaml:"follows_per_account"`
	DraftRatio        float64        `yaml:"draft_ratio"`
	MaxDays           int            `yaml:"max_days"`
	Fixed             []FixedAccount `yaml:"fixed_accounts"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Validate rejects presets that cannot be applied.
func (p Preset) Validate() error {
	switch {
	case p.Accounts < 0 || p.Posts < 0 || p.FollowsPerAccount < 0:
		return fmt.Errorf("preset %q: counts must not be negative", p.Name)
	case p.DraftRatio < 0 || p.DraftRatio > 1:
		return fmt.Errorf("preset %q: draft_ratio must be within [0,1]", p.Name)
	case p.Posts > 0 && p.Accounts == 0 && len(p.Fixed) == 0:
		return fmt.Errorf("preset %q: posts need at least one account", p.Name)
	}
	for _, fa := range p.Fixed {
		if fa.Email == "" || fa.Name == "" {
			return fmt.Errorf("preset %q: fixed accounts need a name and an email", p.Name)
		}
	}
	return nil
}

// ParsePresets decodes a presets document. Unknown keys are an error.
func ParsePresets(data []byte) (map[string]Preset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file presetFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, errors.New("no presets defined")
	}

	out := make(map[string]Preset, len(file.Presets))
	for _, p := range file.Presets {
		if p.Name == "" {
			return nil, errors.New("preset without a name")
		}
		if _, dup := out[p.Name]; dup {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		out[p.Name] = p
	}
	return out, nil
}

// LoadPresetFile reads presets from a YAML file on disk.
func LoadPresetFile(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePresets(data)
}

// BuiltinPresets returns the presets shipped with the binary.
func BuiltinPresets() map[string]Preset {
	presets, err := ParsePresets(builtinPresets)
	if err != nil {
		panic(fmt.Sprintf("embedded presets are invalid: %v", err))
	}
	return presets
}

// PresetNames lists preset names in order.
func PresetNames(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
