package profile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects how the leading sentinel and repeated values are treated.
type Mode string

const (
	// ModeSentinel skips a leading run of sentinel tokens, adopts the first
	// other value as the start of the run and rejects any repeat after that.
	ModeSentinel Mode = "sentinel"
	// ModeRepeat uses a numeric sentinel that doubles as the first value and
	// tolerates repeats of the current value.
	ModeRepeat Mode = "repeat"
)

// Placeholder is replaced by the key index in Template.
const Placeholder = "{i}"

// Profile describes one validator variant: where the name and value columns
// are, how runs are checked and which keys must be present.
type Profile struct {
	Version     int    `yaml:"version"               json:"version"`
	Name        string `yaml:"name"                  json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	NameField   int    `yaml:"name_field"            json:"name_field"`  // index after the suffix is dropped
	ValueField  int    `yaml:"value_field"           json:"value_field"` // index after the suffix is dropped
	Mode        Mode   `yaml:"mode"                  json:"mode"`
	Sentinel    string `yaml:"sentinel"              json:"sentinel"`
	Terminal    int64  `yaml:"terminal"              json:"terminal"`
	Count       int    `yaml:"count"                 json:"count"`
	First       int    `yaml:"first"                 json:"first"`
	Template    string `yaml:"template"              json:"template"`
	CheckAll    bool   `yaml:"check_all,omitempty"   json:"check_all,omitempty"` // keep checking after the first failure
}

// Key returns the expected key for index i.
func (p *Profile) Key(i int) string {
	return strings.ReplaceAll(p.Template, Placeholder, strconv.Itoa(i))
}

// Keys returns every expected key in ascending index order.
func (p *Profile) Keys() []string {
	keys := make([]string, 0, p.Count)
	for i := p.First; i < p.First+p.Count; i++ {
		keys = append(keys, p.Key(i))
	}
	return keys
}

// MinFields is the number of fields a line needs once its suffix is dropped.
func (p *Profile) MinFields() int {
	return max(p.NameField, p.ValueField) + 1
}

// Parse decodes a profile from YAML. Omitted keys keep their defaults
// (version 1, first index 1, name in column 0).
func Parse(data []byte) (*Profile, error) {
	p := &Profile{Version: 1, First: 1}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

// Load reads and parses a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Marshal encodes p as YAML.
func Marshal(p *Profile) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}

// Save writes p to path as YAML.
func Save(p *Profile, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
