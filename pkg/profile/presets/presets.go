// Package presets holds the built-in validator profiles used by the
// integration suite.
package presets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/modoterra/seqcheck/pkg/profile"
)

// Ramp checks 5000 record fields (poz:v1.A .. poz:v5000.A) that start
// undefined and count up to 10. The value is in column 3, after the date and
// time columns.
func Ramp() *profile.Profile {
	return &profile.Profile{
		Version:     1,
		Name:        "ramp",
		Description: "5000 fields poz:v{i}.A, leading UDF, consecutive run ending at 10",
		NameField:   0,
		ValueField:  3,
		Mode:        profile.ModeSentinel,
		Sentinel:    "UDF",
		Terminal:    10,
		Count:       5000,
		First:       1,
		Template:    "poz:v{i}.A",
	}
}

// Counter checks five records (poz:v1 .. poz:v5) counting from 0 to 5 with
// repeated updates allowed. The value is in column 2.
func Counter() *profile.Profile {
	return &profile.Profile{
		Version:     1,
		Name:        "counter",
		Description: "5 records poz:v{i}, counting 0..5, repeats tolerated",
		NameField:   0,
		ValueField:  2,
		Mode:        profile.ModeRepeat,
		Sentinel:    "0",
		Terminal:    5,
		Count:       5,
		First:       1,
		Template:    "poz:v{i}",
	}
}

var registry = map[string]func() *profile.Profile{
	"ramp":    Ramp,
	"counter": Counter,
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a fresh copy of the named preset.
func Lookup(name string) (*profile.Profile, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s (available: %s)", name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}
