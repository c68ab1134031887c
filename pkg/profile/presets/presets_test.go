package presets

import (
	"strings"
	"testing"

	"github.com/modoterra/seqcheck/pkg/profile"
)

func TestPresetsAreValid(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := Lookup(name)
			if err != nil {
				t.Fatal(err)
			}
			if p.Name != name {
				t.Errorf("name: got %q, want %q", p.Name, name)
			}
			if errs := profile.Validate(p); len(errs) != 0 {
				t.Errorf("validation errors: %v", errs)
			}
		})
	}
}

func TestRamp(t *testing.T) {
	p := Ramp()
	keys := p.Keys()
	if len(keys) != 5000 {
		t.Fatalf("keys: got %d, want 5000", len(keys))
	}
	if keys[0] != "poz:v1.A" || keys[4999] != "poz:v5000.A" {
		t.Errorf("keys: first %q, last %q", keys[0], keys[4999])
	}
	if p.ValueField != 3 || p.Sentinel != "UDF" || p.Terminal != 10 {
		t.Errorf("unexpected ramp profile: %+v", p)
	}
}

func TestCounter(t *testing.T) {
	p := Counter()
	keys := p.Keys()
	if len(keys) != 5 || keys[0] != "poz:v1" || keys[4] != "poz:v5" {
		t.Errorf("keys: got %q", keys)
	}
	if p.ValueField != 2 || p.Mode != profile.ModeRepeat || p.Sentinel != "0" || p.Terminal != 5 {
		t.Errorf("unexpected counter profile: %+v", p)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	a, _ := Lookup("counter")
	a.Terminal = 99
	b, _ := Lookup("counter")
	if b.Terminal != 5 {
		t.Errorf("preset mutated through lookup: terminal %d", b.Terminal)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("laravel")
	if err == nil || !strings.Contains(err.Error(), "available: counter, ramp") {
		t.Errorf("got %v", err)
	}
}
