package profile

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Validate checks the profile for structural correctness.
func Validate(p *Profile) []error {
	var errs []error

	if p.Version != 1 {
		errs = append(errs, fmt.Errorf("version must be 1, got %d", p.Version))
	}

	// Field positions
	if p.NameField < 0 {
		errs = append(errs, fmt.Errorf("name_field must not be negative, got %d", p.NameField))
	}
	if p.ValueField < 0 {
		errs = append(errs, fmt.Errorf("value_field must not be negative, got %d", p.ValueField))
	}
	if p.NameField == p.ValueField {
		errs = append(errs, fmt.Errorf("name_field and value_field must differ, both are %d", p.NameField))
	}

	// Run rules
	switch p.Mode {
	case ModeSentinel:
		if p.Sentinel == "" {
			errs = append(errs, fmt.Errorf("mode %q: sentinel is required", p.Mode))
		}
	case ModeRepeat:
		if _, err := strconv.ParseInt(p.Sentinel, 10, 64); err != nil {
			errs = append(errs, fmt.Errorf("mode %q: sentinel must be an integer, got %q", p.Mode, p.Sentinel))
		}
	case "":
		errs = append(errs, fmt.Errorf("mode is required"))
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q (want %s or %s)", p.Mode, ModeSentinel, ModeRepeat))
	}
	if strings.ContainsFunc(p.Sentinel, unicode.IsSpace) {
		errs = append(errs, fmt.Errorf("sentinel %q must not contain whitespace", p.Sentinel))
	}

	// Expected keys
	if p.Count < 1 {
		errs = append(errs, fmt.Errorf("count must be at least 1, got %d", p.Count))
	}
	if p.First < 0 {
		errs = append(errs, fmt.Errorf("first must not be negative, got %d", p.First))
	}
	if !strings.Contains(p.Template, Placeholder) {
		errs = append(errs, fmt.Errorf("template %q must contain %s", p.Template, Placeholder))
	}
	if strings.ContainsFunc(p.Template, unicode.IsSpace) {
		errs = append(errs, fmt.Errorf("template %q must not contain whitespace", p.Template))
	}

	return errs
}

