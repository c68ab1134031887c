package core

import (
	"reflect"
	"testing"
)

func TestFields(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"poz:v1 2024-01-01 12:00:00.000001 5 NO_ALARM", []string{"poz:v1", "2024-01-01", "12:00:00.000001", "5", "NO_ALARM"}},
		{"  poz:v1   3\t\tX  ", []string{"poz:v1", "3", "X"}},
		{"poz:v1 3 X\n", []string{"poz:v1", "3", "X"}},
		{"", []string{}},
		{"   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Fields(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripSuffix(t *testing.T) {
	got := StripSuffix([]string{"a", "b", "c"})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got %q", got)
	}
	if got := StripSuffix(nil); len(got) != 0 {
		t.Errorf("empty input: got %q", got)
	}
}

func TestParseLogLine(t *testing.T) {
	l := ParseLogLine("mon.log", 7, "poz:v2.A  2024-01-01 12:00:00.5 9 NO_ALARM")
	if l.Source != "mon.log" || l.LineNo != 7 {
		t.Errorf("position: got %s:%d", l.Source, l.LineNo)
	}
	if len(l.Fields) != 4 {
		t.Fatalf("fields: got %d, want 4 (%q)", len(l.Fields), l.Fields)
	}
	if v, ok := l.Field(3); !ok || v != "9" {
		t.Errorf("field 3: got %q, %v", v, ok)
	}
	if _, ok := l.Field(4); ok {
		t.Error("suffix field should not be addressable")
	}
	if _, ok := l.Field(-1); ok {
		t.Error("negative index should not be addressable")
	}
}

func TestSequencesPreserveOrder(t *testing.T) {
	s := NewSequences()
	s.Append("b", "1")
	s.Append("a", "UDF")
	s.Append("b", "2")
	s.Append("a", "1")

	if s.Len() != 2 {
		t.Fatalf("len: got %d", s.Len())
	}
	if names := s.Names(); !reflect.DeepEqual(names, []string{"b", "a"}) {
		t.Errorf("names: got %q", names)
	}
	if v, ok := s.Values("a"); !ok || !reflect.DeepEqual(v, []string{"UDF", "1"}) {
		t.Errorf("a: got %q, %v", v, ok)
	}
	if _, ok := s.Values("missing"); ok {
		t.Error("missing name reported present")
	}
}
