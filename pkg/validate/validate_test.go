package validate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/modoterra/seqcheck/pkg/check"
	"github.com/modoterra/seqcheck/pkg/core"
	"github.com/modoterra/seqcheck/pkg/profile/presets"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// counterSeqs fills poz:v1..poz:v5 with 0..5.
func counterSeqs() *core.Sequences {
	s := core.NewSequences()
	for v := 0; v <= 5; v++ {
		for i := 1; i <= 5; i++ {
			s.Append(fmt.Sprintf("poz:v%d", i), fmt.Sprint(v))
		}
	}
	return s
}

func TestRunAllPass(t *testing.T) {
	rep, err := New(presets.Counter(), testLogger()).Run(counterSeqs())
	if err != nil {
		t.Fatal(err)
	}
	if !rep.OK() {
		t.Fatalf("expected pass, failures: %v", rep.Failures)
	}
	if rep.Expected != 5 || rep.Checked != 5 || rep.Passed != 5 {
		t.Errorf("counts: %+v", rep)
	}
	if _, ok := rep.FirstFailure(); ok {
		t.Error("unexpected failure")
	}
}

func TestRunMissingKey(t *testing.T) {
	p := presets.Counter()
	p.Count = 6 // poz:v6 never appears
	rep, err := New(p, testLogger()).Run(counterSeqs())
	if err != nil {
		t.Fatal(err)
	}
	if rep.OK() {
		t.Fatal("expected failure")
	}
	first, _ := rep.FirstFailure()
	if first.Name != "poz:v6" || first.Verdict != check.Missing {
		t.Errorf("first failure: %+v", first)
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	s := core.NewSequences()
	for i := 1; i <= 5; i++ {
		s.Append(fmt.Sprintf("poz:v%d", i), "0")
		if i != 2 && i != 4 {
			for v := 1; v <= 5; v++ {
				s.Append(fmt.Sprintf("poz:v%d", i), fmt.Sprint(v))
			}
		}
	}

	rep, err := New(presets.Counter(), testLogger()).Run(s)
	if err != nil {
		t.Fatal(err)
	}
	if rep.OK() {
		t.Fatal("expected failure")
	}
	if rep.Checked != 2 || len(rep.Failures) != 1 || rep.Failures[0].Name != "poz:v2" {
		t.Errorf("fail-fast report: %+v", rep)
	}

	p := presets.Counter()
	p.CheckAll = true
	all, err := New(p, testLogger()).Run(s)
	if err != nil {
		t.Fatal(err)
	}
	if all.OK() != rep.OK() {
		t.Error("verdict differs between fail-fast and check-all")
	}
	if all.Checked != 5 || all.Passed != 3 || len(all.Failures) != 2 {
		t.Errorf("check-all report: %+v", all)
	}
	if all.Failures[0].Name != "poz:v2" || all.Failures[1].Name != "poz:v4" {
		t.Errorf("failures out of order: %v", all.Failures)
	}
}

func TestRunNonIntegerAborts(t *testing.T) {
	s := counterSeqs()
	s.Append("poz:v1", "garbage")
	_, err := New(presets.Counter(), testLogger()).Run(s)
	if !errors.Is(err, check.ErrNotInteger) {
		t.Errorf("expected ErrNotInteger, got %v", err)
	}
}

func TestRampPreset(t *testing.T) {
	s := core.NewSequences()
	for i := 1; i <= 5000; i++ {
		key := fmt.Sprintf("poz:v%d.A", i)
		s.Append(key, "UDF")
		for v := 1; v <= 10; v++ {
			s.Append(key, fmt.Sprint(v))
		}
	}
	rep, err := New(presets.Ramp(), testLogger()).Run(s)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.OK() || rep.Passed != 5000 {
		t.Errorf("report: passed %d, failures %v", rep.Passed, rep.Failures)
	}
}
