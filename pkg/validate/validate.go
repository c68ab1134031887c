// Package validate checks every expected key of a profile against ingested
// value sequences and aggregates the per-key results.
package validate

import (
	"fmt"
	"log/slog"

	"github.com/modoterra/seqcheck/pkg/check"
	"github.com/modoterra/seqcheck/pkg/core"
	"github.com/modoterra/seqcheck/pkg/profile"
)

// Report aggregates the results of one validation run.
type Report struct {
	Profile  string         `json:"profile"`
	Expected int            `json:"expected"`
	Checked  int            `json:"checked"`
	Passed   int            `json:"passed"`
	Failures []check.Result `json:"failures"`
}

// Add records the result for one key.
func (r *Report) Add(res check.Result) {
	r.Checked++
	if res.OK() {
		r.Passed++
		return
	}
	r.Failures = append(r.Failures, res)
}

// OK reports whether every expected key was checked and passed.
func (r *Report) OK() bool {
	return len(r.Failures) == 0 && r.Checked == r.Expected
}

// FirstFailure returns the failing key with the lowest index.
func (r *Report) FirstFailure() (check.Result, bool) {
	if len(r.Failures) == 0 {
		return check.Result{}, false
	}
	return r.Failures[0], true
}

// Validator runs a profile's checks.
type Validator struct {
	profile *profile.Profile
	checker *check.Checker
	logger  *slog.Logger
}

// New creates a Validator. p must already have passed profile.Validate.
func New(p *profile.Profile, logger *slog.Logger) *Validator {
	return &Validator{
		profile: p,
		checker: check.New(p),
		logger:  logger,
	}
}

// Run checks the expected keys in ascending index order. Unless the profile
// sets CheckAll, it stops at the first failing key; the overall verdict is
// the same either way. A non-numeric value aborts the run with an error.
func (v *Validator) Run(seqs *core.Sequences) (*Report, error) {
	rep := &Report{
		Profile:  v.profile.Name,
		Expected: v.profile.Count,
		Failures: []check.Result{},
	}

	for i := v.profile.First; i < v.profile.First+v.profile.Count; i++ {
		key := v.profile.Key(i)
		res, err := v.checker.Check(key, seqs)
		if err != nil {
			return rep, fmt.Errorf("check %s: %w", key, err)
		}
		rep.Add(res)

		if res.OK() {
			v.logger.Debug("key passed", "key", key, "last", res.Last, "observed", res.Observed)
			continue
		}
		v.logger.Debug("key failed", "key", key, "verdict", res.Verdict, "detail", res.String())
		if !v.profile.CheckAll {
			break
		}
	}

	v.logger.Info("validation finished",
		"profile", rep.Profile,
		"expected", rep.Expected,
		"checked", rep.Checked,
		"passed", rep.Passed,
		"failed", len(rep.Failures),
		"observed_keys", seqs.Len(),
	)
	return rep, nil
}
