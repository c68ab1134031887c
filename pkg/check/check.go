// Package check decides whether the values observed for one variable form a
// consecutive run ending at the expected value.
package check

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/modoterra/seqcheck/pkg/core"
	"github.com/modoterra/seqcheck/pkg/profile"
)

// Verdict is the outcome of checking one name.
type Verdict string

const (
	Pass     Verdict = "pass"
	Missing  Verdict = "missing"  // name never appeared
	Gap      Verdict = "gap"      // jump, decrease or disallowed repeat
	Terminal Verdict = "terminal" // run ended at the wrong value
	NoData   Verdict = "no-data"  // only sentinel values were seen; a validation failure, not malformed input
)

// ErrNotInteger is wrapped by ValueError when a value that has to be
// compared numerically does not parse.
var ErrNotInteger = errors.New("not an integer")

// ValueError reports a non-numeric value for a name.
type ValueError struct {
	Name  string
	Index int
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: value #%d %q: %v", e.Name, e.Index+1, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

// Result is the outcome for one name.
type Result struct {
	Name     string  `json:"name"`
	Verdict  Verdict `json:"verdict"`
	Observed int     `json:"observed"`        // number of values seen
	Last     string  `json:"last,omitempty"`  // last value accepted into the run
	Got      string  `json:"got,omitempty"`   // value that broke the run
	Want     string  `json:"want,omitempty"`  // value that was expected instead
	Index    *int    `json:"index,omitempty"` // 0-based position of Got, set for gaps
}

// OK reports whether the name passed.
func (r Result) OK() bool {
	return r.Verdict == Pass
}

func (r Result) String() string {
	switch r.Verdict {
	case Pass:
		return fmt.Sprintf("%s: ok, ended at %s", r.Name, r.Last)
	case Missing:
		return fmt.Sprintf("%s: missing", r.Name)
	case Gap:
		return fmt.Sprintf("%s: value #%d is %s after %s, want %s", r.Name, *r.Index+1, r.Got, r.Last, r.Want)
	case Terminal:
		return fmt.Sprintf("%s: ended at %s, want %s", r.Name, r.Last, r.Want)
	case NoData:
		return fmt.Sprintf("%s: no value after %d sentinel(s)", r.Name, r.Observed)
	default:
		return fmt.Sprintf("%s: %s", r.Name, r.Verdict)
	}
}

// Checker applies one profile's run rules.
type Checker struct {
	mode     profile.Mode
	sentinel string
	terminal int64
}

// New creates a Checker from a validated profile.
func New(p *profile.Profile) *Checker {
	return &Checker{
		mode:     p.Mode,
		sentinel: p.Sentinel,
		terminal: p.Terminal,
	}
}

// Check evaluates the values recorded for name. Validation failures are
// reported through the Result; a non-numeric value is returned as a
// *ValueError.
func (c *Checker) Check(name string, seqs *core.Sequences) (Result, error) {
	values, ok := seqs.Values(name)
	res := Result{Name: name, Observed: len(values)}
	if !ok {
		res.Verdict = Missing
		return res, nil
	}

	var (
		lastIdx int
		broken  bool
		err     error
	)
	switch c.mode {
	case profile.ModeRepeat:
		lastIdx, broken, err = c.scanRepeat(&res, values)
	default:
		lastIdx, broken, err = c.scanSentinel(&res, values)
	}
	if err != nil || broken {
		return res, err
	}

	if c.mode == profile.ModeSentinel && lastIdx < 0 {
		res.Verdict = NoData
		res.Last = ""
		return res, nil
	}

	last, err := c.parse(name, lastIdx, res.Last)
	if err != nil {
		return res, err
	}
	if last != c.terminal {
		res.Verdict = Terminal
		res.Want = strconv.FormatInt(c.terminal, 10)
		return res, nil
	}
	res.Verdict = Pass
	return res, nil
}

// scanSentinel skips leading sentinels, adopts the first other value
// unparsed and then requires each value to be exactly one more than the
// previous one. It returns the index of the last accepted value, or -1 if
// every value was a sentinel.
func (c *Checker) scanSentinel(res *Result, values []string) (int, bool, error) {
	prev, prevIdx := c.sentinel, -1
	for i, v := range values {
		if prevIdx < 0 {
			if v != c.sentinel {
				prev, prevIdx = v, i
			}
			continue
		}
		p, err := c.parse(res.Name, prevIdx, prev)
		if err != nil {
			return prevIdx, false, err
		}
		cur, err := c.parse(res.Name, i, v)
		if err != nil {
			return prevIdx, false, err
		}
		if cur != p+1 {
			c.gap(res, prev, v, p+1, i)
			return prevIdx, true, nil
		}
		prev, prevIdx = v, i
	}
	res.Last = prev
	return prevIdx, false, nil
}

// scanRepeat starts from the numeric sentinel, ignores repeats of the
// current value and requires every change to be an increment of one. The
// sentinel is compared textually first, so "0" lines before the run starts
// are skipped without parsing.
func (c *Checker) scanRepeat(res *Result, values []string) (int, bool, error) {
	prev, prevIdx := c.sentinel, -1
	for i, v := range values {
		if v == c.sentinel && prev == c.sentinel {
			continue
		}
		p, err := c.parse(res.Name, prevIdx, prev)
		if err != nil {
			return prevIdx, false, err
		}
		cur, err := c.parse(res.Name, i, v)
		if err != nil {
			return prevIdx, false, err
		}
		if cur == p {
			continue
		}
		if cur != p+1 {
			c.gap(res, prev, v, p+1, i)
			return prevIdx, true, nil
		}
		prev, prevIdx = v, i
	}
	res.Last = prev
	return prevIdx, false, nil
}

func (c *Checker) gap(res *Result, prev, got string, want int64, index int) {
	res.Verdict = Gap
	res.Last = prev
	res.Got = got
	res.Want = strconv.FormatInt(want, 10)
	res.Index = &index
}

func (c *Checker) parse(name string, index int, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &ValueError{Name: name, Index: index, Value: value, Err: ErrNotInteger}
	}
	return n, nil
}
