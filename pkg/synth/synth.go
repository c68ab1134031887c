// Package synth writes synthetic monitor logs in the column layout a profile
// expects. Keys are interleaved one update per key per step, the way a
// monitor subscribed to every record prints them.
package synth

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/modoterra/seqcheck/pkg/profile"
)

// Suffix is the status field written at the end of every line.
const Suffix = "NO_ALARM"

// Options shape the generated run.
type Options struct {
	From     int64     // first value of the run
	To       int64     // last value of the run
	Leading  int       // sentinel lines per key before the run
	Repeat   int       // times each value is written
	DropLast string    // key whose final line is omitted
	Start    time.Time // timestamp of the first line
}

// DefaultOptions returns options that produce a passing log for p.
func DefaultOptions(p *profile.Profile) Options {
	opts := Options{
		To:     p.Terminal,
		Repeat: 1,
		Start:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	switch p.Mode {
	case profile.ModeRepeat:
		if n, err := strconv.ParseInt(p.Sentinel, 10, 64); err == nil {
			opts.From = n
		}
	default:
		opts.From = 1
		opts.Leading = 1
	}
	return opts
}

// Write writes the log for p to w.
func Write(w io.Writer, p *profile.Profile, opts Options) error {
	if opts.Repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", opts.Repeat)
	}
	if opts.Leading < 0 {
		return fmt.Errorf("leading must not be negative, got %d", opts.Leading)
	}
	keys := p.Keys()
	if opts.DropLast != "" && !slices.Contains(keys, opts.DropLast) {
		return fmt.Errorf("drop-last: %q is not a key of profile %s", opts.DropLast, p.Name)
	}

	var values []string
	for i := 0; i < opts.Leading; i++ {
		values = append(values, p.Sentinel)
	}
	for v := opts.From; v <= opts.To; v++ {
		for i := 0; i < opts.Repeat; i++ {
			values = append(values, strconv.FormatInt(v, 10))
		}
	}

	bw := bufio.NewWriter(w)
	ts := opts.Start
	fields := make([]string, p.MinFields())
	for step, value := range values {
		for _, key := range keys {
			if key == opts.DropLast && step == len(values)-1 {
				continue
			}
			fill(fields, ts)
			fields[p.NameField] = key
			fields[p.ValueField] = value
			if err := writeLine(bw, fields); err != nil {
				return err
			}
			ts = ts.Add(time.Microsecond)
		}
		ts = ts.Add(100 * time.Millisecond)
	}
	return bw.Flush()
}

// fill sets the columns that carry neither name nor value: a date and a
// time, as a monitor prints them, then placeholders.
func fill(fields []string, ts time.Time) {
	for i := range fields {
		switch i {
		case 1:
			fields[i] = ts.Format("2006-01-02")
		case 2:
			fields[i] = ts.Format("15:04:05.000000")
		default:
			fields[i] = "-"
		}
	}
}

func writeLine(w *bufio.Writer, fields []string) error {
	for _, f := range fields {
		if _, err := w.WriteString(f); err != nil {
			return err
		}
		if err := w.WriteByte(' '); err != nil {
			return err
		}
	}
	_, err := w.WriteString(Suffix + "\n")
	return err
}
