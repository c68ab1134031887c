// Package ingest turns monitor output into per-name value sequences.
package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/modoterra/seqcheck/pkg/core"
)

// ErrShortLine is wrapped by LineError when a line lacks the configured
// name or value column.
var ErrShortLine = errors.New("too few fields")

// LineError locates a malformed input line.
type LineError struct {
	Source string
	Line   int
	Have   int // fields after the suffix was dropped
	Need   int
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v: have %d, need %d", e.Source, e.Line, e.Err, e.Have, e.Need)
}

func (e *LineError) Unwrap() error { return e.Err }

// Layout names the columns holding the variable name and its value. Indices
// count from zero once the trailing suffix field is removed.
type Layout struct {
	NameField  int
	ValueField int
}

func (l Layout) need() int {
	return max(l.NameField, l.ValueField) + 1
}

// Ingester accumulates value sequences across one or more inputs.
type Ingester struct {
	layout Layout
	seqs   *core.Sequences
	lines  int
	logger *slog.Logger
}

// New creates an Ingester for the given column layout.
func New(layout Layout, logger *slog.Logger) *Ingester {
	return &Ingester{
		layout: layout,
		seqs:   core.NewSequences(),
		logger: logger,
	}
}

// Read consumes r to EOF. The first malformed line aborts the read with a
// *LineError; a read failure or an over-long line is returned with its
// source and line number.
func (in *Ingester) Read(ctx context.Context, source string, r io.Reader) error {
	lineNo := 0
	var stopErr error
	err := scanLines(r, func(raw string) error {
		if stopErr = ctx.Err(); stopErr != nil {
			return stopErr
		}
		lineNo++
		stopErr = in.add(core.ParseLogLine(source, lineNo, raw))
		return stopErr
	})
	if stopErr != nil {
		return stopErr
	}
	if err != nil {
		// The scanner failed on the line after the last one handed out.
		return fmt.Errorf("%s:%d: %w", source, lineNo+1, err)
	}
	in.logger.Debug("input consumed", "source", source, "lines", lineNo)
	return nil
}

// ReadAll reads each input in turn.
func (in *Ingester) ReadAll(ctx context.Context, inputs []Input) error {
	for _, input := range inputs {
		if err := in.readInput(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

func (in *Ingester) readInput(ctx context.Context, input Input) error {
	rc, err := input.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return in.Read(ctx, input.Name, rc)
}

func (in *Ingester) add(line core.LogLine) error {
	name, ok := line.Field(in.layout.NameField)
	if !ok {
		return in.shortLine(line)
	}
	value, ok := line.Field(in.layout.ValueField)
	if !ok {
		return in.shortLine(line)
	}
	in.seqs.Append(name, value)
	in.lines++
	return nil
}

func (in *Ingester) shortLine(line core.LogLine) error {
	return &LineError{
		Source: line.Source,
		Line:   line.LineNo,
		Have:   len(line.Fields),
		Need:   in.layout.need(),
		Err:    ErrShortLine,
	}
}

// Sequences returns the values gathered so far.
func (in *Ingester) Sequences() *core.Sequences {
	return in.seqs
}

// Lines returns the number of lines ingested across all inputs.
func (in *Ingester) Lines() int {
	return in.lines
}

// scanLines reads lines from an io.Reader and calls fn for each, stopping at
// the first error fn returns.
func scanLines(r io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
