// Package report renders validation reports for people and for tooling.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/modoterra/seqcheck/pkg/validate"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Write renders rep to w in the given format.
func Write(w io.Writer, rep *validate.Report, format Format) error {
	switch format {
	case FormatJSON:
		return JSON(w, rep)
	case FormatText, "":
		return Text(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// JSON writes rep as indented JSON.
func JSON(w io.Writer, rep *validate.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		OK bool `json:"ok"`
		*validate.Report
	}{rep.OK(), rep})
}

// Text writes one line per failing key followed by a summary. Colors are
// only emitted when w is a terminal.
func Text(w io.Writer, rep *validate.Report) error {
	r := lipgloss.NewRenderer(w)
	failStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	passStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	dimStyle := r.NewStyle().Foreground(lipgloss.Color("245"))

	for _, res := range rep.Failures {
		if _, err := fmt.Fprintf(w, "%s %s\n", failStyle.Render("FAIL"), res); err != nil {
			return err
		}
	}

	badge := passStyle.Render("PASS")
	if !rep.OK() {
		badge = failStyle.Render("FAIL")
	}
	summary := fmt.Sprintf("%d/%d keys passed", rep.Passed, rep.Expected)
	if rep.Checked < rep.Expected {
		summary += " " + dimStyle.Render(fmt.Sprintf("(stopped after %d)", rep.Checked))
	}
	_, err := fmt.Fprintf(w, "%s %s: %s\n", badge, rep.Profile, summary)
	return err
}
