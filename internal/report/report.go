// Package report prints clone observations to the console.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/creational/internal/prototype"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	idStyle   = lipgloss.NewStyle().Faint(true)
)

// Line is one reported comparison.
type Line struct {
	Text string
	Got  bool
	Want bool
}

// Pass reports whether the comparison came out as expected.
func (l Line) Pass() bool { return l.Got == l.Want }

// Lines returns the comparisons for obs in reporting order.
func Lines(obs prototype.Observation) []Line {
	return []Line{
		{Text: "primitive value carried over to clone", Got: obs.PrimitiveEqual, Want: true},
		{Text: "clone shares component with source", Got: obs.ComponentShared, Want: false},
		{Text: "clone back-reference points at clone", Got: obs.BackRefToClone, Want: true},
		{Text: "clone back-reference points at source", Got: obs.BackRefToOriginal, Want: false},
	}
}

// Write prints the observation of clone against original to w.
func Write(w io.Writer, original, clone *prototype.Root) error {
	obs := prototype.Observe(original, clone)

	if _, err := fmt.Fprintf(w, "clone %s\n", idStyle.Render(clone.ID.String())); err != nil {
		return err
	}
	for _, l := range Lines(obs) {
		style := passStyle
		if !l.Pass() {
			style = failStyle
		}
		if _, err := fmt.Fprintf(w, "  %-40s %s\n", l.Text, style.Render(fmt.Sprintf("%t", l.Got))); err != nil {
			return err
		}
	}

	summary := passStyle.Render("ok")
	if !obs.OK() {
		summary = failStyle.Render("FAILED")
	}
	_, err := fmt.Fprintf(w, "  %-40s %s\n", "result", summary)
	return err
}

// WriteDistinct reports whether all clones are pairwise distinct instances.
func WriteDistinct(w io.Writer, clones []*prototype.Root) error {
	distinct := true
	seen := make(map[*prototype.Root]struct{}, len(clones))
	for _, c := range clones {
		if _, dup := seen[c]; dup {
			distinct = false
			break
		}
		seen[c] = struct{}{}
	}

	style := passStyle
	if !distinct {
		style = failStyle
	}
	_, err := fmt.Fprintf(w, "%-42s %s\n", fmt.Sprintf("%d clones pairwise distinct", len(clones)), style.Render(fmt.Sprintf("%t", distinct)))
	return err
}
