// Package view provides view composition helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Popup is content drawn over the base view at a fixed screen position.
type Popup struct {
	Content string
	X       int
	Y       int
}

// ViewState contains pre-rendered sections, popups and the modal, if any.
type ViewState struct {
	Width   int
	Height  int
	Header  string
	Search  string
	Grid    string
	Footer  string
	Popups  []Popup
	Modal   string
	ModalBg lipgloss.Color
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		return "Loading..."
	}

	base := lipgloss.JoinVertical(lipgloss.Left, state.Header, state.Search, state.Grid)
	base = PadLinesWithBackground(base, state.Width, state.Height-1, "") + "\n" + state.Footer
	for _, p := range state.Popups {
		base = SpliceAt(base, p.Content, p.X, p.Y)
	}

	if state.Modal != "" {
		return RenderModalOverlay(base, state.Modal, state.Width, state.Height, state.ModalBg)
	}
	return base
}

// SpliceAt draws content over base with its top-left corner at x, y.
// Lines falling outside base are dropped.
func SpliceAt(base, content string, x, y int) string {
	lines := strings.Split(base, "\n")
	for i, line := range strings.Split(content, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		target := lines[row]
		w := ansi.StringWidth(line)
		if gap := x - ansi.StringWidth(target); gap > 0 {
			target += strings.Repeat(" ", gap)
		}
		lines[row] = ansi.Cut(target, 0, x) + line + ansi.ResetStyle + ansi.Cut(target, x+w, ansi.StringWidth(target))
	}
	return strings.Join(lines, "\n")
}
