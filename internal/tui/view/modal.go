// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Modal controls that can be clicked.
const (
	CloseGlyph = "×"
	BackButton = "[ Back ]"
	CopyButton = "[ Copy ]"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalCloseStyle  lipgloss.Style
	ModalFooterStyle lipgloss.Style
	ModalButtonStyle lipgloss.Style
	ModalBodyStyle   lipgloss.Style
}

// RenderModalFrame renders a modal with the title and close control on the
// first line, then the body and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	innerW := max(lipgloss.Width(body), lipgloss.Width(footer), ansi.StringWidth(title)+4)
	gap := innerW - ansi.StringWidth(title) - ansi.StringWidth(CloseGlyph)

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(title))
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(styles.ModalCloseStyle.Render(CloseGlyph))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalFooterStyle.Render(footer))
	}

	return styles.ModalStyle.Render(b.String())
}

// RenderModalButtons renders a row of modal buttons.
func RenderModalButtons(styles ModalStyles, labels ...string) string {
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, styles.ModalButtonStyle.Render(label))
	}
	return strings.Join(parts, styles.ModalBodyStyle.Render(" "))
}

// LocateControl finds label in rendered content and returns the column and
// line of its first cell.
func LocateControl(content, label string) (x, y int, ok bool) {
	for i, line := range strings.Split(content, "\n") {
		plain := ansi.Strip(line)
		if idx := strings.Index(plain, label); idx >= 0 {
			return ansi.StringWidth(plain[:idx]), i, true
		}
	}
	return 0, 0, false
}

// ModalPlacement returns where RenderModalOverlay puts content on a
// width x height screen.
func ModalPlacement(content string, width, height int) (left, top, w, h int) {
	lines := strings.Split(content, "\n")
	h = len(lines)
	for _, line := range lines {
		w = max(w, lipgloss.Width(line))
	}
	w = min(w, width)
	return max(0, (width-w)/2), max(0, (height-h)/2), w, h
}
