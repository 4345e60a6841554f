package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel holds the strings needed to render the footer line.
type FooterModel struct {
	Width  int
	Status string
	IsErr  bool
	Help   []string
}

// FooterStyles groups footer styles.
type FooterStyles struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// RenderFooter renders the status message, or the key help when there is
// no status, on a single line.
func RenderFooter(m FooterModel, styles FooterStyles) string {
	if m.Status != "" {
		style := styles.Status
		if m.IsErr {
			style = styles.Error
		}
		return style.Render(ansi.Truncate(" "+m.Status, m.Width, "…"))
	}
	return styles.Help.Render(ansi.Truncate(" "+strings.Join(m.Help, "  "), m.Width, "…"))
}
