package autocomplete

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Styles controls the look of the field and dropdown.
type Styles struct {
	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Field       lipgloss.Style
	Row         lipgloss.Style
	Highlight   lipgloss.Style
	Message     lipgloss.Style
}

// DefaultStyles returns styles that work without a theme.
func DefaultStyles() Styles {
	return Styles{
		Input:       lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Faint(true),
		Field:       lipgloss.NewStyle().Underline(true),
		Row:         lipgloss.NewStyle(),
		Highlight:   lipgloss.NewStyle().Reverse(true),
		Message:     lipgloss.NewStyle().Faint(true).Italic(true),
	}
}

// View renders the input line followed by the dropdown when open.
func (m Model[T]) View() string {
	lines := make([]string, 0, m.Height())
	lines = append(lines, m.styles.Field.Render(fit(m.input.View(), m.width)))

	if !m.open {
		return lines[0]
	}

	switch {
	case m.failed:
		lines = append(lines, m.styles.Message.Render(fit(" "+SearchFailedText, m.width)))
	case len(m.items) == 0:
		lines = append(lines, m.styles.Message.Render(fit(" "+NoResultsText, m.width)))
	default:
		end := min(len(m.items), m.offset+m.maxVisible)
		for i := m.offset; i < end; i++ {
			text := fit(" "+m.label(m.items[i]), m.width)
			if i == m.highlight {
				lines = append(lines, m.styles.Highlight.Render(text))
			} else {
				lines = append(lines, m.styles.Row.Render(text))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
