// Package tui provides the terminal booking dashboard.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/stationboard/internal/tui/autocomplete"
	"github.com/javiermolinar/stationboard/internal/tui/theme"
	"github.com/javiermolinar/stationboard/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Header
	TitleStyle       lipgloss.Style
	ButtonStyle      lipgloss.Style
	ButtonDirtyStyle lipgloss.Style

	// Search row
	SearchLabelStyle        lipgloss.Style
	SearchLabelFocusedStyle lipgloss.Style
	SelectedStationStyle    lipgloss.Style

	// Grid
	WeekdayStyle   lipgloss.Style
	SeparatorStyle lipgloss.Style
	DayStyle       lipgloss.Style
	TodayStyle     lipgloss.Style
	CursorStyle    lipgloss.Style
	HoverStart     lipgloss.Style
	HoverEnd       lipgloss.Style
	PaddingStyle   lipgloss.Style
	EmptyDayStyle  lipgloss.Style
	MoreStyle      lipgloss.Style
	StartRowStyle  lipgloss.Style
	EndRowStyle    lipgloss.Style
	DraggingStyle  lipgloss.Style

	// Footer
	HelpStyle   lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	// Modal
	ModalBgColor     lipgloss.Color
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalCloseStyle  lipgloss.Style
	ModalFooterStyle lipgloss.Style
	ModalBodyStyle   lipgloss.Style
	ModalLabelStyle  lipgloss.Style
	ModalNameStyle   lipgloss.Style
	ModalMutedStyle  lipgloss.Style
	ModalButtonStyle lipgloss.Style

	// Autocomplete
	InputStyle       lipgloss.Style
	PlaceholderStyle lipgloss.Style
	FieldStyle       lipgloss.Style
	SuggestionStyle  lipgloss.Style
	HighlightStyle   lipgloss.Style
	MessageStyle     lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.ButtonStyle = lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgHighlight)
	s.ButtonDirtyStyle = lipgloss.NewStyle().Bold(true).Foreground(p.TextOnAccent).Background(p.Warning)

	s.SearchLabelStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.SearchLabelFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.SelectedStationStyle = lipgloss.NewStyle().Foreground(p.Fg)

	s.WeekdayStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Fg)
	s.SeparatorStyle = lipgloss.NewStyle().Foreground(p.BgSelection)
	s.DayStyle = lipgloss.NewStyle().Foreground(p.Fg)
	s.TodayStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Today)
	s.CursorStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Fg).Background(p.BgSelection)
	s.HoverStart = lipgloss.NewStyle().Bold(true).Foreground(p.TextOnStart).Background(p.StartBg)
	s.HoverEnd = lipgloss.NewStyle().Bold(true).Foreground(p.TextOnEnd).Background(p.EndBg)
	s.PaddingStyle = lipgloss.NewStyle()
	s.EmptyDayStyle = lipgloss.NewStyle().Foreground(p.FgMuted).Italic(true)
	s.MoreStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.StartRowStyle = lipgloss.NewStyle().Foreground(p.Start)
	s.EndRowStyle = lipgloss.NewStyle().Foreground(p.End)
	s.DraggingStyle = lipgloss.NewStyle().Foreground(p.FgMuted).Strikethrough(true)

	s.HelpStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.StatusStyle = lipgloss.NewStyle().Foreground(p.Accent)
	s.ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)

	m := p.Modal
	s.ModalBgColor = m.Bg
	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.Border).
		BorderBackground(m.Bg).
		Background(m.Bg).
		Padding(0, 1)
	s.ModalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(m.Text).Background(m.Bg)
	s.ModalCloseStyle = lipgloss.NewStyle().Foreground(m.Muted).Background(m.Bg)
	s.ModalFooterStyle = lipgloss.NewStyle().Background(m.Bg)
	s.ModalBodyStyle = lipgloss.NewStyle().Foreground(m.Text).Background(m.Bg)
	s.ModalLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(m.Muted).Background(m.Bg)
	s.ModalNameStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Background(m.Bg)
	s.ModalMutedStyle = lipgloss.NewStyle().Foreground(m.Muted).Background(m.Bg)
	s.ModalButtonStyle = lipgloss.NewStyle().Foreground(m.Text).Background(m.Button)

	s.InputStyle = lipgloss.NewStyle().Foreground(p.Fg)
	s.PlaceholderStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.FieldStyle = lipgloss.NewStyle().Background(p.BgHighlight)
	s.SuggestionStyle = lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgHighlight)
	s.HighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(p.TextOnAccent).Background(p.Accent)
	s.MessageStyle = lipgloss.NewStyle().Italic(true).Foreground(p.FgMuted).Background(p.BgHighlight)

	return s
}

// Palette returns the colors the styles were built from.
func (s *Styles) Palette() *theme.Palette {
	return s.palette
}

// Grid returns the styles for the month grid.
func (s *Styles) Grid() view.GridStyles {
	return view.GridStyles{
		Weekday:   s.WeekdayStyle,
		Separator: s.SeparatorStyle,
		Cell: view.CellStyles{
			Day:        s.DayStyle,
			Today:      s.TodayStyle,
			Cursor:     s.CursorStyle,
			HoverStart: s.HoverStart,
			HoverEnd:   s.HoverEnd,
			Padding:    s.PaddingStyle,
			Empty:      s.EmptyDayStyle,
			More:       s.MoreStyle,
			StartRow:   s.StartRowStyle,
			EndRow:     s.EndRowStyle,
			Dragging:   s.DraggingStyle,
		},
	}
}

// Header returns the styles for the month header.
func (s *Styles) Header() view.HeaderStyles {
	return view.HeaderStyles{
		Title:  s.TitleStyle,
		Button: s.ButtonStyle,
		Dirty:  s.ButtonDirtyStyle,
	}
}

// Footer returns the styles for the footer line.
func (s *Styles) Footer() view.FooterStyles {
	return view.FooterStyles{
		Help:   s.HelpStyle,
		Status: s.StatusStyle,
		Error:  s.ErrorStyle,
	}
}

// Modal returns the modal frame styles.
func (s *Styles) Modal() view.ModalStyles {
	return view.ModalStyles{
		ModalStyle:       s.ModalStyle,
		ModalTitleStyle:  s.ModalTitleStyle,
		ModalCloseStyle:  s.ModalCloseStyle,
		ModalFooterStyle: s.ModalFooterStyle,
		ModalButtonStyle: s.ModalButtonStyle,
		ModalBodyStyle:   s.ModalBodyStyle,
	}
}

// BookingDetail returns the styles for the booking modal body.
func (s *Styles) BookingDetail() view.BookingDetailStyles {
	return view.BookingDetailStyles{
		BodyStyle:  s.ModalBodyStyle,
		LabelStyle: s.ModalLabelStyle,
		NameStyle:  s.ModalNameStyle,
		MutedStyle: s.ModalMutedStyle,
	}
}

// Autocomplete returns the styles for the station search field.
func (s *Styles) Autocomplete() autocomplete.Styles {
	return autocomplete.Styles{
		Input:       s.InputStyle,
		Placeholder: s.PlaceholderStyle,
		Field:       s.FieldStyle,
		Row:         s.SuggestionStyle,
		Highlight:   s.HighlightStyle,
		Message:     s.MessageStyle,
	}
}
