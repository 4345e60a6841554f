package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Action names a clickable header control.
type Action string

const (
	ActionPrevMonth Action = "prev"
	ActionNextMonth Action = "next"
	ActionToday     Action = "today"
	ActionUpdate    Action = "update"
)

// Button is a clickable span on a single rendered line.
type Button struct {
	Action Action
	X      int
	Width  int
}

// Contains reports whether column x lies on the button.
func (b Button) Contains(x int) bool {
	return x >= b.X && x < b.X+b.Width
}

// HeaderModel contains the fields needed to render the month header.
type HeaderModel struct {
	Month string
	Dirty int
}

// HeaderStyles groups header styles.
type HeaderStyles struct {
	Title  lipgloss.Style
	Button lipgloss.Style
	Dirty  lipgloss.Style
	Gap    lipgloss.Style
}

// Header is a rendered header line and the positions of its buttons,
// relative to the start of the line.
type Header struct {
	View    string
	Buttons []Button
}

// ButtonAt returns the button under column x.
func (h Header) ButtonAt(x int) (Button, bool) {
	for _, b := range h.Buttons {
		if b.Contains(x) {
			return b, true
		}
	}
	return Button{}, false
}

// RenderHeader lays out month navigation, the month label, and the
// Today and Update buttons on one line.
func RenderHeader(m HeaderModel, styles HeaderStyles) Header {
	var (
		b       strings.Builder
		x       int
		buttons []Button
	)
	add := func(s string, style lipgloss.Style, action Action) {
		if action != "" {
			buttons = append(buttons, Button{Action: action, X: x, Width: ansi.StringWidth(s)})
		}
		b.WriteString(style.Render(s))
		x += ansi.StringWidth(s)
	}

	update := "[ Update ]"
	updateStyle := styles.Button
	if m.Dirty > 0 {
		update = fmt.Sprintf("[ Update (%d) ]", m.Dirty)
		updateStyle = styles.Dirty
	}

	add(" ", styles.Gap, "")
	add("[ ‹ ]", styles.Button, ActionPrevMonth)
	add(" ", styles.Gap, "")
	add(fitCell(m.Month, 16), styles.Title, "")
	add(" ", styles.Gap, "")
	add("[ › ]", styles.Button, ActionNextMonth)
	add("  ", styles.Gap, "")
	add("[ Today ]", styles.Button, ActionToday)
	add("  ", styles.Gap, "")
	add(update, updateStyle, ActionUpdate)

	return Header{View: b.String(), Buttons: buttons}
}
