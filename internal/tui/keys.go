package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/calendar"
)

// cursorSteps maps movement keys to day offsets.
var cursorSteps = map[string]int{
	"left": -1, "h": -1,
	"right": 1, "l": 1,
	"up": -7, "k": -7,
	"down": 7, "j": 7,
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logKeyPress(m.logger, msg, m.focus)

	// Global keys
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.detail != nil:
		return m.handleModalKeys(msg)
	case m.drag.active:
		return m.handleDragKeys(msg)
	case m.focus == focusSearch:
		return m.handleSearchKeys(msg)
	default:
		return m.handleCalendarKeys(msg)
	}
}

// handleModalKeys handles keys while the booking modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "q", "enter":
		m.closeDetail()
	case "c":
		return m.copyDetail()
	}
	return m, nil
}

// handleDragKeys handles keys during a drag. Mouse drags only listen for esc.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		m.cancelDrag()
		return m, nil
	}
	if m.drag.mouse {
		return m, nil
	}
	if key == "enter" {
		return m.drop()
	}
	if step, ok := cursorSteps[key]; ok {
		m.moveDragTarget(step)
	}
	return m, nil
}

// handleSearchKeys forwards keys to the station field.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m, m.setFocus(focusCalendar)
	case "esc":
		if !m.search.IsOpen() {
			return m, m.setFocus(focusCalendar)
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// handleCalendarKeys handles keys while the month grid has focus.
func (m Model) handleCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if step, ok := cursorSteps[key]; ok {
		m.moveCursor(step)
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "tab", "/":
		return m, m.setFocus(focusSearch)
	case "[", "<":
		m.showMonth(m.month.Prev())
	case "]", ">":
		m.showMonth(m.month.Next())
	case "t":
		m.goToday()
	case "s":
		return m.startKeyDrag(booking.EndpointStart)
	case "e":
		return m.startKeyDrag(booking.EndpointEnd)
	case "enter":
		station, ok := m.selectedStation()
		if !ok {
			return m, nil
		}
		if bookings := calendar.BookingsOn(calendar.DayCell(m.cursor), station.Bookings); len(bookings) > 0 {
			m.openDetail(station.ID, bookings[0])
		}
	case "u":
		return m.save()
	}
	return m, nil
}
