package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/calendar"
	"github.com/javiermolinar/stationboard/internal/tui/view"
)

// handleMouseMsg handles pointer input: modal controls, the search field,
// header buttons, and presses, motion and releases over the grid.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	logMouse(m.logger, msg)

	if m.detail != nil {
		return m.handleModalMouse(msg)
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.drag.active && m.drag.mouse {
			if day := m.dayAt(msg.X, msg.Y); !day.Equal(m.drag.target) {
				m.drag.target = day
				logDrag(m.logger, "drag over", m.drag.handle, day)
			}
		}
		return m, nil
	case tea.MouseActionRelease:
		if m.drag.active && m.drag.mouse {
			m.drag.target = m.dayAt(msg.X, msg.Y)
			return m.drop()
		}
		return m, nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
	default:
		return m, nil
	}

	inSearch := m.search.Contains(msg.X, msg.Y)
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if inSearch {
		if m.focus != focusSearch {
			return m, tea.Batch(cmd, m.setFocus(focusSearch))
		}
		return m, cmd
	}

	if msg.Y == headerRow {
		if b, ok := m.renderHeader().ButtonAt(msg.X); ok {
			updated, actionCmd := m.runAction(b.Action)
			return updated, tea.Batch(cmd, actionCmd)
		}
		return m, cmd
	}

	return m.pressGrid(msg.X, msg.Y, cmd)
}

// pressGrid resolves a left press over the month grid.
func (m Model) pressGrid(x, y int, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	l := m.layout()
	idx, col, line, ok := l.CellAt(x, y)
	if !ok {
		return m, cmd
	}
	grid := m.month.Grid()
	if idx >= len(grid) {
		return m, cmd
	}
	day, ok := grid[idx].Date()
	if !ok {
		return m, cmd
	}

	if m.focus != focusCalendar {
		m.setFocus(focusCalendar)
	}
	m.cursor = day

	station, selected := m.selectedStation()
	if !selected {
		return m, cmd
	}
	bookings := calendar.BookingsOn(grid[idx], station.Bookings)
	part, i := l.Geometry.HitBooking(col, line, day, bookings)
	m.logger.Debug().Str("part", part.String()).Str("day", day.Format(time.DateOnly)).Msg("grid press")

	switch part {
	case view.PartStartHandle:
		m.startDrag(booking.Handle{StationID: station.ID, BookingID: bookings[i].ID, Endpoint: booking.EndpointStart}, day, true)
	case view.PartEndHandle:
		m.startDrag(booking.Handle{StationID: station.ID, BookingID: bookings[i].ID, Endpoint: booking.EndpointEnd}, day, true)
	case view.PartBody:
		m.openDetail(station.ID, bookings[i])
	}
	return m, cmd
}

// dayAt returns the day under a screen cell, or the zero time when the
// point is not over a day cell.
func (m Model) dayAt(x, y int) time.Time {
	idx, _, _, ok := m.layout().CellAt(x, y)
	if !ok {
		return time.Time{}
	}
	grid := m.month.Grid()
	if idx >= len(grid) {
		return time.Time{}
	}
	day, _ := grid[idx].Date()
	return day
}

// handleModalMouse handles clicks on the modal's close and footer controls.
func (m Model) handleModalMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	modal := m.renderModal()
	if modal == "" {
		m.closeDetail()
		return m, nil
	}
	left, top, _, _ := view.ModalPlacement(modal, m.width, m.height)
	hit := func(label string) bool {
		x, y, ok := view.LocateControl(modal, label)
		if !ok || msg.Y != top+y {
			return false
		}
		return msg.X >= left+x && msg.X < left+x+ansi.StringWidth(label)
	}

	switch {
	case hit(view.CloseGlyph), hit(view.BackButton):
		m.closeDetail()
	case hit(view.CopyButton):
		return m.copyDetail()
	}
	return m, nil
}
