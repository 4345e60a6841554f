package tui

import (
	"fmt"

	"github.com/javiermolinar/stationboard/internal/calendar"
	"github.com/javiermolinar/stationboard/internal/dateutil"
	"github.com/javiermolinar/stationboard/internal/tui/view"
)

// Screen layout, top to bottom: header, search field, station line,
// weekday names, rule, then the day cells. The footer takes the last line.
const (
	headerRow   = 0
	searchRow   = 1
	stationRow  = 2
	gridTop     = 5
	gridLeft    = 0
	footerLines = 1

	searchLabel = " Station: "
	searchX     = 10 // width of searchLabel
	searchWidth = 32

	maxCellWidth  = 28
	maxCellHeight = 6
)

// View renders the TUI.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	l := m.layout()
	state := view.ViewState{
		Width:  m.width,
		Height: m.height,
		Header: m.renderHeader().View,
		Search: m.renderSearchRows(),
		Grid:   view.RenderGrid(m.gridCells(l), l.Geometry, m.styles.Grid()),
		Footer: m.renderFooter(),
		Popups: []view.Popup{{Content: m.search.View(), X: searchX, Y: searchRow}},
	}
	if modal := m.renderModal(); modal != "" {
		state.Modal = modal
		state.ModalBg = m.styles.ModalBgColor
	}
	return state
}

// layout sizes the cells to fill the terminal.
func (m Model) layout() view.GridLayout {
	weeks := len(m.month.Grid()) / 7
	w := (m.width - gridLeft - 6) / 7
	h := (m.height - gridTop - footerLines - (weeks - 1)) / weeks
	g := view.CellGeometry{
		Width:  min(w, maxCellWidth),
		Height: min(h, maxCellHeight),
	}.Normalize()
	return view.GridLayout{Geometry: g, Left: gridLeft, Top: gridTop, Weeks: weeks}
}

func (m Model) renderHeader() view.Header {
	return view.RenderHeader(view.HeaderModel{
		Month: m.month.Label(),
		Dirty: len(m.dirty),
	}, m.styles.Header())
}

func (m Model) renderSearchRows() string {
	label := m.styles.SearchLabelStyle
	if m.focus == focusSearch {
		label = m.styles.SearchLabelFocusedStyle
	}

	var station string
	switch s, ok := m.selectedStation(); {
	case ok:
		station = m.styles.SelectedStationStyle.Render(fmt.Sprintf(" Selected station: %s (%d %s)", s.Name, len(s.Bookings), plural(len(s.Bookings), "booking")))
	case m.loading:
		station = m.styles.HelpStyle.Render(" Loading stations...")
	case m.loadErr != nil:
		station = m.styles.ErrorStyle.Render(" Stations unavailable")
	default:
		station = m.styles.HelpStyle.Render(" No station selected")
	}
	return label.Render(searchLabel) + "\n" + station
}

// gridCells builds the cell models for the displayed month.
func (m Model) gridCells(l view.GridLayout) []view.DayCellModel {
	station, selected := m.selectedStation()
	today := m.nowFunc()
	grid := m.month.Grid()

	cells := make([]view.DayCellModel, len(grid))
	for i, c := range grid {
		cell := view.DayCellModel{Geometry: l.Geometry}
		day, ok := c.Date()
		if !ok {
			cell.Padding = true
			cells[i] = cell
			continue
		}
		cell.Day = day
		cell.Today = dateutil.SameDay(day, today)
		cell.Cursor = m.focus == focusCalendar && dateutil.SameDay(day, m.cursor)
		if selected {
			cell.Bookings = calendar.BookingsOn(c, station.Bookings)
		}
		if m.drag.active {
			cell.Dragging = m.drag.handle
			if !m.drag.target.IsZero() && c.Matches(m.drag.target) {
				cell.Hover = m.drag.handle.Endpoint
			}
		}
		cells[i] = cell
	}
	return cells
}

func (m Model) renderFooter() string {
	return view.RenderFooter(view.FooterModel{
		Width:  m.width,
		Status: m.statusMsg,
		IsErr:  m.statusErr,
		Help:   m.helpKeys(),
	}, m.styles.Footer())
}

func (m Model) helpKeys() []string {
	switch {
	case m.detail != nil:
		return []string{"c copy", "esc back"}
	case m.drag.active && m.drag.mouse:
		return []string{"release on a day to drop", "esc cancel"}
	case m.drag.active:
		return []string{"←↓↑→ target", "enter drop", "esc cancel"}
	case m.focus == focusSearch:
		return []string{"type to search", "↑/↓ choose", "enter select", "tab calendar", "ctrl+c quit"}
	}
	return []string{"←↓↑→ move", "[/] month", "t today", "enter details", "s/e drag", "u update", "/ search", "q quit"}
}

// renderModal renders the booking modal, or "" when none is open.
func (m Model) renderModal() string {
	b, s, ok := m.detailBooking()
	if !ok {
		return ""
	}
	styles := m.styles.Modal()
	body := view.RenderBookingDetailBody(view.NewBookingDetailModel(b, s.Name), m.styles.BookingDetail())
	return view.RenderModalFrame(view.DetailTitle, body, view.BookingDetailFooter(styles), styles)
}
