package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/calendar"
	"github.com/javiermolinar/stationboard/internal/dateutil"
	"github.com/javiermolinar/stationboard/internal/tui/commands"
	"github.com/javiermolinar/stationboard/internal/tui/view"
)

// showMonth displays month and pulls the cursor into it, keeping the day
// of month where possible.
func (m *Model) showMonth(month calendar.Month) {
	if !month.Equal(m.month) {
		m.logger.Debug().Str("month", month.First().Format("2006-01")).Msg("show month")
	}
	m.month = month
	if month.Contains(m.cursor) {
		return
	}
	last := month.First().AddDate(0, 1, -1).Day()
	m.cursor = month.First().AddDate(0, 0, min(m.cursor.Day(), last)-1)
}

// moveCursor shifts the cursor by days, following it into other months.
func (m *Model) moveCursor(days int) {
	m.cursor = m.cursor.AddDate(0, 0, days)
	if !m.month.Contains(m.cursor) {
		m.month = calendar.MonthOf(m.cursor)
	}
}

func (m *Model) goToday() {
	today := dateutil.TruncateToDay(m.nowFunc())
	m.month = calendar.MonthOf(today)
	m.cursor = today
}

// runAction executes a header button.
func (m Model) runAction(a view.Action) (tea.Model, tea.Cmd) {
	m.logger.Debug().Str("action", string(a)).Msg("header action")
	switch a {
	case view.ActionPrevMonth:
		m.showMonth(m.month.Prev())
	case view.ActionNextMonth:
		m.showMonth(m.month.Next())
	case view.ActionToday:
		m.goToday()
	case view.ActionUpdate:
		return m.save()
	}
	return m, nil
}

// startDrag begins moving one endpoint of a booking.
func (m *Model) startDrag(h booking.Handle, target time.Time, mouse bool) {
	m.drag = dragState{active: true, mouse: mouse, handle: h, target: target}
	logDrag(m.logger, "drag start", h, target)
}

// startKeyDrag picks the first booking under the cursor that has the
// requested handle on the cursor day.
func (m Model) startKeyDrag(ep booking.Endpoint) (tea.Model, tea.Cmd) {
	station, ok := m.selectedStation()
	if !ok {
		return m, m.setStatus("Select a station first", false)
	}
	for _, b := range calendar.BookingsOn(calendar.DayCell(m.cursor), station.Bookings) {
		if (ep == booking.EndpointStart && b.StartsOn(m.cursor)) || (ep == booking.EndpointEnd && b.EndsOn(m.cursor)) {
			m.startDrag(booking.Handle{StationID: station.ID, BookingID: b.ID, Endpoint: ep}, m.cursor, false)
			return m, nil
		}
	}
	return m, m.setStatus(fmt.Sprintf("No %s handle on this day", ep), false)
}

// moveDragTarget shifts a keyboard drag target by days.
func (m *Model) moveDragTarget(days int) {
	m.moveCursor(days)
	m.drag.target = m.cursor
	logDrag(m.logger, "drag over", m.drag.handle, m.drag.target)
}

func (m *Model) cancelDrag() {
	if m.drag.active {
		logDrag(m.logger, "drag cancel", m.drag.handle, time.Time{})
	}
	m.drag = dragState{}
}

// drop finishes the drag on its current target. Without a target, or when
// the booking no longer exists, nothing changes.
func (m Model) drop() (tea.Model, tea.Cmd) {
	h, day := m.drag.handle, m.drag.target
	m.drag = dragState{}

	if b, ok := booking.FindBooking(m.stations, h); ok && onEndpointDay(b, h.Endpoint, day) {
		logDrag(m.logger, "drop unchanged", h, day)
		return m, nil
	}
	updated, changed := booking.ApplyDrop(m.stations, h, day)
	if !changed {
		logDrag(m.logger, "drop ignored", h, day)
		return m, nil
	}
	after, _ := booking.FindBooking(updated, h)

	m.setStations(updated)
	m.dirty[h.StationID] = true
	m.logger.Info().
		Str("handle", h.String()).
		Str("station", h.StationID).
		Str("start", after.StartDate).
		Str("end", after.EndDate).
		Msg("drop")
	return m, m.setStatus(fmt.Sprintf("Moved %s of %s to %s", h.Endpoint, after.DisplayName(), day.Format("Mon 02 Jan")), false)
}

// save writes every station with unsaved changes.
func (m Model) save() (tea.Model, tea.Cmd) {
	list := m.dirtyStations()
	if len(list) == 0 {
		return m, m.setStatus("Nothing to update", false)
	}
	m.logger.Info().Int("stations", len(list)).Msg("saving stations")
	status := m.setStatus(fmt.Sprintf("Saving %d %s...", len(list), plural(len(list), "station")), false)
	return m, tea.Batch(status, commands.SaveStations(m.source, list, m.timeout))
}

// copyDetail puts the open booking's details on the clipboard.
func (m Model) copyDetail() (tea.Model, tea.Cmd) {
	b, s, ok := m.detailBooking()
	if !ok {
		return m, nil
	}
	text := view.BookingDetailText(view.NewBookingDetailModel(b, s.Name))
	if err := m.copyFn(text); err != nil {
		logError(m.logger, "copy booking", err)
		return m, m.setStatus("Copy failed: "+err.Error(), true)
	}
	return m, m.setStatus("Copied booking details", false)
}

// onEndpointDay reports whether the dragged endpoint already sits on day.
func onEndpointDay(b booking.Booking, ep booking.Endpoint, day time.Time) bool {
	if ep == booking.EndpointStart {
		return b.StartsOn(day)
	}
	return b.EndsOn(day)
}

