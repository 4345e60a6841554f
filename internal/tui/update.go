package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/tui/autocomplete"
	"github.com/javiermolinar/stationboard/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.StationsLoadedMsg:
		m.loading = false
		m.loadErr = nil
		m.setStations(msg.Stations)
		if prev, ok := m.selection.Station(); ok {
			if _, found := m.selection.Resolve(m.stations); !found {
				m.logger.Warn().Str("station", prev.ID).Msg("selected station gone after reload")
				m.selection = booking.NoSelection()
			}
		}
		for _, s := range msg.Stations {
			if err := s.Validate(); err != nil {
				m.logger.Warn().Err(err).Str("station", s.ID).Msg("station data")
			}
		}
		m.logger.Info().Int("stations", len(msg.Stations)).Msg("stations loaded")
		return m, m.setStatus(fmt.Sprintf("Loaded %d stations", len(msg.Stations)), false)

	case commands.StationsSavedMsg:
		for _, id := range msg.IDs {
			delete(m.dirty, id)
		}
		m.logger.Info().Strs("stations", msg.IDs).Msg("stations saved")
		return m, m.setStatus(fmt.Sprintf("Saved %d %s", len(msg.IDs), plural(len(msg.IDs), "station")), false)

	case commands.ErrMsg:
		logError(m.logger, msg.Op, msg.Err)
		if m.loading {
			m.loading = false
			m.loadErr = msg.Err
		}
		return m, m.setStatus("Error: "+msg.Error(), true)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case autocomplete.SelectedMsg[booking.Station]:
		if msg.ID != m.search.ID() {
			return m, nil
		}
		m.selection = booking.Selected(msg.Item)
		m.logger.Debug().Str("station", msg.Item.ID).Str("name", msg.Item.Name).Msg("station selected")
		m.setFocus(focusCalendar)
		return m, nil
	}

	// Timers, fetch results and cursor blinks belong to the search field.
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// setStations replaces the station list and the search index.
func (m *Model) setStations(list []booking.Station) {
	m.stations = list
	m.index.Set(list)
}

// setStatus shows msg in the footer and schedules its removal.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	d := statusDuration
	if isErr {
		d = errorDuration
	}
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = time.Now().Add(d)
	return commands.ClearStatusAfter(d)
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	if f == focusSearch {
		return m.search.Focus()
	}
	m.search.Blur()
	return nil
}

// selectedStation re-derives the selected station from the current list.
func (m Model) selectedStation() (booking.Station, bool) {
	return m.selection.Resolve(m.stations)
}

// detailBooking resolves the booking shown in the modal.
func (m Model) detailBooking() (booking.Booking, booking.Station, bool) {
	if m.detail == nil {
		return booking.Booking{}, booking.Station{}, false
	}
	s, ok := booking.FindStation(m.stations, m.detail.stationID)
	if !ok {
		return booking.Booking{}, booking.Station{}, false
	}
	b, ok := booking.FindBooking([]booking.Station{s}, booking.Handle{StationID: s.ID, BookingID: m.detail.bookingID})
	return b, s, ok
}

func (m *Model) openDetail(stationID string, b booking.Booking) {
	m.detail = &bookingRef{stationID: stationID, bookingID: b.ID}
	m.logger.Debug().Str("booking", b.ID).Str("station", stationID).Msg("open details")
}

func (m *Model) closeDetail() {
	m.detail = nil
}

// dirtyStations returns the stations with unsaved changes in list order.
func (m Model) dirtyStations() []booking.Station {
	var out []booking.Station
	for _, s := range m.stations {
		if m.dirty[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
