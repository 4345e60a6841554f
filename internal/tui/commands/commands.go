// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/stations"
)

// DefaultTimeout bounds every request issued from the TUI.
const DefaultTimeout = 15 * time.Second

// StationsLoadedMsg is sent when the station list is fetched.
type StationsLoadedMsg struct {
	Stations []booking.Station
}

// StationsSavedMsg is sent when dirty stations were written back.
type StationsSavedMsg struct {
	IDs []string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Op  string
	Err error
}

func (e ErrMsg) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadStations fetches all stations once.
func LoadStations(src stations.Source, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return ErrMsg{Op: "loading stations", Err: errors.New("no stations source configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), orDefault(timeout))
		defer cancel()

		list, err := src.List(ctx)
		if err != nil {
			return ErrMsg{Op: "loading stations", Err: err}
		}
		return StationsLoadedMsg{Stations: list}
	}
}

// SaveStations writes the given stations back one by one. It stops at the
// first failure; stations already written are reported in the error.
func SaveStations(src stations.Source, list []booking.Station, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return ErrMsg{Op: "saving stations", Err: errors.New("no stations source configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), orDefault(timeout))
		defer cancel()

		saved := make([]string, 0, len(list))
		for _, s := range list {
			if err := src.Update(ctx, s); err != nil {
				return ErrMsg{
					Op:  "saving stations",
					Err: fmt.Errorf("station %s (after %d saved): %w", s.ID, len(saved), err),
				}
			}
			saved = append(saved, s.ID)
		}
		return StationsSavedMsg{IDs: saved}
	}
}

// Status returns a command that shows msg in the status line.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// ClearStatusAfter schedules a ClearStatusMsg.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

func orDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}
