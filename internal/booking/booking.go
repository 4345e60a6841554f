// Package booking defines the station and booking domain types.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/stationboard/internal/dateutil"
)

// Validation errors.
var (
	ErrMissingID       = errors.New("id is required")
	ErrMissingName     = errors.New("station name is required")
	ErrUnknownEndpoint = errors.New("endpoint must be 'start' or 'end'")
)

// Station is a pickup location with its bookings.
type Station struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Bookings []Booking `json:"bookings"`
}

// Booking is a reservation tied to one station.
// Dates stay in their wire form; Start and End parse them on demand.
type Booking struct {
	ID            string `json:"id"`
	StationID     string `json:"stationId"`
	CustomerName  string `json:"customerName"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	PickupStation string `json:"pickupStation,omitempty"`
	ReturnStation string `json:"returnStation,omitempty"`
}

// Start returns the parsed start date, or the zero time if it is malformed.
func (b Booking) Start() time.Time {
	t, _ := dateutil.ParseISO(b.StartDate)
	return t
}

// End returns the parsed end date, or the zero time if it is malformed.
func (b Booking) End() time.Time {
	t, _ := dateutil.ParseISO(b.EndDate)
	return t
}

// StartsOn reports whether the booking starts on day.
func (b Booking) StartsOn(day time.Time) bool {
	return dateutil.SameDay(b.Start(), day)
}

// EndsOn reports whether the booking ends on day.
func (b Booking) EndsOn(day time.Time) bool {
	return dateutil.SameDay(b.End(), day)
}

// DisplayName returns the customer name upper-cased.
func (b Booking) DisplayName() string {
	return strings.ToUpper(b.CustomerName)
}

// Validate checks the fields the dashboard relies on.
// Server data is never rejected; callers log the result.
func (s Station) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("station: %w", ErrMissingID)
	}
	if s.Name == "" {
		return fmt.Errorf("station %s: %w", s.ID, ErrMissingName)
	}
	for _, b := range s.Bookings {
		if b.ID == "" {
			return fmt.Errorf("station %s booking: %w", s.ID, ErrMissingID)
		}
		if _, err := dateutil.ParseISO(b.StartDate); err != nil {
			return fmt.Errorf("booking %s start date %q: %w", b.ID, b.StartDate, err)
		}
		if _, err := dateutil.ParseISO(b.EndDate); err != nil {
			return fmt.Errorf("booking %s end date %q: %w", b.ID, b.EndDate, err)
		}
	}
	return nil
}

// FindStation returns the station with the given id.
func FindStation(stations []Station, id string) (Station, bool) {
	for _, s := range stations {
		if s.ID == id {
			return s, true
		}
	}
	return Station{}, false
}

// FindBooking returns the booking a handle refers to. Booking ids are only
// unique per station, so the handle's StationID narrows the search when set.
func FindBooking(stations []Station, h Handle) (Booking, bool) {
	for _, s := range stations {
		if h.StationID != "" && s.ID != h.StationID {
			continue
		}
		for _, b := range s.Bookings {
			if h.Matches(b) {
				return b, true
			}
		}
	}
	return Booking{}, false
}

// Search returns the stations whose name contains query, ignoring case.
// An empty query matches nothing.
func Search(stations []Station, query string) []Station {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	matches := make([]Station, 0, len(stations))
	for _, s := range stations {
		if strings.Contains(strings.ToLower(s.Name), q) {
			matches = append(matches, s)
		}
	}
	return matches
}

// Selection is the dashboard's station choice: either nothing or one station.
type Selection struct {
	station Station
	ok      bool
}

// NoSelection returns the empty selection.
func NoSelection() Selection {
	return Selection{}
}

// Selected returns a selection holding s.
func Selected(s Station) Selection {
	return Selection{station: s, ok: true}
}

// Station returns the selected station and whether one is selected.
func (s Selection) Station() (Station, bool) {
	return s.station, s.ok
}

// Resolve re-derives the selected station from the current list so
// later mutations are visible. It reports false when nothing is
// selected or the station no longer exists.
func (s Selection) Resolve(stations []Station) (Station, bool) {
	if !s.ok {
		return Station{}, false
	}
	return FindStation(stations, s.station.ID)
}
