package booking

import (
	"fmt"
	"time"

	"github.com/javiermolinar/stationboard/internal/dateutil"
)

// Endpoint identifies which side of a booking a drag handle moves.
type Endpoint string

const (
	EndpointStart Endpoint = "start"
	EndpointEnd   Endpoint = "end"
)

// Valid returns true if the endpoint is a known value.
func (e Endpoint) Valid() bool {
	return e == EndpointStart || e == EndpointEnd
}

// Handle is the payload carried by a drag: which booking and which endpoint.
// StationID narrows the match when booking ids are only unique per station;
// empty matches the booking id in every station.
type Handle struct {
	StationID string
	BookingID string
	Endpoint  Endpoint
}

// String renders the handle as "<bookingId>-<endpoint>" for logs.
func (h Handle) String() string {
	return h.BookingID + "-" + string(h.Endpoint)
}

// Matches reports whether the handle refers to b.
func (h Handle) Matches(b Booking) bool {
	if h.BookingID == "" || h.BookingID != b.ID {
		return false
	}
	return h.StationID == "" || b.StationID == "" || h.StationID == b.StationID
}

// Reschedule moves one endpoint of b to day and returns the updated booking.
// The end date is pushed to one day after the start whenever the move
// would leave it before the start. The other endpoint keeps its original
// wire value.
func Reschedule(b Booking, endpoint Endpoint, day time.Time) (Booking, error) {
	start := b.Start()
	end := b.End()

	switch endpoint {
	case EndpointStart:
		start = day
		b.StartDate = dateutil.FormatISO(start)
		if start.After(end) {
			b.EndDate = dateutil.FormatISO(start.AddDate(0, 0, 1))
		}
	case EndpointEnd:
		end = day
		if end.Before(start) {
			end = start.AddDate(0, 0, 1)
		}
		b.EndDate = dateutil.FormatISO(end)
	default:
		return b, fmt.Errorf("rescheduling booking %s: %w", b.ID, ErrUnknownEndpoint)
	}

	return b, nil
}

// ApplyDrop applies a finished drag to the station list.
// The list is rebuilt copy-on-write: only stations owning a matching booking
// get a new bookings slice, every other station and booking is reused as is.
// A zero day (no drop target) or a handle naming no booking leaves the
// input untouched and reports false.
func ApplyDrop(stations []Station, h Handle, day time.Time) ([]Station, bool) {
	if day.IsZero() || !h.Endpoint.Valid() {
		return stations, false
	}

	var out []Station
	for si, s := range stations {
		if h.StationID != "" && s.ID != h.StationID {
			continue
		}
		var bookings []Booking
		for bi, b := range s.Bookings {
			if b.ID != h.BookingID {
				continue
			}
			updated, err := Reschedule(b, h.Endpoint, day)
			if err != nil {
				return stations, false
			}
			if bookings == nil {
				bookings = make([]Booking, len(s.Bookings))
				copy(bookings, s.Bookings)
			}
			bookings[bi] = updated
		}
		if bookings == nil {
			continue
		}
		if out == nil {
			out = make([]Station, len(stations))
			copy(out, stations)
		}
		out[si].Bookings = bookings
	}

	if out == nil {
		return stations, false
	}
	return out, true
}
