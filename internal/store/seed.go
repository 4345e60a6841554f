package store

import (
	"context"
	"fmt"

	"github.com/javiermolinar/stationboard/internal/booking"
)

// MockStations is the sample data served by a freshly seeded store.
func MockStations() []booking.Station {
	return []booking.Station{
		{
			ID:   "1",
			Name: "Berlin Station",
			Bookings: []booking.Booking{{
				ID:           "1",
				StationID:    "1",
				CustomerName: "Kera",
				StartDate:    "2025-08-05T10:00:00.000Z",
				EndDate:      "2025-08-06T10:00:00.000Z",
			}},
		},
		{
			ID:   "2",
			Name: "Hamburg Station",
			Bookings: []booking.Booking{{
				ID:           "2",
				StationID:    "2",
				CustomerName: "John",
				StartDate:    "2025-08-10T10:00:00.000Z",
				EndDate:      "2025-08-15T10:00:00.000Z",
			}},
		},
	}
}

// Seed inserts MockStations when the store is empty. It reports whether
// anything was written.
func (s *SQLite) Seed(ctx context.Context) (bool, error) {
	n, err := s.CountStations(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	for _, st := range MockStations() {
		if err := s.UpsertStation(ctx, &st); err != nil {
			return false, fmt.Errorf("seeding %s: %w", st.Name, err)
		}
	}
	return true, nil
}
