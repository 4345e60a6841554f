// Package store provides SQLite storage for the mock stations API.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/stationboard/internal/booking"
)

// ErrNotFound is returned when a station does not exist.
var ErrNotFound = errors.New("station not found")

// SQLite stores stations and their bookings.
type SQLite struct {
	db *sql.DB
}

// New opens the database at path and runs migrations.
// Use ":memory:" for a throwaway store.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// ListStations returns every station with its bookings, in insertion order.
func (s *SQLite) ListStations(ctx context.Context) ([]booking.Station, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM stations ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying stations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stations := []booking.Station{}
	index := make(map[string]int)
	for rows.Next() {
		var st booking.Station
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, fmt.Errorf("scanning station: %w", err)
		}
		st.Bookings = []booking.Booking{}
		index[st.ID] = len(stations)
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stations: %w", err)
	}

	bookings, err := s.queryBookings(ctx, `ORDER BY station_id, position`)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if i, ok := index[b.StationID]; ok {
			stations[i].Bookings = append(stations[i].Bookings, b)
		}
	}

	return stations, nil
}

// GetStation returns one station with its bookings.
func (s *SQLite) GetStation(ctx context.Context, id string) (booking.Station, error) {
	st := booking.Station{Bookings: []booking.Booking{}}
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM stations WHERE id = ?`, id).Scan(&st.ID, &st.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Station{}, fmt.Errorf("station %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return booking.Station{}, fmt.Errorf("querying station: %w", err)
	}

	bookings, err := s.queryBookings(ctx, `WHERE station_id = ? ORDER BY position`, id)
	if err != nil {
		return booking.Station{}, err
	}
	st.Bookings = append(st.Bookings, bookings...)
	return st, nil
}

func (s *SQLite) queryBookings(ctx context.Context, clause string, args ...any) ([]booking.Booking, error) {
	query := `
		SELECT station_id, id, customer_name, start_date, end_date, pickup_station, return_station
		FROM bookings
	` + clause

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bookings []booking.Booking
	for rows.Next() {
		var b booking.Booking
		if err := rows.Scan(&b.StationID, &b.ID, &b.CustomerName, &b.StartDate, &b.EndDate, &b.PickupStation, &b.ReturnStation); err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}
	return bookings, nil
}

// UpsertStation creates or replaces a station and its bookings.
// Missing station and booking ids are filled with new UUIDs, and every
// booking's StationID is set to the station's id.
func (s *SQLite) UpsertStation(ctx context.Context, st *booking.Station) error {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	for i := range st.Bookings {
		if st.Bookings[i].ID == "" {
			st.Bookings[i].ID = uuid.NewString()
		}
		st.Bookings[i].StationID = st.ID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO stations (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, st.ID, st.Name); err != nil {
		return fmt.Errorf("upserting station: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE station_id = ?`, st.ID); err != nil {
		return fmt.Errorf("clearing bookings: %w", err)
	}

	for i, b := range st.Bookings {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bookings (
				station_id, id, position, customer_name, start_date, end_date, pickup_station, return_station
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, st.ID, b.ID, i, b.CustomerName, b.StartDate, b.EndDate, b.PickupStation, b.ReturnStation); err != nil {
			return fmt.Errorf("inserting booking %s: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// CountStations returns the number of stored stations.
func (s *SQLite) CountStations(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting stations: %w", err)
	}
	return n, nil
}
