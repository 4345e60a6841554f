package store

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS stations (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS bookings (
			station_id     TEXT NOT NULL REFERENCES stations(id) ON DELETE CASCADE,
			id             TEXT NOT NULL,
			position       INTEGER NOT NULL,
			customer_name  TEXT NOT NULL DEFAULT '',
			start_date     TEXT NOT NULL,
			end_date       TEXT NOT NULL,
			pickup_station TEXT NOT NULL DEFAULT '',
			return_station TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (station_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_bookings_station ON bookings(station_id, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
