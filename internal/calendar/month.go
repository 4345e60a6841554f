package calendar

import (
	"time"
)

// Month is a displayed year+month pair.
type Month struct {
	Year  int
	Month time.Month
	loc   *time.Location
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month(), loc: t.Location()}
}

// NewMonth returns the given month in the local zone.
func NewMonth(year int, month time.Month) Month {
	return MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.Local))
}

func (m Month) location() *time.Location {
	if m.loc == nil {
		return time.Local
	}
	return m.loc
}

// First returns midnight of the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, m.location())
}

// Prev returns the previous month.
func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// Next returns the following month.
func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Label returns e.g. "August 2025".
func (m Month) Label() string {
	return m.First().Format("January 2006")
}

// Grid returns the month's cells.
func (m Month) Grid() []Cell {
	return MonthGrid(m.Year, m.Month, m.location())
}

// Contains reports whether t falls in this month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Equal reports whether both values name the same year and month.
func (m Month) Equal(o Month) bool {
	return m.Year == o.Year && m.Month == o.Month
}
