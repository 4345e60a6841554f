// Package calendar builds Monday-first month grids.
package calendar

import (
	"time"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/dateutil"
)

// Weekdays are the column headers of a month grid.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Cell is one slot of a month grid: a real day or a padding slot.
type Cell struct {
	date  time.Time
	valid bool
}

// DayCell returns a cell for the given day.
func DayCell(t time.Time) Cell {
	return Cell{date: t, valid: true}
}

// Date returns the cell's day and false for padding cells.
func (c Cell) Date() (time.Time, bool) {
	return c.date, c.valid
}

// IsPadding reports whether the cell has no day.
func (c Cell) IsPadding() bool {
	return !c.valid
}

// Matches reports whether the cell shows the same day as t.
func (c Cell) Matches(t time.Time) bool {
	if !c.valid {
		return false
	}
	return dateutil.SameDay(t, c.date)
}

// MonthGrid returns the cells for a month, Monday first.
// Leading padding aligns day 1 under its weekday and trailing padding
// completes the last week, so the length is always a multiple of 7.
func MonthGrid(year int, month time.Month, loc *time.Location) []Cell {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := dateutil.MondayIndex(first)
	days := dateutil.DaysIn(year, month, loc)

	cells := make([]Cell, 0, offset+days+6)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, DayCell(time.Date(year, month, d, 0, 0, 0, 0, loc)))
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{})
	}
	return cells
}

// MonthGridIndex is MonthGrid for a zero-based month index (0 = January).
// Out-of-range indexes roll over into neighbouring years.
func MonthGridIndex(year, month0 int) []Cell {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.Local)
	return MonthGrid(first.Year(), first.Month(), time.Local)
}

// BookingsOn returns the bookings that start or end on the cell's day,
// in input order. Padding cells have no bookings.
func BookingsOn(c Cell, bookings []booking.Booking) []booking.Booking {
	day, ok := c.Date()
	if !ok {
		return nil
	}
	var out []booking.Booking
	for _, b := range bookings {
		if b.StartsOn(day) || b.EndsOn(day) {
			out = append(out, b)
		}
	}
	return out
}
