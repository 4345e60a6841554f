package calendar

import (
	"testing"
	"time"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/dateutil"
)

func TestMonthGrid_Properties(t *testing.T) {
	for year := 1999; year <= 2031; year++ {
		for month := time.January; month <= time.December; month++ {
			cells := MonthGrid(year, month, time.Local)

			if len(cells)%7 != 0 {
				t.Fatalf("%d-%02d: len = %d, not a multiple of 7", year, month, len(cells))
			}

			days := 0
			firstIdx := -1
			for i, c := range cells {
				if c.IsPadding() {
					continue
				}
				if firstIdx == -1 {
					firstIdx = i
				}
				days++
			}
			if want := dateutil.DaysIn(year, month, time.Local); days != want {
				t.Fatalf("%d-%02d: %d day cells, want %d", year, month, days, want)
			}

			first, _ := cells[firstIdx].Date()
			if first.Day() != 1 {
				t.Fatalf("%d-%02d: first day cell is %v", year, month, first)
			}
			// The first day sits in the column of its weekday.
			if firstIdx != dateutil.MondayIndex(first) {
				t.Fatalf("%d-%02d: first day at column %d, weekday %s", year, month, firstIdx, first.Weekday())
			}
			// Leading padding never fills a whole week.
			if firstIdx > 6 {
				t.Fatalf("%d-%02d: %d leading padding cells", year, month, firstIdx)
			}
		}
	}
}

func TestMonthGrid_August2025(t *testing.T) {
	// August 1st 2025 is a Friday.
	cells := MonthGrid(2025, time.August, time.Local)
	if len(cells) != 35 {
		t.Fatalf("len = %d, want 35", len(cells))
	}
	for i := 0; i < 4; i++ {
		if !cells[i].IsPadding() {
			t.Errorf("cell %d should be padding", i)
		}
	}
	d, ok := cells[4].Date()
	if !ok || d.Day() != 1 || d.Weekday() != time.Friday {
		t.Errorf("cell 4 = %v, %v", d, ok)
	}
	last, ok := cells[34].Date()
	if !ok || last.Day() != 31 {
		t.Errorf("cell 34 = %v, %v", last, ok)
	}
}

func TestMonthGrid_StartsOnMonday(t *testing.T) {
	// September 2025 starts on a Monday: no leading padding.
	cells := MonthGrid(2025, time.September, time.Local)
	if cells[0].IsPadding() {
		t.Fatal("expected first cell to be September 1st")
	}
	// June 2025 starts on a Sunday: six padding cells.
	cells = MonthGrid(2025, time.June, time.Local)
	for i := 0; i < 6; i++ {
		if !cells[i].IsPadding() {
			t.Fatalf("cell %d should be padding", i)
		}
	}
}

func TestMonthGridIndex(t *testing.T) {
	got := MonthGridIndex(2025, 7)
	want := MonthGrid(2025, time.August, time.Local)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	rolled := MonthGridIndex(2025, 12)
	d, _ := rolled[3].Date() // January 1st 2026 is a Thursday.
	if d.Year() != 2026 || d.Month() != time.January || d.Day() != 1 {
		t.Errorf("rolled month starts at %v", d)
	}
}

func TestCellMatches(t *testing.T) {
	day := time.Date(2025, 8, 5, 0, 0, 0, 0, time.Local)
	c := DayCell(day)

	if !c.Matches(day.Add(10 * time.Hour)) {
		t.Error("expected same day to match")
	}
	if c.Matches(day.AddDate(0, 0, 1)) {
		t.Error("expected next day not to match")
	}
	if (Cell{}).Matches(day) {
		t.Error("padding must never match")
	}
}

func TestBookingsOn(t *testing.T) {
	bookings := []booking.Booking{
		{ID: "1", StartDate: "2025-08-05", EndDate: "2025-08-06"},
		{ID: "2", StartDate: "2025-08-04", EndDate: "2025-08-08"},
		{ID: "3", StartDate: "2025-08-01", EndDate: "2025-08-05"},
		{ID: "4", StartDate: "bad", EndDate: "bad"},
	}
	day := DayCell(time.Date(2025, 8, 5, 0, 0, 0, 0, time.Local))

	got := BookingsOn(day, bookings)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("BookingsOn() = %+v", got)
	}

	if got := BookingsOn(Cell{}, bookings); got != nil {
		t.Errorf("padding returned %+v", got)
	}
}

func TestMonthNavigation(t *testing.T) {
	m := NewMonth(2025, time.January)

	prev := m.Prev()
	if prev.Year != 2024 || prev.Month != time.December {
		t.Errorf("Prev() = %d-%s", prev.Year, prev.Month)
	}
	next := m.Next().Next()
	if next.Year != 2025 || next.Month != time.March {
		t.Errorf("Next().Next() = %d-%s", next.Year, next.Month)
	}
	if got := NewMonth(2025, time.August).Label(); got != "August 2025" {
		t.Errorf("Label() = %q", got)
	}
	if !m.Contains(time.Date(2025, 1, 31, 23, 0, 0, 0, time.Local)) {
		t.Error("expected Jan 31 in January")
	}
	if !m.Prev().Next().Equal(m) {
		t.Error("Prev().Next() should be identity")
	}
}
