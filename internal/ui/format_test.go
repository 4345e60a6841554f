package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/calendar"
	"github.com/javiermolinar/stationboard/internal/store"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
	DisableColor()
}

func day(d int) time.Time {
	return time.Date(2025, time.August, d, 9, 0, 0, 0, time.Local)
}

func TestFormatRange(t *testing.T) {
	b := booking.Booking{StartDate: "2025-08-10T10:00:00.000Z", EndDate: "2025-08-15T10:00:00.000Z"}
	got := FormatRange(b)
	if !strings.HasPrefix(got, "Aug 1") || !strings.Contains(got, " → Aug 1") {
		t.Errorf("FormatRange() = %q", got)
	}

	if got := FormatRange(booking.Booking{StartDate: "bad", EndDate: "bad"}); got != "? → ?" {
		t.Errorf("FormatRange(malformed) = %q, want %q", got, "? → ?")
	}
}

func TestNextBooking(t *testing.T) {
	bookings := []booking.Booking{
		{ID: "late", StartDate: "2025-08-25T10:00:00.000Z", EndDate: "2025-08-27T10:00:00.000Z"},
		{ID: "past", StartDate: "2025-08-01T10:00:00.000Z", EndDate: "2025-08-03T10:00:00.000Z"},
		{ID: "soon", StartDate: "2025-08-18T10:00:00.000Z", EndDate: "2025-08-22T10:00:00.000Z"},
	}

	tests := []struct {
		name   string
		today  time.Time
		wantID string
		wantOK bool
	}{
		{"picks earliest upcoming", day(10), "soon", true},
		{"running booking counts", day(20), "soon", true},
		{"only later left", day(24), "late", true},
		{"all ended", day(30), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextBooking(bookings, tt.today)
			if ok != tt.wantOK || got.ID != tt.wantID {
				t.Errorf("NextBooking() = (%q, %v), want (%q, %v)", got.ID, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestSelectStation(t *testing.T) {
	list := store.MockStations()

	tests := []struct {
		query   string
		want    string
		wantErr bool
	}{
		{"Hamburg Station", "2", false},
		{"hamburg station", "2", false},
		{"1", "1", false},
		{"berl", "1", false},
		{"Paris", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := SelectStation(list, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SelectStation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.ID != tt.want {
				t.Errorf("SelectStation() = %q, want %q", got.ID, tt.want)
			}
		})
	}
}

func TestPrintStations(t *testing.T) {
	var buf bytes.Buffer
	PrintStations(&buf, store.MockStations(), 80, day(1))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "STATION") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Berlin Station") || !strings.Contains(lines[1], "KERA") {
		t.Errorf("berlin row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Hamburg Station") || !strings.Contains(lines[2], "JOHN") {
		t.Errorf("hamburg row = %q", lines[2])
	}

	buf.Reset()
	PrintStations(&buf, nil, 80, day(1))
	if got := buf.String(); got != "No stations found.\n" {
		t.Errorf("empty list output = %q", got)
	}
}

func TestPrintStations_NoUpcoming(t *testing.T) {
	var buf bytes.Buffer
	PrintStations(&buf, store.MockStations(), 80, day(31))
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n")[1:] {
		if !strings.HasSuffix(line, "-") {
			t.Errorf("row %q should end with '-'", line)
		}
	}
}

func TestRenderMonth(t *testing.T) {
	hamburg := store.MockStations()[1]
	out := ansi.Strip(RenderMonth(calendar.NewMonth(2025, time.August), hamburg.Bookings, 100, day(20)))

	for _, want := range []string{"Mon", "Sun", "▶ JOHN", "◀ JOHN", "20 •", "31"} {
		if !strings.Contains(out, want) {
			t.Errorf("month output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "KERA") {
		t.Errorf("month output shows another station's booking:\n%s", out)
	}

	width := 0
	for _, line := range strings.Split(out, "\n") {
		width = max(width, ansi.StringWidth(line))
	}
	if width > 100 {
		t.Errorf("month width = %d, want <= 100", width)
	}
}

func TestRenderMonth_SameDayBooking(t *testing.T) {
	b := booking.Booking{
		ID: "x", CustomerName: "Ana",
		StartDate: "2025-08-12T08:00:00.000Z", EndDate: "2025-08-12T18:00:00.000Z",
	}
	out := ansi.Strip(RenderMonth(calendar.NewMonth(2025, time.August), []booking.Booking{b}, 80, day(1)))
	if !strings.Contains(out, "▶◀ ANA") {
		t.Errorf("same-day booking not marked:\n%s", out)
	}
}

func TestRenderMonth_TruncatesNames(t *testing.T) {
	b := booking.Booking{
		ID: "x", CustomerName: "Maximiliane Oberhausen-Lindqvist",
		StartDate: "2025-08-12T10:00:00.000Z", EndDate: "2025-08-14T10:00:00.000Z",
	}
	out := ansi.Strip(RenderMonth(calendar.NewMonth(2025, time.August), []booking.Booking{b}, 60, day(1)))
	if strings.Contains(out, "LINDQVIST") {
		t.Errorf("long name not truncated:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("truncated name has no ellipsis:\n%s", out)
	}
}
