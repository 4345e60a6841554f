package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/calendar"
	"github.com/javiermolinar/stationboard/internal/dateutil"
	"github.com/javiermolinar/stationboard/internal/tui/view"
)

const (
	minNameWidth = 8
	minDayWidth  = 8
	// Border columns of a seven-column table.
	monthBorderCols = 8
)

// FormatRange formats a booking's dates as "Aug 10 → Aug 15".
func FormatRange(b booking.Booking) string {
	return formatDay(b.Start()) + " → " + formatDay(b.End())
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format("Jan 02")
}

// NextBooking returns the earliest booking that has not ended before today.
func NextBooking(bookings []booking.Booking, today time.Time) (booking.Booking, bool) {
	today = dateutil.TruncateToDay(today)
	upcoming := make([]booking.Booking, 0, len(bookings))
	for _, b := range bookings {
		if end := b.End(); !end.IsZero() && !dateutil.TruncateToDay(end).Before(today) {
			upcoming = append(upcoming, b)
		}
	}
	if len(upcoming) == 0 {
		return booking.Booking{}, false
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Start().Before(upcoming[j].Start())
	})
	return upcoming[0], true
}

// PrintStations writes one row per station: name, booking count and the
// next booking.
func PrintStations(w io.Writer, list []booking.Station, width int, today time.Time) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No stations found.")
		return
	}

	nameWidth := minNameWidth
	for _, st := range list {
		nameWidth = max(nameWidth, runewidth.StringWidth(st.Name))
	}
	nameWidth = min(nameWidth, max(minNameWidth, width/3))

	fmt.Fprintf(w, "%s  %s  %s\n",
		formatHeader(runewidth.FillRight("STATION", nameWidth)),
		formatHeader("BOOKINGS"),
		formatHeader("NEXT"))

	for _, st := range list {
		name := runewidth.FillRight(runewidth.Truncate(st.Name, nameWidth, "…"), nameWidth)
		count := fmt.Sprintf("%8d", len(st.Bookings))

		next := formatMuted("-")
		if b, ok := NextBooking(st.Bookings, today); ok {
			next = fmt.Sprintf("%s  %s", b.DisplayName(), formatMuted(FormatRange(b)))
		}
		fmt.Fprintf(w, "%s  %s  %s\n", formatStation(name), formatCount(count), next)
	}
}

// SelectStation picks the station named by query: an exact id or name
// first, then the first name containing query.
func SelectStation(list []booking.Station, query string) (booking.Station, error) {
	query = strings.TrimSpace(query)
	for _, st := range list {
		if st.ID == query || strings.EqualFold(st.Name, query) {
			return st, nil
		}
	}
	if matches := booking.Search(list, query); len(matches) > 0 {
		return matches[0], nil
	}
	return booking.Station{}, fmt.Errorf("no station matching %q", query)
}

// dayLines returns the lines printed in a month cell: the day number and
// one line per booking starting or ending that day.
func dayLines(c calendar.Cell, bookings []booking.Booking, today time.Time, width int) []string {
	day, ok := c.Date()
	if !ok {
		return nil
	}
	label := strconv.Itoa(day.Day())
	if dateutil.SameDay(day, today) {
		label += " •"
	}
	lines := []string{label}

	for _, b := range calendar.BookingsOn(c, bookings) {
		var glyph string
		switch {
		case b.StartsOn(day) && b.EndsOn(day):
			glyph = view.StartGlyph + view.EndGlyph
		case b.StartsOn(day):
			glyph = colorStart.Sprint(view.StartGlyph)
		default:
			glyph = colorEnd.Sprint(view.EndGlyph)
		}
		name := runewidth.Truncate(b.DisplayName(), width-2, "…")
		lines = append(lines, glyph+" "+name)
	}
	return lines
}

// RenderMonth draws a month as a table with each booking on its start
// and end days.
func RenderMonth(m calendar.Month, bookings []booking.Booking, width int, today time.Time) string {
	dayWidth := max(minDayWidth, (width-monthBorderCols)/7)

	cells := m.Grid()
	rows := make([][]string, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		row := make([]string, 7)
		for col := range row {
			row[col] = strings.Join(dayLines(cells[i+col], bookings, today, dayWidth), "\n")
		}
		rows = append(rows, row)
	}

	header := lipgloss.NewStyle().Bold(true).Width(dayWidth).Align(lipgloss.Center)
	cell := lipgloss.NewStyle().Width(dayWidth)

	t := table.New().
		Headers(calendar.Weekdays[:]...).
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	return t.Render()
}
