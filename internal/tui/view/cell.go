package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/stationboard/internal/booking"
)

// Handle glyphs drawn at the edges of a booking line.
const (
	StartGlyph = "▶"
	EndGlyph   = "◀"
)

// Fixed cell texts.
const (
	NoBookingsText = "· no bookings"
	moreFormat     = "+%d more"
)

const (
	// MinCellWidth leaves room for both handles and a one-rune name.
	MinCellWidth  = 7
	MinCellHeight = 2
	handleCols    = 2
)

// CellGeometry is the size of one day cell in terminal cells. Line 0 is
// the day number; every following line holds one booking.
type CellGeometry struct {
	Width  int
	Height int
}

// Normalize clamps the geometry to the smallest usable cell.
func (g CellGeometry) Normalize() CellGeometry {
	g.Width = max(g.Width, MinCellWidth)
	g.Height = max(g.Height, MinCellHeight)
	return g
}

// BookingRows is the number of lines available for bookings.
func (g CellGeometry) BookingRows() int {
	return g.Height - 1
}

// Visible splits n bookings into the number drawn on their own line and
// the number folded into the "+N more" line.
func (g CellGeometry) Visible(n int) (shown, more int) {
	rows := g.BookingRows()
	if n <= rows {
		return n, 0
	}
	shown = rows - 1
	return shown, n - shown
}

// Part is what a point inside a cell lands on.
type Part int

const (
	PartNone Part = iota
	PartDay
	PartBody
	PartStartHandle
	PartEndHandle
	PartMore
)

func (p Part) String() string {
	switch p {
	case PartDay:
		return "day"
	case PartBody:
		return "body"
	case PartStartHandle:
		return "start-handle"
	case PartEndHandle:
		return "end-handle"
	case PartMore:
		return "more"
	default:
		return "none"
	}
}

// HitBooking resolves a cell-local point against the bookings drawn in a
// cell for day. It returns the part and the booking index for booking
// parts. Handles only exist on the day the booking starts or ends.
func (g CellGeometry) HitBooking(col, line int, day time.Time, bookings []booking.Booking) (Part, int) {
	if col < 0 || col >= g.Width || line < 0 || line >= g.Height {
		return PartNone, -1
	}
	if line == 0 {
		return PartDay, -1
	}
	shown, more := g.Visible(len(bookings))
	i := line - 1
	if i >= shown {
		if more > 0 && i == shown {
			return PartMore, -1
		}
		return PartNone, -1
	}

	b := bookings[i]
	switch {
	case col < handleCols && showsStart(b, day):
		return PartStartHandle, i
	case col >= g.Width-handleCols && showsEnd(b, day):
		return PartEndHandle, i
	}
	return PartBody, i
}

// showsStart reports whether the start handle is drawn for b on day.
// A zero day is the detail context where both handles are drawn.
func showsStart(b booking.Booking, day time.Time) bool {
	return day.IsZero() || b.StartsOn(day)
}

func showsEnd(b booking.Booking, day time.Time) bool {
	return day.IsZero() || b.EndsOn(day)
}

// CellStyles groups the styles used by the day cell renderer.
type CellStyles struct {
	Day        lipgloss.Style
	Today      lipgloss.Style
	Cursor     lipgloss.Style
	HoverStart lipgloss.Style
	HoverEnd   lipgloss.Style
	Padding    lipgloss.Style
	Empty      lipgloss.Style
	More       lipgloss.Style
	StartRow   lipgloss.Style
	EndRow     lipgloss.Style
	Dragging   lipgloss.Style
}

// DayCellModel contains everything needed to draw one grid cell.
type DayCellModel struct {
	Geometry CellGeometry
	Day      time.Time
	Padding  bool
	Today    bool
	Cursor   bool
	// Hover is the endpoint being dragged over this cell, or "".
	Hover    booking.Endpoint
	Bookings []booking.Booking
	// Dragging marks the booking being dragged so it can be dimmed.
	Dragging booking.Handle
}

// RenderDayCell draws a cell as exactly Geometry.Height lines of
// Geometry.Width cells each.
func RenderDayCell(m DayCellModel, styles CellStyles) string {
	g := m.Geometry
	lines := make([]string, 0, g.Height)

	if m.Padding {
		blank := styles.Padding.Render(strings.Repeat(" ", g.Width))
		for i := 0; i < g.Height; i++ {
			lines = append(lines, blank)
		}
		return strings.Join(lines, "\n")
	}

	lines = append(lines, renderDayLine(m, styles))

	if len(m.Bookings) == 0 {
		lines = append(lines, styles.Empty.Render(fitCell(" "+NoBookingsText, g.Width)))
	} else {
		shown, more := g.Visible(len(m.Bookings))
		for _, b := range m.Bookings[:shown] {
			style := styles.EndRow
			if b.StartsOn(m.Day) {
				style = styles.StartRow
			}
			if m.Dragging.Matches(b) {
				style = styles.Dragging
			}
			lines = append(lines, style.Render(BookingLine(b, m.Day, g.Width)))
		}
		if more > 0 {
			lines = append(lines, styles.More.Render(fitCell(" "+moreText(more), g.Width)))
		}
	}

	blank := strings.Repeat(" ", g.Width)
	for len(lines) < g.Height {
		lines = append(lines, blank)
	}
	return strings.Join(lines[:g.Height], "\n")
}

func renderDayLine(m DayCellModel, styles CellStyles) string {
	prefix := " "
	if m.Cursor {
		prefix = "›"
	}
	text := fitCell(prefix+strconv.Itoa(m.Day.Day()), m.Geometry.Width)

	switch {
	case m.Hover == booking.EndpointStart:
		return styles.HoverStart.Render(text)
	case m.Hover == booking.EndpointEnd:
		return styles.HoverEnd.Render(text)
	case m.Cursor:
		return styles.Cursor.Render(text)
	case m.Today:
		return styles.Today.Render(text)
	}
	return styles.Day.Render(text)
}

// BookingLine lays out one booking in width cells: the start handle on the
// left when day is the start day, the end handle on the right when it is
// the end day, the upper-cased customer name and booking id in between.
// A zero day draws both handles.
func BookingLine(b booking.Booking, day time.Time, width int) string {
	width = max(width, MinCellWidth)

	left := strings.Repeat(" ", handleCols)
	if showsStart(b, day) {
		left = StartGlyph + " "
	}
	right := strings.Repeat(" ", handleCols)
	if showsEnd(b, day) {
		right = " " + EndGlyph
	}

	label := b.DisplayName() + " #" + b.ID
	return left + fitCell(label, width-2*handleCols) + right
}

func moreText(n int) string {
	return fmt.Sprintf(moreFormat, n)
}

// fitCell truncates or pads plain text to exactly width cells.
func fitCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}
