package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/stationboard/internal/calendar"
)

const (
	colSeparator = "│"
	rowSeparator = "─"
	crossing     = "┼"
)

// GridLayout places a month grid on screen. Left and Top are the screen
// cell of the first day cell's top-left corner; the weekday header and
// its rule sit on the two lines above Top.
type GridLayout struct {
	Geometry CellGeometry
	Left     int
	Top      int
	Weeks    int
}

// Width is the rendered width of the grid.
func (l GridLayout) Width() int {
	return 7*l.Geometry.Width + 6
}

// Height is the rendered height including the weekday header.
func (l GridLayout) Height() int {
	if l.Weeks == 0 {
		return 2
	}
	return 2 + l.Weeks*l.Geometry.Height + (l.Weeks - 1)
}

// CellAt maps a screen point to a grid index and the point's offset
// inside that cell. Separators and points outside the grid report false.
func (l GridLayout) CellAt(x, y int) (index, col, line int, ok bool) {
	g := l.Geometry
	dx, dy := x-l.Left, y-l.Top
	if dx < 0 || dy < 0 {
		return 0, 0, 0, false
	}
	c, col := dx/(g.Width+1), dx%(g.Width+1)
	r, line := dy/(g.Height+1), dy%(g.Height+1)
	if c >= 7 || r >= l.Weeks || col == g.Width || line == g.Height {
		return 0, 0, 0, false
	}
	return r*7 + c, col, line, true
}

// CellOrigin returns the screen cell of a grid index's top-left corner.
func (l GridLayout) CellOrigin(index int) (x, y int) {
	r, c := index/7, index%7
	return l.Left + c*(l.Geometry.Width+1), l.Top + r*(l.Geometry.Height+1)
}

// GridStyles groups the styles for the grid chrome.
type GridStyles struct {
	Weekday   lipgloss.Style
	Separator lipgloss.Style
	Cell      CellStyles
}

// RenderGrid draws the weekday header and the cells, week by week.
// len(cells) must be a multiple of 7.
func RenderGrid(cells []DayCellModel, g CellGeometry, styles GridStyles) string {
	sep := styles.Separator.Render(colSeparator)

	headers := make([]string, 0, 7)
	for _, name := range calendar.Weekdays {
		headers = append(headers, styles.Weekday.Render(fitCell(" "+name, g.Width)))
	}
	rule := styles.Separator.Render(ruleLine(g.Width))

	lines := []string{strings.Join(headers, sep), rule}
	for w := 0; w*7 < len(cells); w++ {
		if w > 0 {
			lines = append(lines, rule)
		}
		week := make([][]string, 7)
		for d := 0; d < 7; d++ {
			week[d] = strings.Split(RenderDayCell(cells[w*7+d], styles.Cell), "\n")
		}
		for row := 0; row < g.Height; row++ {
			parts := make([]string, 7)
			for d := 0; d < 7; d++ {
				parts[d] = week[d][row]
			}
			lines = append(lines, strings.Join(parts, sep))
		}
	}
	return strings.Join(lines, "\n")
}

func ruleLine(width int) string {
	seg := strings.Repeat(rowSeparator, width)
	parts := make([]string, 7)
	for i := range parts {
		parts[i] = seg
	}
	return strings.Join(parts, crossing)
}
