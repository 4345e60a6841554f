package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/config"
	"github.com/javiermolinar/stationboard/internal/dateutil"
	"github.com/javiermolinar/stationboard/internal/tui/autocomplete"
	"github.com/javiermolinar/stationboard/internal/tui/commands"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

var testNow = time.Date(2025, time.August, 20, 9, 0, 0, 0, time.Local)

func localDay(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 0, 0, 0, 0, time.Local)
}

func isoAt(month time.Month, day, hour int) string {
	return dateutil.FormatISO(time.Date(2025, month, day, hour, 0, 0, 0, time.Local))
}

func mockStations() []booking.Station {
	return []booking.Station{
		{
			ID:   "1",
			Name: "Berlin Station",
			Bookings: []booking.Booking{{
				ID: "1", StationID: "1", CustomerName: "Kera",
				StartDate: isoAt(time.August, 5, 12), EndDate: isoAt(time.August, 6, 12),
			}},
		},
		{
			ID:   "2",
			Name: "Hamburg Station",
			Bookings: []booking.Booking{{
				ID: "2", StationID: "2", CustomerName: "John",
				StartDate: isoAt(time.August, 10, 12), EndDate: isoAt(time.August, 15, 12),
				PickupStation: "Hamburg",
			}},
		},
	}
}

type fakeSource struct {
	stations []booking.Station
	err      error
	calls    int
}

func (f *fakeSource) List(context.Context) ([]booking.Station, error) {
	f.calls++
	return f.stations, f.err
}

func (f *fakeSource) Update(context.Context, booking.Station) error {
	return nil
}

func newTestModel(t *testing.T, opts ...ModelOption) Model {
	t.Helper()
	opts = append([]ModelOption{WithClock(func() time.Time { return testNow })}, opts...)
	m := *New(nil, config.Default(), opts...)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return update(t, m, commands.StationsLoadedMsg{Stations: mockStations()})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model
}

func selectStation(t *testing.T, m Model, id string) Model {
	t.Helper()
	s, ok := booking.FindStation(m.stations, id)
	if !ok {
		t.Fatalf("station %s not loaded", id)
	}
	return update(t, m, autocomplete.SelectedMsg[booking.Station]{ID: m.search.ID(), Item: s})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease}
}

// cellPoint returns the screen cell at offset col, line inside day's cell.
func cellPoint(t *testing.T, m Model, day time.Time, col, line int) (int, int) {
	t.Helper()
	for i, c := range m.month.Grid() {
		if c.Matches(day) {
			x, y := m.layout().CellOrigin(i)
			return x + col, y + line
		}
	}
	t.Fatalf("%s not in displayed month", day.Format(time.DateOnly))
	return 0, 0
}

func screen(m Model) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

func hamburgBooking(t *testing.T, m Model) booking.Booking {
	t.Helper()
	b, ok := booking.FindBooking(m.stations, booking.Handle{StationID: "2", BookingID: "2", Endpoint: booking.EndpointStart})
	if !ok {
		t.Fatal("Hamburg booking missing")
	}
	return b
}

func TestInitLoadsStationsOnce(t *testing.T) {
	src := &fakeSource{stations: mockStations()}
	m := *New(src, config.Default(), WithClock(func() time.Time { return testNow }))
	if !m.loading {
		t.Fatal("expected loading state before the first fetch")
	}

	msg := m.Init()()
	loaded, ok := msg.(commands.StationsLoadedMsg)
	if !ok {
		t.Fatalf("Init() produced %T, want StationsLoadedMsg", msg)
	}
	if src.calls != 1 {
		t.Fatalf("List called %d times, want 1", src.calls)
	}

	m = update(t, m, loaded)
	if m.loading || len(m.stations) != 2 {
		t.Fatalf("loading = %v, stations = %d", m.loading, len(m.stations))
	}
}

func TestLoadFailureKeepsListEmpty(t *testing.T) {
	src := &fakeSource{err: errors.New("network down")}
	m := *New(src, config.Default(), WithClock(func() time.Time { return testNow }))
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m = update(t, m, m.Init()())

	if len(m.stations) != 0 {
		t.Fatalf("stations = %d, want 0", len(m.stations))
	}
	if !m.statusErr || !strings.Contains(m.statusMsg, "network down") {
		t.Fatalf("status = %q (err %v)", m.statusMsg, m.statusErr)
	}
	if !strings.Contains(strings.Join(screen(m), "\n"), "Stations unavailable") {
		t.Error("expected unavailable notice on the station line")
	}
}

func TestInitialMonthIsCurrent(t *testing.T) {
	m := newTestModel(t)
	lines := screen(m)
	if !strings.Contains(lines[headerRow], "August 2025") {
		t.Fatalf("header = %q", lines[headerRow])
	}
	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		if !strings.Contains(lines[gridTop-2], day) {
			t.Errorf("weekday row missing %s: %q", day, lines[gridTop-2])
		}
	}
}

func TestSearchIndexMatchesLoadedStations(t *testing.T) {
	m := newTestModel(t)

	got, err := m.index.Search(context.Background(), "S")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Berlin Station" || got[1].Name != "Hamburg Station" {
		t.Fatalf("Search(S) = %+v", got)
	}
	if got, _ := m.index.Search(context.Background(), "berlin"); len(got) != 1 {
		t.Fatalf("Search(berlin) = %+v", got)
	}
}

func TestTypingGoesToSearchField(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("B"))
	m = update(t, m, key("e"))

	if m.search.Value() != "Be" {
		t.Fatalf("search value = %q, want Be", m.search.Value())
	}
	if m.drag.active {
		t.Fatal("typing e in the search field must not start a drag")
	}
}

func TestSelectingStationShowsBookings(t *testing.T) {
	m := selectStation(t, newTestModel(t), "1")

	out := strings.Join(screen(m), "\n")
	if !strings.Contains(out, "Selected station: Berlin Station") {
		t.Error("missing selected station line")
	}
	if !strings.Contains(out, "KERA") {
		t.Error("missing booking on the calendar")
	}
	if m.focus != focusCalendar {
		t.Error("selection should move focus to the calendar")
	}
}

func TestSelectedMsgFromOtherWidgetIgnored(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, autocomplete.SelectedMsg[booking.Station]{ID: m.search.ID() + 100, Item: mockStations()[0]})
	if _, ok := m.selection.Station(); ok {
		t.Fatal("foreign selection applied")
	}
}

func TestReloadKeepsOrDropsSelection(t *testing.T) {
	m := newTestModel(t)
	if _, ok := m.selection.Station(); ok {
		t.Fatal("new model should start without a selection")
	}

	m = selectStation(t, m, "2")
	m = update(t, m, commands.StationsLoadedMsg{Stations: mockStations()})
	if s, ok := m.selectedStation(); !ok || s.ID != "2" {
		t.Fatalf("selection lost on reload: %v, %t", s, ok)
	}

	m = update(t, m, commands.StationsLoadedMsg{Stations: mockStations()[:1]})
	if s, ok := m.selection.Station(); ok {
		t.Fatalf("selection of removed station kept: %v", s)
	}
	if _, ok := m.selectedStation(); ok {
		t.Fatal("removed station still resolves")
	}
}

func TestClickBookingOpensDetails(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")

	x, y := cellPoint(t, m, localDay(time.August, 10), 5, 1)
	m = update(t, m, press(x, y))

	if m.detail == nil {
		t.Fatal("expected booking modal")
	}
	out := strings.Join(screen(m), "\n")
	b := hamburgBooking(t, m)
	for _, want := range []string{"Booking Details", "JOHN", b.Start().Format("Mon, 02 Jan 2006 15:04"), b.End().Format("Mon, 02 Jan 2006 15:04"), "Hamburg"} {
		if !strings.Contains(out, want) {
			t.Errorf("modal missing %q", want)
		}
	}
}

func TestModalBackButtonCloses(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")
	x, y := cellPoint(t, m, localDay(time.August, 10), 5, 1)
	m = update(t, m, press(x, y))

	bx, by := -1, -1
	for i, line := range screen(m) {
		if idx := strings.Index(line, "[ Back ]"); idx >= 0 {
			bx, by = ansi.StringWidth(line[:idx]), i
			break
		}
	}
	if by < 0 {
		t.Fatal("[ Back ] not on screen")
	}

	m = update(t, m, press(bx+2, by))
	if m.detail != nil {
		t.Fatal("modal still open after clicking Back")
	}
}

func TestModalKeys(t *testing.T) {
	var copied string
	m := selectStation(t, newTestModel(t, WithClipboard(func(s string) error {
		copied = s
		return nil
	})), "2")
	m.cursor = localDay(time.August, 10)

	m = update(t, m, key("enter"))
	if m.detail == nil {
		t.Fatal("enter on a cell with bookings should open details")
	}

	m = update(t, m, key("c"))
	if !strings.HasPrefix(copied, "JOHN\n") {
		t.Fatalf("copied = %q", copied)
	}

	m = update(t, m, key("b"))
	if m.detail != nil {
		t.Fatal("b should close the modal")
	}
}

func TestCopyFailureShowsError(t *testing.T) {
	m := selectStation(t, newTestModel(t, WithClipboard(func(string) error {
		return errors.New("no clipboard")
	})), "2")
	m.cursor = localDay(time.August, 15)
	m = update(t, m, key("enter"))
	m = update(t, m, key("c"))

	if !m.statusErr || !strings.Contains(m.statusMsg, "no clipboard") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestMouseDragMovesStart(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")

	x, y := cellPoint(t, m, localDay(time.August, 10), 0, 1)
	m = update(t, m, press(x, y))
	if !m.drag.active || m.drag.handle.Endpoint != booking.EndpointStart {
		t.Fatalf("drag = %+v", m.drag)
	}

	tx, ty := cellPoint(t, m, localDay(time.August, 12), 3, 2)
	m = update(t, m, motion(tx, ty))
	if !dateutil.SameDay(m.drag.target, localDay(time.August, 12)) {
		t.Fatalf("hover target = %v", m.drag.target)
	}

	m = update(t, m, release(tx, ty))
	if m.drag.active {
		t.Fatal("drag still active after release")
	}
	b := hamburgBooking(t, m)
	if !b.StartsOn(localDay(time.August, 12)) || !b.EndsOn(localDay(time.August, 15)) {
		t.Fatalf("booking = %s .. %s", b.StartDate, b.EndDate)
	}
	if !m.dirty["2"] {
		t.Fatal("station 2 should be dirty")
	}
	if !strings.Contains(screen(m)[headerRow], "[ Update (1) ]") {
		t.Errorf("header = %q", screen(m)[headerRow])
	}
}

func TestMouseDragEndBeforeStartClamps(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")
	g := m.layout().Geometry

	x, y := cellPoint(t, m, localDay(time.August, 15), g.Width-1, 1)
	m = update(t, m, press(x, y))
	if m.drag.handle.Endpoint != booking.EndpointEnd {
		t.Fatalf("drag = %+v", m.drag)
	}

	tx, ty := cellPoint(t, m, localDay(time.August, 4), 1, 1)
	m = update(t, m, release(tx, ty))

	b := hamburgBooking(t, m)
	if !b.EndsOn(localDay(time.August, 11)) {
		t.Fatalf("end = %s, want the day after the start", b.EndDate)
	}
}

func TestReleaseOutsideGridIsNoop(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")
	before := hamburgBooking(t, m)

	x, y := cellPoint(t, m, localDay(time.August, 10), 0, 1)
	m = update(t, m, press(x, y))
	m = update(t, m, release(x, headerRow))

	if m.drag.active {
		t.Fatal("drag still active")
	}
	if hamburgBooking(t, m) != before || len(m.dirty) != 0 {
		t.Fatal("release outside the grid changed data")
	}
}

func TestDropOnSameDayIsNotDirty(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")

	x, y := cellPoint(t, m, localDay(time.August, 10), 0, 1)
	m = update(t, m, press(x, y))
	m = update(t, m, release(x+4, y+2))

	if len(m.dirty) != 0 {
		t.Fatalf("dirty = %v", m.dirty)
	}
}

func TestKeyboardDrag(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")
	m.cursor = localDay(time.August, 15)

	m = update(t, m, key("e"))
	if !m.drag.active || m.drag.mouse {
		t.Fatalf("drag = %+v", m.drag)
	}
	m = update(t, m, key("right"))
	m = update(t, m, key("right"))
	m = update(t, m, key("enter"))

	b := hamburgBooking(t, m)
	if !b.EndsOn(localDay(time.August, 17)) {
		t.Fatalf("end = %s, want Aug 17", b.EndDate)
	}
	if !m.dirty["2"] {
		t.Fatal("station 2 should be dirty")
	}
}

func TestKeyboardDragCancel(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")
	m.cursor = localDay(time.August, 10)
	before := hamburgBooking(t, m)

	m = update(t, m, key("s"))
	m = update(t, m, key("down"))
	m = update(t, m, key("esc"))

	if m.drag.active || hamburgBooking(t, m) != before {
		t.Fatal("esc should cancel without changes")
	}
}

func TestKeyboardDragNeedsHandle(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")
	m.cursor = localDay(time.August, 10)

	m = update(t, m, key("e"))
	if m.drag.active {
		t.Fatal("no end handle on Aug 10")
	}
	if !strings.Contains(m.statusMsg, "No end handle") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestMonthNavigation(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("tab"))
	if m.focus != focusCalendar {
		t.Fatal("tab should focus the calendar")
	}

	tests := []struct {
		key  string
		want string
	}{
		{"]", "September 2025"},
		{">", "October 2025"},
		{"[", "September 2025"},
		{"<", "August 2025"},
		{"<", "July 2025"},
		{"t", "August 2025"},
	}
	for _, tc := range tests {
		m = update(t, m, key(tc.key))
		if got := m.month.Label(); got != tc.want {
			t.Fatalf("after %q month = %s, want %s", tc.key, got, tc.want)
		}
	}
	if !dateutil.SameDay(m.cursor, testNow) {
		t.Fatalf("t should move the cursor to today, got %v", m.cursor)
	}
}

func TestShowMonthLogsOnlyChanges(t *testing.T) {
	var buf bytes.Buffer
	m := newTestModel(t, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	buf.Reset()

	m.showMonth(m.month)
	if strings.Contains(buf.String(), "show month") {
		t.Errorf("same month logged: %s", buf.String())
	}

	m.showMonth(m.month.Next())
	if !strings.Contains(buf.String(), `"month":"2025-09"`) {
		t.Errorf("month change not logged: %s", buf.String())
	}
}

func TestCursorCrossesMonths(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("tab"))
	m.cursor = localDay(time.August, 30)

	m = update(t, m, key("down"))
	if m.month.Label() != "September 2025" || m.cursor.Day() != 6 {
		t.Fatalf("month = %s, cursor = %v", m.month.Label(), m.cursor)
	}
	m = update(t, m, key("up"))
	if m.month.Label() != "August 2025" || m.cursor.Day() != 30 {
		t.Fatalf("month = %s, cursor = %v", m.month.Label(), m.cursor)
	}
}

func TestHeaderButtons(t *testing.T) {
	m := newTestModel(t)
	buttons := m.renderHeader().Buttons
	if len(buttons) != 4 {
		t.Fatalf("buttons = %+v", buttons)
	}

	m = update(t, m, press(buttons[1].X, headerRow))
	if m.month.Label() != "September 2025" {
		t.Fatalf("next button: month = %s", m.month.Label())
	}
	m = update(t, m, press(buttons[2].X+1, headerRow))
	if m.month.Label() != "August 2025" {
		t.Fatalf("today button: month = %s", m.month.Label())
	}
	m = update(t, m, press(buttons[0].X, headerRow))
	if m.month.Label() != "July 2025" {
		t.Fatalf("prev button: month = %s", m.month.Label())
	}
}

func TestClickSearchFieldFocusesIt(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("tab"))
	m = update(t, m, press(searchX+1, searchRow))
	if m.focus != focusSearch {
		t.Fatal("click on the field should focus search")
	}
}

func TestUpdateSavesDirtyStations(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")
	m = update(t, m, key("u"))
	if m.statusMsg != "Nothing to update" {
		t.Fatalf("status = %q", m.statusMsg)
	}

	m.cursor = localDay(time.August, 10)
	m = update(t, m, key("s"))
	m = update(t, m, key("left"))
	m = update(t, m, key("enter"))

	updated, cmd := m.Update(key("u"))
	m = updated.(Model)
	if cmd == nil || m.statusMsg != "Saving 1 station..." {
		t.Fatalf("status = %q", m.statusMsg)
	}

	m = update(t, m, commands.StationsSavedMsg{IDs: []string{"2"}})
	if len(m.dirty) != 0 || m.statusMsg != "Saved 1 station" {
		t.Fatalf("dirty = %v, status = %q", m.dirty, m.statusMsg)
	}
}

func TestErrMsgShowsStatus(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, commands.ErrMsg{Op: "saving stations", Err: errors.New("boom")})
	if !m.statusErr || m.statusMsg != "Error: saving stations: boom" {
		t.Fatalf("status = %q", m.statusMsg)
	}
	if !strings.Contains(screen(m)[39], "saving stations: boom") {
		t.Errorf("footer = %q", screen(m)[39])
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	m = update(t, m, key("tab"))
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Fatal("q should quit from the calendar")
	}
}

func TestViewFillsTerminal(t *testing.T) {
	m := selectStation(t, newTestModel(t), "2")
	lines := screen(m)
	if len(lines) != 40 {
		t.Fatalf("lines = %d, want 40", len(lines))
	}
	_, y := cellPoint(t, m, localDay(time.August, 10), 0, 1)
	if !strings.Contains(lines[y], "JOHN") {
		t.Errorf("line %d = %q", y, lines[y])
	}
}
