// Package tui provides the terminal booking dashboard.
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/calendar"
	"github.com/javiermolinar/stationboard/internal/config"
	"github.com/javiermolinar/stationboard/internal/dateutil"
	"github.com/javiermolinar/stationboard/internal/stations"
	"github.com/javiermolinar/stationboard/internal/tui/autocomplete"
	"github.com/javiermolinar/stationboard/internal/tui/commands"
	"github.com/javiermolinar/stationboard/internal/tui/theme"
)

// SearchPlaceholder is shown in the empty station field.
const SearchPlaceholder = "Select a station..."

// focusArea is the part of the screen receiving keys.
type focusArea int

const (
	focusSearch focusArea = iota
	focusCalendar
)

func (f focusArea) String() string {
	if f == focusSearch {
		return "search"
	}
	return "calendar"
}

// dragState is an in-progress reschedule. target is the hovered day, or
// the zero time when the pointer is not over a day cell.
type dragState struct {
	active bool
	mouse  bool
	handle booking.Handle
	target time.Time
}

// bookingRef identifies the booking shown in the detail modal.
type bookingRef struct {
	stationID string
	bookingID string
}

// stationIndex is the list the autocomplete searches. Fetches run off the
// update loop, so access is guarded.
type stationIndex struct {
	mu       sync.RWMutex
	stations []booking.Station
}

func (x *stationIndex) Set(list []booking.Station) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.stations = list
}

func (x *stationIndex) Search(_ context.Context, query string) ([]booking.Station, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return booking.Search(x.stations, query), nil
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	source  stations.Source
	config  *config.Config
	logger  zerolog.Logger
	timeout time.Duration
	nowFunc func() time.Time
	copyFn  func(string) error

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Data
	stations []booking.Station
	index    *stationIndex
	loading  bool
	loadErr  error
	dirty    map[string]bool

	// State
	month     calendar.Month
	cursor    time.Time // Day under the keyboard cursor
	focus     focusArea
	selection booking.Selection
	drag      dragState
	detail    *bookingRef

	// Components
	search autocomplete.Model[booking.Station]

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusErr  bool      // Render the status as an error
	statusTime time.Time // When to clear message
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger for drag events, fetches and errors.
func WithLogger(l zerolog.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// WithClock replaces time.Now, which decides the initial month and today.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.nowFunc = now
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(copyFn func(string) error) ModelOption {
	return func(m *Model) {
		if copyFn != nil {
			m.copyFn = copyFn
		}
	}
}

// New creates a new TUI model.
func New(src stations.Source, cfg *config.Config, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	m := &Model{
		source:  src,
		config:  cfg,
		logger:  zerolog.Nop(),
		timeout: cfg.Timeout(),
		nowFunc: time.Now,
		copyFn:  clipboard.WriteAll,
		theme:   t,
		styles:  styles,
		index:   &stationIndex{},
		loading: src != nil,
		dirty:   make(map[string]bool),
		focus:   focusSearch,

		selection: booking.NoSelection(),
	}
	for _, opt := range opts {
		opt(m)
	}

	today := dateutil.TruncateToDay(m.nowFunc())
	m.month = calendar.MonthOf(today)
	m.cursor = today

	m.search = autocomplete.New(
		m.index.Search,
		func(s booking.Station) string { return s.Name },
		autocomplete.WithPlaceholder[booking.Station](SearchPlaceholder),
		autocomplete.WithDebounce[booking.Station](cfg.Debounce()),
		autocomplete.WithMaxVisible[booking.Station](cfg.UI.MaxSuggestions),
		autocomplete.WithWidth[booking.Station](searchWidth),
		autocomplete.WithLogger[booking.Station](m.logger.With().Str("component", "autocomplete").Logger()),
		autocomplete.WithStyles[booking.Station](styles.Autocomplete()),
	)
	m.search.SetOrigin(searchX, searchRow)
	m.search.Focus()

	return m
}

// Init loads the station list once.
func (m Model) Init() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return commands.LoadStations(m.source, m.timeout)
}

// Run starts the TUI with optional debug logging.
func Run(src stations.Source, cfg *config.Config, debug bool) error {
	if cfg == nil {
		cfg = config.Default()
	}
	logger, closer, err := NewDebugLogger(debug, cfg.LogLevel())
	if err != nil {
		return err
	}
	defer closer.Close()

	model := New(src, cfg, WithLogger(logger))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
