// Package autocomplete provides a debounced search field with a suggestion
// dropdown for bubbletea programs.
//
// Every keystroke updates the text immediately and restarts a quiet-period
// timer. When the timer fires with the input unchanged, the fetch function
// runs with the current value and its results replace the list. Timers and
// fetch results are tagged with a sequence number so anything superseded is
// dropped on arrival.
package autocomplete

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

const (
	// DefaultDebounce is the quiet period before a fetch.
	DefaultDebounce = 300 * time.Millisecond
	// DefaultMaxVisible is the number of dropdown rows shown at once.
	DefaultMaxVisible = 6

	defaultWidth = 32
)

// Row texts for dropdowns without selectable items.
const (
	NoResultsText    = "No results"
	SearchFailedText = "Search failed"
)

// FetchFunc returns the suggestions for a query.
type FetchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// SelectedMsg is emitted once each time the user commits a suggestion.
type SelectedMsg[T any] struct {
	ID   int
	Item T
}

type debounceMsg struct {
	id  int
	seq int
}

type resultsMsg[T any] struct {
	id    int
	seq   int
	query string
	items []T
	err   error
}

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// Model is the autocomplete component.
type Model[T any] struct {
	id     int
	input  textinput.Model
	fetch  FetchFunc[T]
	label  func(T) string
	logger zerolog.Logger
	styles Styles

	debounce   time.Duration
	maxVisible int
	width      int

	// seq bumps on every edit; a timer only fires a fetch when it still
	// carries the current value. fetchSeq is the sequence of the last
	// issued fetch, or -1 when none may be applied.
	seq      int
	fetchSeq int

	items     []T
	open      bool
	failed    bool
	highlight int
	offset    int

	originX int
	originY int
}

// Option configures a Model.
type Option[T any] func(*Model[T])

// WithPlaceholder sets the input placeholder.
func WithPlaceholder[T any](s string) Option[T] {
	return func(m *Model[T]) {
		m.input.Placeholder = s
	}
}

// WithDebounce sets the quiet period before a fetch.
func WithDebounce[T any](d time.Duration) Option[T] {
	return func(m *Model[T]) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// WithMaxVisible sets how many rows the dropdown shows before scrolling.
func WithMaxVisible[T any](n int) Option[T] {
	return func(m *Model[T]) {
		if n > 0 {
			m.maxVisible = n
		}
	}
}

// WithWidth sets the total width of the field and dropdown.
func WithWidth[T any](w int) Option[T] {
	return func(m *Model[T]) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithLogger sets the logger for fetch results and failures.
func WithLogger[T any](l zerolog.Logger) Option[T] {
	return func(m *Model[T]) {
		m.logger = l
	}
}

// WithStyles replaces the default styles.
func WithStyles[T any](s Styles) Option[T] {
	return func(m *Model[T]) {
		m.styles = s
	}
}

// New creates an autocomplete that fetches suggestions with fetch and
// shows each one as label(item).
func New[T any](fetch FetchFunc[T], label func(T) string, opts ...Option[T]) Model[T] {
	ti := textinput.New()
	ti.Prompt = ""

	m := Model[T]{
		id:         nextID(),
		input:      ti,
		fetch:      fetch,
		label:      label,
		logger:     zerolog.Nop(),
		styles:     DefaultStyles(),
		debounce:   DefaultDebounce,
		maxVisible: DefaultMaxVisible,
		width:      defaultWidth,
		fetchSeq:   -1,
		highlight:  -1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.input.Width = max(1, m.width-1)
	m.input.PlaceholderStyle = m.styles.Placeholder
	m.input.TextStyle = m.styles.Input
	return m
}

// ID returns the instance id carried by this component's messages.
func (m Model[T]) ID() int {
	return m.id
}

// Value returns the current input text.
func (m Model[T]) Value() string {
	return m.input.Value()
}

// IsOpen reports whether the dropdown is visible.
func (m Model[T]) IsOpen() bool {
	return m.open
}

// Items returns the current suggestions.
func (m Model[T]) Items() []T {
	return m.items
}

// Highlighted returns the highlighted index, or -1.
func (m Model[T]) Highlighted() int {
	return m.highlight
}

// Focused reports whether the input has focus.
func (m Model[T]) Focused() bool {
	return m.input.Focused()
}

// Focus gives the input keyboard focus.
func (m *Model[T]) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes focus, closes the dropdown and drops any pending timer.
func (m *Model[T]) Blur() {
	m.input.Blur()
	m.invalidate()
	m.close()
}

// Reset clears the input and suggestions and drops any pending timer.
func (m *Model[T]) Reset() {
	m.input.Reset()
	m.invalidate()
	m.items = nil
	m.failed = false
	m.close()
}

// SetValue replaces the input text without fetching.
func (m *Model[T]) SetValue(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
	m.invalidate()
}

// SetOrigin records the screen cell of the widget's top-left corner so
// mouse events can be mapped onto it.
func (m *Model[T]) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Width returns the rendered width.
func (m Model[T]) Width() int {
	return m.width
}

// Height returns the rendered height in lines.
func (m Model[T]) Height() int {
	return 1 + m.dropdownRows()
}

func (m Model[T]) dropdownRows() int {
	if !m.open {
		return 0
	}
	if len(m.items) == 0 {
		return 1
	}
	return min(len(m.items), m.maxVisible)
}

func (m *Model[T]) invalidate() {
	m.seq++
	m.fetchSeq = -1
}

func (m *Model[T]) close() {
	m.open = false
	m.highlight = -1
	m.offset = 0
}

// Update handles keyboard, mouse, timer and fetch messages.
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != m.id || msg.seq != m.seq {
			return m, nil
		}
		m.fetchSeq = msg.seq
		return m, m.fetchCmd(msg.seq, m.input.Value())

	case resultsMsg[T]:
		if msg.id != m.id || msg.seq != m.fetchSeq {
			m.logger.Debug().Int("seq", msg.seq).Str("query", msg.query).Msg("discarding stale suggestions")
			return m, nil
		}
		m.fetchSeq = -1
		m.applyResults(msg)
		return m, nil

	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model[T]) handleKey(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	switch msg.String() {
	case "down":
		if m.open && len(m.items) > 0 {
			m.highlight = (m.highlight + 1) % len(m.items)
			m.scrollToHighlight()
		}
		return m, nil
	case "up":
		if m.open && len(m.items) > 0 {
			if m.highlight <= 0 {
				m.highlight = len(m.items) - 1
			} else {
				m.highlight--
			}
			m.scrollToHighlight()
		}
		return m, nil
	case "enter":
		if m.open && m.highlight >= 0 && m.highlight < len(m.items) {
			return m.commit(m.highlight)
		}
		return m, nil
	case "esc":
		if m.open {
			m.close()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.changed())
}

// changed restarts the quiet period after an edit.
func (m *Model[T]) changed() tea.Cmd {
	m.invalidate()
	if m.input.Value() == "" {
		m.items = nil
		m.failed = false
		m.close()
		return nil
	}
	id, seq := m.id, m.seq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: seq}
	})
}

func (m Model[T]) fetchCmd(seq int, query string) tea.Cmd {
	id, fetch := m.id, m.fetch
	m.logger.Debug().Int("seq", seq).Str("query", query).Msg("fetching suggestions")
	return func() tea.Msg {
		if fetch == nil {
			return resultsMsg[T]{id: id, seq: seq, query: query}
		}
		items, err := fetch(context.Background(), query)
		return resultsMsg[T]{id: id, seq: seq, query: query, items: items, err: err}
	}
}

func (m *Model[T]) applyResults(msg resultsMsg[T]) {
	m.highlight = -1
	m.offset = 0
	m.open = true
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("query", msg.query).Msg("suggestion fetch failed")
		m.items = nil
		m.failed = true
		return
	}
	m.failed = false
	m.items = msg.items
	m.logger.Debug().Str("query", msg.query).Int("results", len(msg.items)).Msg("suggestions loaded")
}

func (m Model[T]) commit(i int) (Model[T], tea.Cmd) {
	item := m.items[i]
	m.SetValue(m.label(item))
	m.close()
	id := m.id
	return m, func() tea.Msg {
		return SelectedMsg[T]{ID: id, Item: item}
	}
}

// scrollToHighlight keeps the highlighted row inside the visible window,
// moving the window as little as possible.
func (m *Model[T]) scrollToHighlight() {
	if m.highlight < 0 {
		return
	}
	if m.highlight < m.offset {
		m.offset = m.highlight
	}
	if m.highlight >= m.offset+m.maxVisible {
		m.offset = m.highlight - m.maxVisible + 1
	}
}

func (m Model[T]) handleMouse(msg tea.MouseMsg) (Model[T], tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.Contains(msg.X, msg.Y) {
		if m.open {
			m.close()
		}
		return m, nil
	}
	if i, ok := m.rowAt(msg.Y); ok {
		return m.commit(i)
	}
	return m, nil
}

// Contains reports whether the screen cell x, y lies on the widget.
func (m Model[T]) Contains(x, y int) bool {
	return x >= m.originX && x < m.originX+m.width &&
		y >= m.originY && y < m.originY+m.Height()
}

// rowAt maps a screen line to an item index.
func (m Model[T]) rowAt(y int) (int, bool) {
	if !m.open || len(m.items) == 0 {
		return 0, false
	}
	row := y - m.originY - 1
	if row < 0 || row >= m.dropdownRows() {
		return 0, false
	}
	i := m.offset + row
	if i >= len(m.items) {
		return 0, false
	}
	return i, true
}
