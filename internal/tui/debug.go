package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/stationboard/internal/booking"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "stationboard-debug.log"

// NewDebugLogger returns a JSON logger writing to DebugLogPath when
// enabled, and a no-op logger otherwise. The returned closer is never nil.
func NewDebugLogger(enabled bool, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if !enabled {
		return zerolog.Nop(), nopCloser{}, nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("creating debug log: %w", err)
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	logger.Info().Str("log_file", DebugLogPath).Time("started", time.Now()).Msg("debug start")
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func logKeyPress(l zerolog.Logger, msg tea.KeyMsg, focus focusArea) {
	l.Debug().Str("key", msg.String()).Str("focus", focus.String()).Msg("key press")
}

func logMouse(l zerolog.Logger, msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionMotion {
		return
	}
	l.Debug().
		Int("x", msg.X).
		Int("y", msg.Y).
		Str("action", tea.MouseEvent(msg).String()).
		Msg("mouse")
}

func logDrag(l zerolog.Logger, event string, h booking.Handle, day time.Time) {
	e := l.Debug().Str("handle", h.String()).Str("station", h.StationID)
	if !day.IsZero() {
		e = e.Str("day", day.Format(time.DateOnly))
	}
	e.Msg(event)
}

func logError(l zerolog.Logger, op string, err error) {
	l.Error().Err(err).Str("op", op).Msg("command failed")
}
