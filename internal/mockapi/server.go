// Package mockapi serves a local stand-in for the stations API.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/store"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Store is the persistence the API serves from.
type Store interface {
	ListStations(ctx context.Context) ([]booking.Station, error)
	GetStation(ctx context.Context, id string) (booking.Station, error)
	UpsertStation(ctx context.Context, st *booking.Station) error
}

// Server routes the stations endpoints.
type Server struct {
	store  Store
	logger zerolog.Logger
	router chi.Router
}

// New creates a server backed by st.
func New(st Store, logger zerolog.Logger) *Server {
	s := &Server{store: st, logger: logger}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/stations", func(r chi.Router) {
		r.Get("/", s.listStations)
		r.Post("/", s.createStation)
		r.Get("/{id}", s.getStation)
		r.Put("/{id}", s.putStation)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// NewLogger returns a console logger for development and a JSON logger otherwise.
func NewLogger(w io.Writer, development bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if development {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Str("component", "mockapi").Logger()
}

// requestLogger writes one line per request. Wire it after RequestID.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", addr).Msg("starting mock stations API")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Info().Msg("shutting down mock stations API")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listStations(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListStations(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getStation(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.GetStation(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "station not found")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// createStation stores a new station; ids are assigned when missing.
func (s *Server) createStation(w http.ResponseWriter, r *http.Request) {
	st, ok := decodeStation(w, r)
	if !ok {
		return
	}
	if st.ID != "" {
		_, err := s.store.GetStation(r.Context(), st.ID)
		if err == nil {
			writeError(w, http.StatusConflict, "station already exists")
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			s.internalError(w, r, err)
			return
		}
	}
	if err := s.store.UpsertStation(r.Context(), &st); err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

// putStation replaces an existing station and its bookings.
func (s *Server) putStation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, ok := decodeStation(w, r)
	if !ok {
		return
	}
	if st.ID != "" && st.ID != id {
		writeError(w, http.StatusBadRequest, "id in body does not match path")
		return
	}
	st.ID = id

	if _, err := s.store.GetStation(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "station not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	if err := s.store.UpsertStation(r.Context(), &st); err != nil {
		s.internalError(w, r, err)
		return
	}
	s.logger.Debug().Str("station", id).Int("bookings", len(st.Bookings)).Msg("station updated")
	writeJSON(w, http.StatusOK, st)
}

// decodeStation reads a station body, writing a 400 on failure.
func decodeStation(w http.ResponseWriter, r *http.Request) (booking.Station, bool) {
	var st booking.Station
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return booking.Station{}, false
	}
	if st.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return booking.Station{}, false
	}
	if st.Bookings == nil {
		st.Bookings = []booking.Booking{}
	}
	return st, true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error().
		Err(err).
		Str("path", r.URL.Path).
		Str("request_id", chimiddleware.GetReqID(r.Context())).
		Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
