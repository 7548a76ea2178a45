// Package server exposes the journal over a small JSON HTTP API, including
// calendar exports of daily and weekly schedules.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rnwolfe/agenda/internal/calendar"
	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/meditation"
	"github.com/rnwolfe/agenda/internal/planning"
	"github.com/rs/zerolog"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the services the API is built on.
type Deps struct {
	Journal     *journal.Store
	Planning    *planning.Store
	Formatter   *calendar.Formatter
	Meditations []meditation.Meditation
	DB          Pinger
	Owner       string
	Location    *time.Location
	Now         func() time.Time
	Log         zerolog.Logger
}

// Server is the HTTP API.
type Server struct {
	Deps
	router *mux.Router
}

// New builds the router.
func New(d Deps) *Server {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	s := &Server{Deps: d, router: mux.NewRouter()}

	r := s.router
	r.Use(recoverer(d.Log))
	r.Use(requestLogger(d.Log))

	r.HandleFunc("/api/health", s.health).Methods("GET")
	r.HandleFunc("/api/streak", s.streak).Methods("GET")
	r.HandleFunc("/api/entries/{date}", s.getEntry).Methods("GET")
	r.HandleFunc("/api/entries/{date}", s.putEntry).Methods("PUT")
	r.HandleFunc("/api/entries/{date}/calendar.ics", s.entryCalendar).Methods("GET")
	r.HandleFunc("/api/week/{date}", s.getWeek).Methods("GET")
	r.HandleFunc("/api/week/{date}/calendar.ics", s.weekCalendar).Methods("GET")
	r.HandleFunc("/api/calendar-link", s.calendarLink).Methods("GET")
	r.HandleFunc("/api/meditations", s.listMeditations).Methods("GET")
	r.HandleFunc("/api/meditations/{id}", s.getMeditation).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, d.Log, http.StatusNotFound, "no such endpoint")
	})
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves h on addr until ctx is canceled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("agenda API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Stack().Err(err).Msg("server forced to shutdown")
			return err
		}
		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}
