package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/meditation"
	"github.com/rnwolfe/agenda/internal/planning"
	"github.com/rnwolfe/agenda/internal/version"
)

const maxBodyBytes = 1 << 20

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.DB.PingContext(ctx); err != nil {
			s.Log.Error().Err(err).Msg("database ping failed")
			writeJSON(w, s.Log, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Build: version.Get()})
			return
		}
	}
	writeJSON(w, s.Log, http.StatusOK, healthResponse{Status: "ok", Build: version.Get()})
}

type healthResponse struct {
	Status string       `json:"status"`
	Build  version.Info `json:"build"`
}

func (s *Server) today() time.Time {
	return s.Now().In(s.Location)
}

func (s *Server) streak(w http.ResponseWriter, r *http.Request) {
	info, err := s.Journal.Streak(r.Context(), s.Owner, s.today())
	if err != nil {
		s.internal(w, err)
		return
	}
	writeJSON(w, s.Log, http.StatusOK, info)
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := journal.ValidateDate(date); err != nil {
		writeError(w, s.Log, http.StatusBadRequest, err.Error())
		return
	}
	e, err := s.Journal.Entry(r.Context(), s.Owner, date)
	if err != nil {
		s.internal(w, err)
		return
	}
	writeJSON(w, s.Log, http.StatusOK, e)
}

func (s *Server) putEntry(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := journal.ValidateDate(date); err != nil {
		writeError(w, s.Log, http.StatusBadRequest, err.Error())
		return
	}

	var e journal.DailyEntry
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&e); err != nil {
		writeError(w, s.Log, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if e.Date != "" && e.Date != date {
		writeError(w, s.Log, http.StatusBadRequest, fmt.Sprintf("body date %q does not match path date %q", e.Date, date))
		return
	}
	e.Date = date

	saved, err := s.Journal.Save(r.Context(), s.Owner, e)
	if err != nil {
		s.internal(w, err)
		return
	}
	writeJSON(w, s.Log, http.StatusOK, saved)
}

func (s *Server) entryCalendar(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := journal.ValidateDate(date); err != nil {
		writeError(w, s.Log, http.StatusBadRequest, err.Error())
		return
	}
	e, err := s.Journal.Entry(r.Context(), s.Owner, date)
	if err != nil {
		s.internal(w, err)
		return
	}
	s.writeCalendar(w, "agenda-"+date+".ics", s.Formatter.Document(e))
}

func (s *Server) getWeek(w http.ResponseWriter, r *http.Request) {
	plan, err := s.Planning.Week(r.Context(), s.Owner, mux.Vars(r)["date"])
	if err != nil {
		writeError(w, s.Log, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, s.Log, http.StatusOK, plan)
}

func (s *Server) weekCalendar(w http.ResponseWriter, r *http.Request) {
	start, err := planning.WeekOf(mux.Vars(r)["date"])
	if err != nil {
		writeError(w, s.Log, http.StatusBadRequest, err.Error())
		return
	}
	from, _ := time.Parse(planning.DateLayout, start)
	to := from.AddDate(0, 0, 6).Format(planning.DateLayout)

	entries, err := s.Journal.Range(r.Context(), s.Owner, start, to)
	if err != nil {
		s.internal(w, err)
		return
	}
	s.writeCalendar(w, "agenda-semana-"+start+".ics", s.Formatter.Document(entries...))
}

func (s *Server) writeCalendar(w http.ResponseWriter, filename, doc string) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func (s *Server) calendarLink(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	link := s.Formatter.Link(q.Get("label"), q.Get("date"), q.Get("slot"))
	writeJSON(w, s.Log, http.StatusOK, map[string]string{"url": link})
}

func (s *Server) listMeditations(w http.ResponseWriter, _ *http.Request) {
	out := make([]meditation.Meditation, len(s.Meditations))
	for i, m := range s.Meditations {
		m.Script = ""
		out[i] = m
	}
	writeJSON(w, s.Log, http.StatusOK, out)
}

type meditationDetail struct {
	meditation.Meditation
	Steps []string `json:"steps"`
}

func (s *Server) getMeditation(w http.ResponseWriter, r *http.Request) {
	m, ok := meditation.Find(s.Meditations, mux.Vars(r)["id"])
	if !ok {
		writeError(w, s.Log, http.StatusNotFound, "meditation not found")
		return
	}
	writeJSON(w, s.Log, http.StatusOK, meditationDetail{Meditation: m, Steps: meditation.Steps(m.Script)})
}

func (s *Server) internal(w http.ResponseWriter, err error) {
	s.Log.Error().Stack().Err(err).Msg("request failed")
	writeError(w, s.Log, http.StatusInternalServerError, "internal error")
}
