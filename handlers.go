package main

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"soccer-science/stats"
	"soccer-science/templates"
)

func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		s.log.WithError(err).Error("❌ render failed")
	}
}

// fragmentError answers a panel post that could not be computed.
func (s *Server) fragmentError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBadFilter) {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, templates.Message(err.Error()))
		return
	}
	s.log.WithError(err).Error("❌ panel failed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, templates.Dashboard(s.dashboardData()))
}

// teamsFragmentHandler swaps a panel's team picker after its season or
// league changed.
func (s *Server) teamsFragmentHandler(w http.ResponseWriter, r *http.Request) {
	q, err := s.queryFromRequest(r)
	if err != nil {
		s.fragmentError(w, r, err)
		return
	}
	panel := r.URL.Query().Get("panel")
	teams := s.data.Teams(q.League, q.Season)

	var selected []string
	switch panel {
	case "trend":
		selected = stats.DefaultTrendTeams(s.data.Slice(q.League, q.Season), q.League, q.Season)
	case "pair":
		if a := r.Form.Get("team_a"); a != "" {
			selected = []string{a, r.Form.Get("team_b")}
		}
	case "radar":
	default:
		s.fragmentError(w, r, errBadFilter)
		return
	}
	s.render(w, r, templates.TeamPicker(panel, teams, selected))
}

func (s *Server) radarPanelHandler(w http.ResponseWriter, r *http.Request) {
	q, err := s.queryFromRequest(r)
	if err != nil {
		s.fragmentError(w, r, err)
		return
	}
	v, err := s.radarView(q)
	if err != nil {
		s.fragmentError(w, r, err)
		return
	}
	s.render(w, r, templates.RadarResults(v))
}

func (s *Server) pairPanelHandler(w http.ResponseWriter, r *http.Request) {
	q, err := s.queryFromRequest(r)
	if err != nil {
		s.fragmentError(w, r, err)
		return
	}
	v, err := s.pairView(q)
	if err != nil {
		s.fragmentError(w, r, err)
		return
	}
	s.render(w, r, templates.PairResults(v))
}

func (s *Server) trendPanelHandler(w http.ResponseWriter, r *http.Request) {
	q, err := s.queryFromRequest(r)
	if err != nil {
		s.fragmentError(w, r, err)
		return
	}
	v, err := s.trendView(q)
	if err != nil {
		s.fragmentError(w, r, err)
		return
	}
	s.render(w, r, templates.TrendResults(v))
}
