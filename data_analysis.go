package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"soccer-science/charts"
	"soccer-science/stats"
)

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusOf maps aggregation errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadFilter), errors.Is(err, stats.ErrSameTeam):
		return http.StatusBadRequest
	case errors.Is(err, stats.ErrNoData), errors.Is(err, stats.ErrNoMatchFound),
		errors.Is(err, charts.ErrNothingToPlot), errors.Is(err, charts.ErrDegenerateSplit):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) apiFail(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("❌ api request failed")
	}
	writeJSON(w, status, apiError{Error: err.Error()})
}

type teamsResponse struct {
	League string   `json:"league"`
	Season string   `json:"season"`
	Teams  []string `json:"teams"`
}

func (s *Server) apiTeamsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := s.queryFromRequest(r)
	if err != nil {
		s.apiFail(w, err)
		return
	}
	teams := s.data.Teams(q.League, q.Season)
	if teams == nil {
		teams = []string{}
	}
	writeJSON(w, http.StatusOK, teamsResponse{League: q.League, Season: q.Season, Teams: teams})
}

// apiPanelHandler returns the aggregate table behind a panel as JSON.
func (s *Server) apiPanelHandler(w http.ResponseWriter, r *http.Request) {
	q, err := s.queryFromRequest(r)
	if err != nil {
		s.apiFail(w, err)
		return
	}
	data, err := s.panelData(mux.Vars(r)["panel"], q)
	if err != nil {
		s.apiFail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// chartHandler serves one chart as a standalone SVG document.
func (s *Server) chartHandler(w http.ResponseWriter, r *http.Request) {
	q, err := s.queryFromRequest(r)
	if err != nil {
		s.apiFail(w, err)
		return
	}

	var svg []byte
	switch mux.Vars(r)["kind"] {
	case "radar":
		var res stats.RadarResult
		if res, err = s.radar(q); err == nil {
			svg, err = charts.Radar(res)
		}
	case "bars", "split":
		var res stats.PairResult
		if res, err = s.pair(q); err == nil {
			if mux.Vars(r)["kind"] == "bars" {
				svg, err = charts.PairBars(res)
			} else {
				svg, err = charts.PairSplit(res)
			}
		}
	case "trend":
		var rows []stats.MonthlyTeamProbability
		if rows, err = s.trend(q); err == nil {
			svg, err = charts.Trend(rows)
		}
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.apiFail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

type healthResponse struct {
	Status  string   `json:"status"`
	Rows    int      `json:"rows"`
	Seasons []string `json:"seasons"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Rows: s.data.Len(), Seasons: s.data.Seasons()})
}
