package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"soccer-science/charts"
	"soccer-science/dataset"
	"soccer-science/stats"
	"soccer-science/templates"
)

var errBadFilter = errors.New("bad filter")

// panelQuery holds the filters of one panel request.
type panelQuery struct {
	Season      string
	League      string
	Teams       []string
	TeamA       string
	TeamB       string
	Orientation stats.Orientation
}

// queryFromRequest reads filters from the query string or a posted form.
func (s *Server) queryFromRequest(r *http.Request) (panelQuery, error) {
	if err := r.ParseForm(); err != nil {
		return panelQuery{}, fmt.Errorf("%w: %v", errBadFilter, err)
	}
	var teams []string
	for _, t := range r.Form["teams"] {
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				teams = append(teams, part)
			}
		}
	}
	return s.newQuery(r.Form.Get("season"), r.Form.Get("league"), r.Form.Get("orientation"), teams, r.Form.Get("team_a"), r.Form.Get("team_b"))
}

// newQuery validates raw filters and fills in the dashboard defaults.
func (s *Server) newQuery(season, league, orientation string, teams []string, teamA, teamB string) (panelQuery, error) {
	q := panelQuery{
		Season: strings.TrimSpace(season),
		League: strings.TrimSpace(league),
		Teams:  teams,
		TeamA:  strings.TrimSpace(teamA),
		TeamB:  strings.TrimSpace(teamB),
	}
	if q.Season == "" {
		if seasons := s.data.Seasons(); len(seasons) > 0 {
			q.Season = seasons[0]
		}
	}
	if q.League == "" {
		q.League = dataset.Leagues[0]
	}
	if !dataset.IsAllowedLeague(q.League) {
		return q, fmt.Errorf("%w: unknown league %q", errBadFilter, q.League)
	}
	o, err := stats.ParseOrientation(orientation)
	if err != nil {
		return q, fmt.Errorf("%w: %v", errBadFilter, err)
	}
	q.Orientation = o
	return q, nil
}

// pairTeams resolves the two pair teams, falling back to the first two
// teams of the league season.
func (s *Server) pairTeams(q panelQuery) (string, string, error) {
	a, b := q.TeamA, q.TeamB
	if a != "" && b != "" {
		return a, b, nil
	}
	teams := s.data.Teams(q.League, q.Season)
	if len(teams) < 2 {
		return "", "", stats.ErrNoData
	}
	if a == "" {
		a = teams[0]
	}
	if b == "" {
		b = teams[1]
		if b == a {
			b = teams[0]
		}
	}
	return a, b, nil
}

func (s *Server) radar(q panelQuery) (stats.RadarResult, error) {
	return stats.RadarAverages(s.data.Slice(q.League, q.Season), q.League, q.Season, q.Orientation, q.Teams)
}

func (s *Server) pair(q panelQuery) (stats.PairResult, error) {
	a, b, err := s.pairTeams(q)
	if err != nil {
		return stats.PairResult{League: q.League, Season: q.Season}, err
	}
	return stats.PairStats(s.data.Slice(q.League, q.Season), q.League, q.Season, a, b)
}

func (s *Server) trend(q panelQuery) ([]stats.MonthlyTeamProbability, error) {
	rows := stats.MonthlyTrend(s.data.Slice(q.League, q.Season), q.League, q.Season, q.Orientation, q.Teams)
	if len(rows) == 0 {
		return nil, stats.ErrNoData
	}
	return rows, nil
}

// panelData computes the JSON aggregate of a named panel.
func (s *Server) panelData(panel string, q panelQuery) (any, error) {
	switch panel {
	case "radar":
		return s.radar(q)
	case "pair":
		return s.pair(q)
	case "trend":
		return s.trend(q)
	}
	return nil, fmt.Errorf("%w: unknown panel %q", errBadFilter, panel)
}

// noDataMessage is the informational text shown for an expected empty
// outcome.
func noDataMessage(err error, q panelQuery) string {
	switch {
	case errors.Is(err, stats.ErrNoMatchFound):
		return "No matches found between the selected teams."
	case errors.Is(err, stats.ErrSameTeam):
		return "Select two different teams to compare."
	case errors.Is(err, stats.ErrNoData):
		return fmt.Sprintf("No data available for %s in %s.", q.League, q.Season)
	}
	return ""
}

func (s *Server) radarView(q panelQuery) (templates.RadarView, error) {
	res, err := s.radar(q)
	if msg := noDataMessage(err, q); msg != "" {
		return templates.RadarView{Message: msg}, nil
	}
	if err != nil {
		return templates.RadarView{}, err
	}
	svg, err := charts.Radar(res)
	if errors.Is(err, charts.ErrNothingToPlot) {
		return templates.RadarView{Message: "No radar metrics available for this selection."}, nil
	}
	if err != nil {
		return templates.RadarView{}, err
	}
	return templates.RadarView{Result: res, SVG: string(svg)}, nil
}

func (s *Server) pairView(q panelQuery) (templates.PairView, error) {
	res, err := s.pair(q)
	if errors.Is(err, stats.ErrNoData) && q.TeamA == "" {
		return templates.PairView{Message: "Not enough teams in the selected league and year to display comparison."}, nil
	}
	if msg := noDataMessage(err, q); msg != "" {
		return templates.PairView{Message: msg}, nil
	}
	if err != nil {
		return templates.PairView{}, err
	}

	v := templates.PairView{Result: res}
	bars, err := charts.PairBars(res)
	if errors.Is(err, charts.ErrNothingToPlot) {
		return templates.PairView{Message: "No match statistics recorded for these games."}, nil
	}
	if err != nil {
		return templates.PairView{}, err
	}
	v.BarsSVG = string(bars)

	split, err := charts.PairSplit(res)
	switch {
	case errors.Is(err, charts.ErrDegenerateSplit):
	case err != nil:
		return templates.PairView{}, err
	default:
		v.SplitSVG = string(split)
		v.SplitLabels = []string{
			res.TeamA + " " + charts.Percent(res.Split.ShareA),
			res.TeamB + " " + charts.Percent(res.Split.ShareB),
		}
	}
	return v, nil
}

func (s *Server) trendView(q panelQuery) (templates.TrendView, error) {
	rows, err := s.trend(q)
	if errors.Is(err, stats.ErrNoData) {
		return templates.TrendView{Message: fmt.Sprintf("No %s games for the selected teams in %s.", q.Orientation, q.Season)}, nil
	}
	if err != nil {
		return templates.TrendView{}, err
	}
	svg, err := charts.Trend(rows)
	if errors.Is(err, charts.ErrNothingToPlot) {
		return templates.TrendView{Rows: rows, Message: "No win probabilities recorded for the selected teams."}, nil
	}
	if err != nil {
		return templates.TrendView{}, err
	}
	return templates.TrendView{Rows: rows, SVG: string(svg)}, nil
}

// dashboardData is the initial state of the page: first season, first
// league and Home for every panel.
func (s *Server) dashboardData() templates.DashboardData {
	d := templates.DashboardData{
		Seasons: s.data.Seasons(),
		Leagues: s.data.Leagues(),
	}
	var season string
	if len(d.Seasons) > 0 {
		season = d.Seasons[0]
	}
	league := dataset.Leagues[0]
	home := stats.Home.String()
	teams := s.data.Teams(league, season)

	d.Radar = templates.PanelFilters{Season: season, League: league, Orientation: home}
	d.RadarTeams = teams

	d.Pair = templates.PanelFilters{Season: season, League: league}
	d.PairTeams = teams

	d.Trend = templates.PanelFilters{
		Season:      season,
		League:      league,
		Orientation: home,
		Teams:       stats.DefaultTrendTeams(s.data.Slice(league, season), league, season),
	}
	d.TrendTeams = teams
	return d
}
