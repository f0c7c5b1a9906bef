package templates

import "soccer-science/stats"

// PanelFilters are the selections of one dashboard panel. Each panel keeps
// its own set.
type PanelFilters struct {
	Season      string
	League      string
	Teams       []string
	Orientation string
}

type DashboardData struct {
	Seasons []string
	Leagues []string
	Radar   PanelFilters
	Pair    PanelFilters
	Trend   PanelFilters
	// Teams offered by each panel for its current league season.
	RadarTeams []string
	PairTeams  []string
	TrendTeams []string
}

type RadarView struct {
	Result  stats.RadarResult
	SVG     string
	Message string
}

type PairView struct {
	Result   stats.PairResult
	BarsSVG  string
	SplitSVG string
	// SplitLabels hold "Team 62.5%" captions; empty when the split is undefined.
	SplitLabels []string
	Message     string
}

type TrendView struct {
	Rows    []stats.MonthlyTeamProbability
	SVG     string
	Message string
}
