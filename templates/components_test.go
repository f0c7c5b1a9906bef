package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soccer-science/dataset"
	"soccer-science/stats"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestDashboard_ThreeIndependentPanels(t *testing.T) {
	out := renderString(t, Dashboard(DashboardData{
		Seasons:    []string{"2021", "2020"},
		Leagues:    []string{"Barclays Premier League", "French Ligue 1"},
		Radar:      PanelFilters{Season: "2021", League: "Barclays Premier League", Orientation: "Away"},
		Pair:       PanelFilters{Season: "2020", League: "French Ligue 1"},
		Trend:      PanelFilters{Season: "2021", League: "Barclays Premier League", Teams: []string{"Arsenal"}},
		RadarTeams: []string{"Arsenal", "Chelsea"},
		PairTeams:  []string{"Lyon", "Nice"},
		TrendTeams: []string{"Arsenal", "Chelsea"},
	}))

	for _, panel := range []string{"radar", "pair", "trend"} {
		assert.Contains(t, out, `hx-post="/`+panel+`"`)
		assert.Contains(t, out, `id="`+panel+`-results"`)
		assert.Contains(t, out, `hx-get="/fragments/teams?panel=`+panel+`"`)
	}
	assert.Contains(t, out, `<option value="2020" selected>2020</option>`)
	assert.Contains(t, out, `value="Away" checked`)
	assert.Contains(t, out, `<option value="Arsenal" selected>Arsenal</option>`)
	assert.Contains(t, out, `name="team_a"`)
}

func TestTeamPicker_Pair(t *testing.T) {
	out := renderString(t, TeamPicker("pair", []string{"Lyon", "Nice", "Lens"}, []string{"Nice"}))
	assert.Contains(t, out, `<option value="Nice" selected>Nice</option>`)
	// Team 2 never offers the team picked as Team 1.
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte(`value="Nice"`)))
	assert.Contains(t, out, `name="team_a" id="pair-team-a" hx-get="/fragments/teams?panel=pair"`)

	out = renderString(t, TeamPicker("pair", []string{"Lyon"}, nil))
	assert.Contains(t, out, "Not enough teams")
}

func TestMessage_Escapes(t *testing.T) {
	out := renderString(t, Message(`<script>alert("x")</script>`))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRadarResults(t *testing.T) {
	res := stats.RadarResult{
		League:        "Italy Serie A",
		Season:        "2021",
		Orientation:   "Home",
		LeagueAverage: stats.Averages{stats.Score: dataset.Num(1.5)},
		Teams: []stats.TeamAverages{
			{Team: "Roma", Matches: 2, Averages: stats.Averages{stats.Score: dataset.Num(2)}},
		},
		Missing: []string{"Lazio"},
	}
	out := renderString(t, RadarResults(RadarView{Result: res, SVG: "<svg></svg>"}))
	assert.Contains(t, out, "<svg></svg>")
	assert.Contains(t, out, "League Average")
	assert.Contains(t, out, "2.00")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "No Home games for Lazio in 2021.")

	out = renderString(t, RadarResults(RadarView{Message: "No data available"}))
	assert.Contains(t, out, "No data available")
	assert.NotContains(t, out, "<table")
}

func TestPairResults(t *testing.T) {
	v := PairView{
		Result:      stats.PairResult{TeamA: "Lyon", TeamB: "Nice", Matches: 2},
		BarsSVG:     "<svg id=\"bars\"></svg>",
		SplitSVG:    "<svg id=\"split\"></svg>",
		SplitLabels: []string{"Lyon 75.0%", "Nice 25.0%"},
	}
	out := renderString(t, PairResults(v))
	assert.Contains(t, out, `<svg id="bars">`)
	assert.Contains(t, out, "Lyon 75.0%")
	assert.Contains(t, out, "2 game(s) between Lyon and Nice.")

	v.SplitSVG, v.SplitLabels = "", nil
	out = renderString(t, PairResults(v))
	assert.Contains(t, out, "Pre-match split unavailable")
}

func TestTrendResults(t *testing.T) {
	out := renderString(t, TrendResults(TrendView{SVG: "<svg></svg>"}))
	assert.Contains(t, out, "<figure")

	out = renderString(t, TrendResults(TrendView{Message: "No Away games"}))
	assert.Contains(t, out, "No Away games")
}
