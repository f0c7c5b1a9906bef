package charts

import (
	"encoding/xml"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soccer-science/dataset"
	"soccer-science/stats"
)

func pairResult() stats.PairResult {
	return stats.PairResult{
		TeamA: "Lyon", TeamB: "Lille", Matches: 2,
		StatsA: stats.Averages{
			stats.Score: dataset.Num(2.5), stats.XG: dataset.Num(1.9),
			stats.ProjScore: dataset.Num(1.6), stats.NSXG: dataset.Num(1.5),
		},
		StatsB: stats.Averages{
			stats.Score: dataset.Num(0.5), stats.XG: dataset.Num(0.8),
			stats.ProjScore: dataset.Num(1.1), stats.NSXG: dataset.Num(0.5),
		},
		Split: stats.ShareOf(1.5, 0.5),
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "75.0%", Percent(0.75))
	assert.Equal(t, "33.3%", Percent(1.0/3))
	assert.Equal(t, "100.0%", Percent(1))
}

func TestNiceMax(t *testing.T) {
	assert.Equal(t, 1.0, niceMax(0))
	assert.Equal(t, 1.0, niceMax(0.4))
	assert.Equal(t, 3.0, niceMax(2.5))
	assert.Equal(t, 60.0, niceMax(52))
}

func TestPairBars(t *testing.T) {
	svg, err := PairBars(pairResult())
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "Match Statistics")

	_, err = PairBars(stats.PairResult{TeamA: "A", TeamB: "B"})
	assert.ErrorIs(t, err, ErrNothingToPlot)
}

func TestPairSplit(t *testing.T) {
	svg, err := PairSplit(pairResult())
	require.NoError(t, err)
	assert.Contains(t, string(svg), "Lyon 75.0%")

	res := pairResult()
	res.Split = stats.ShareOf(0, 0)
	_, err = PairSplit(res)
	assert.ErrorIs(t, err, ErrDegenerateSplit)
}

func TestTrend(t *testing.T) {
	rows := []stats.MonthlyTeamProbability{
		{Month: time.January, Team: "Lyon", Probability: dataset.Num(0.55)},
		{Month: time.March, Team: "Lyon", Probability: dataset.Num(0.61)},
		{Month: time.March, Team: "Lille", Probability: dataset.Num(0.42)},
	}
	svg, err := Trend(rows)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "Lille")

	_, err = Trend([]stats.MonthlyTeamProbability{{Month: time.May, Team: "Lyon"}})
	assert.ErrorIs(t, err, ErrNothingToPlot)
}

func TestRadar(t *testing.T) {
	res := stats.RadarResult{
		League: "French Ligue 1", Season: "2020",
		LeagueAverage: stats.Averages{
			stats.ProjScore: dataset.Num(1.4), stats.Score: dataset.Num(1.3),
			stats.XG: dataset.Num(1.2), stats.NSXG: dataset.Num(1.25), stats.AdjScore: dataset.Num(1.2),
		},
		Teams: []stats.TeamAverages{{Team: "Lyon", Averages: stats.Averages{
			stats.ProjScore: dataset.Num(1.9), stats.Score: dataset.Num(2.1),
			stats.XG: {}, stats.NSXG: dataset.Num(1.7), stats.AdjScore: dataset.Num(2.0),
		}}},
	}
	svg, err := Radar(res)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "League Average")
	assert.Contains(t, string(svg), "Lyon (no xG)")
	// No dot at the radar centre for the absent xG.
	assert.NotContains(t, string(svg), `cx="400" cy="430"`)

	_, err = Radar(stats.RadarResult{})
	assert.ErrorIs(t, err, ErrNothingToPlot)
}

const awkwardName = "Brighton & Hove <A>"

// requireWellFormed decodes the whole document, failing on any XML error.
func requireWellFormed(t *testing.T, svg []byte) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestCharts_EscapeTeamNames(t *testing.T) {
	res := pairResult()
	res.TeamA = awkwardName

	bars, err := PairBars(res)
	require.NoError(t, err)
	split, err := PairSplit(res)
	require.NoError(t, err)
	trend, err := Trend([]stats.MonthlyTeamProbability{
		{Month: time.April, Team: awkwardName, Probability: dataset.Num(0.5)},
	})
	require.NoError(t, err)
	radar, err := Radar(stats.RadarResult{
		League:        "Barclays Premier League",
		Season:        "2021",
		LeagueAverage: stats.Averages{stats.Score: dataset.Num(1.2)},
		Teams:         []stats.TeamAverages{{Team: awkwardName, Averages: stats.Averages{stats.Score: dataset.Num(1.8)}}},
	})
	require.NoError(t, err)

	for name, svg := range map[string][]byte{"bars": bars, "split": split, "trend": trend, "radar": radar} {
		t.Run(name, func(t *testing.T) {
			requireWellFormed(t, svg)
			// Bar labels wrap by word, so check the escaped pieces.
			assert.NotContains(t, string(svg), "<A>")
			assert.Contains(t, string(svg), "&amp;")
			assert.Contains(t, string(svg), "&lt;A&gt;")
		})
	}
}

func TestRadarGeometry_AbsentAxisHasNoVertex(t *testing.T) {
	g := radarGeometry{cx: 400, cy: 430, axes: 5, low: 0, high: 3}
	values := radarValues(stats.Averages{
		stats.ProjScore: dataset.Num(1.9), stats.Score: dataset.Num(2.1),
		stats.NSXG: dataset.Num(1.7), stats.AdjScore: dataset.Num(2.0),
	})
	require.True(t, math.IsNaN(values[2]), "xG is absent")

	vs := g.vertices(values)
	require.Len(t, vs, 4)
	for _, v := range vs {
		assert.NotEqual(t, 2, v.axis)
		assert.False(t, v.x == g.cx && v.y == g.cy, "vertex drawn at the centre")
	}
	assert.Equal(t, "Lyon (no xG)", legendName(polygon{name: "Lyon", values: values}))
}

func TestRadarScale_NegativeMeans(t *testing.T) {
	low, high, ok := radarScale([]polygon{{values: []float64{-0.4, 2.5, math.NaN()}}})
	require.True(t, ok)
	assert.Equal(t, -1.0, low)
	assert.Equal(t, 3.0, high)

	g := radarGeometry{cx: 400, cy: 430, axes: 3, low: low, high: high}
	vs := g.vertices([]float64{-0.4, 2.5, math.NaN()})
	require.Len(t, vs, 2)
	assert.False(t, vs[0].x == g.cx && vs[0].y == g.cy, "negative mean clamped to the centre")

	_, _, ok = radarScale([]polygon{{values: []float64{math.NaN()}}})
	assert.False(t, ok)
}
