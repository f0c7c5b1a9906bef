// Package charts renders the panel aggregates as SVG.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"math"
	"time"

	"github.com/shopspring/decimal"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"soccer-science/stats"
)

var (
	// ErrNothingToPlot is returned when every value of a chart is absent.
	ErrNothingToPlot = errors.New("nothing to plot")
	// ErrDegenerateSplit is returned for a pie whose shares are undefined.
	ErrDegenerateSplit = errors.New("pre-match split undefined: both sides have no nSxG")
)

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorOrange,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorCyan,
	chart.ColorYellow,
}

// baseline is the league average colour.
var baseline = drawing.Color{R: 0, G: 0, B: 0, A: 128}

// TeamColor is the series colour of the i-th team.
func TeamColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// escape prepares text for go-chart's SVG writer, which emits labels verbatim.
func escape(s string) string { return html.EscapeString(s) }

// Percent formats a 0..1 share as "62.5%".
func Percent(share float64) string {
	return decimal.NewFromFloat(share).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// PairBars is the grouped "Match Statistics" bar chart.
func PairBars(res stats.PairResult) ([]byte, error) {
	var bars []chart.Value
	top := 0.0
	for _, m := range stats.PairMetrics {
		for i, s := range []stats.Averages{res.StatsA, res.StatsB} {
			v, ok := s.Get(m)
			if !ok {
				continue
			}
			team := res.TeamA
			if i == 1 {
				team = res.TeamB
			}
			c := TeamColor(i)
			bars = append(bars, chart.Value{
				Label: escape(fmt.Sprintf("%s (%s)", m.PairLabel(), team)),
				Value: v,
				Style: chart.Style{FillColor: c, StrokeColor: c},
			})
			top = math.Max(top, v)
		}
	}
	if len(bars) == 0 {
		return nil, ErrNothingToPlot
	}

	bc := chart.BarChart{
		Title:      "Match Statistics",
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 20}},
		Width:      1000,
		Height:     480,
		BarWidth:   60,
		BarSpacing: 40,
		YAxis: chart.YAxis{
			Name:  "Goals/nSxG",
			Range: &chart.ContinuousRange{Min: 0, Max: niceMax(top)},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render pair bars: %w", err)
	}
	return buf.Bytes(), nil
}

// PairSplit is the "Pre-Match Probabilities" pie chart.
func PairSplit(res stats.PairResult) ([]byte, error) {
	if !res.Split.Defined {
		return nil, ErrDegenerateSplit
	}
	var values []chart.Value
	for i, part := range []struct {
		team  string
		share float64
	}{{res.TeamA, res.Split.ShareA}, {res.TeamB, res.Split.ShareB}} {
		if part.share == 0 {
			continue
		}
		c := TeamColor(i)
		values = append(values, chart.Value{
			Label: escape(part.team + " " + Percent(part.share)),
			Value: part.share,
			Style: chart.Style{FillColor: c, StrokeColor: drawing.ColorWhite},
		})
	}

	pc := chart.PieChart{
		Title:  "Pre-Match Probabilities",
		Width:  480,
		Height: 480,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pc.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render pair split: %w", err)
	}
	return buf.Bytes(), nil
}

var monthTicks = func() []chart.Tick {
	ticks := make([]chart.Tick, 12)
	for i := range ticks {
		ticks[i] = chart.Tick{Value: float64(i + 1), Label: monthAbbrev(i + 1)}
	}
	return ticks
}()

func monthAbbrev(m int) string {
	return time.Month(m).String()[:3]
}

// Trend is the "Average Probability to Win over Months" line chart, one
// series per team. Absent months leave a gap in the points.
func Trend(rows []stats.MonthlyTeamProbability) ([]byte, error) {
	var series []chart.Series
	for i, team := range stats.TrendTeams(rows) {
		var xs, ys []float64
		for _, r := range rows {
			if r.Team != team || !r.Probability.Valid {
				continue
			}
			xs = append(xs, float64(r.Month))
			ys = append(ys, r.Probability.Float64)
		}
		if len(xs) == 0 {
			continue
		}
		c := TeamColor(i)
		series = append(series, chart.ContinuousSeries{
			Name:    escape(team),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: c,
				StrokeWidth: 2,
				DotColor:    c,
				DotWidth:    4,
			},
		})
	}
	if len(series) == 0 {
		return nil, ErrNothingToPlot
	}

	c := chart.Chart{
		Title:      "Average Probability to Win over Months",
		Width:      900,
		Height:     480,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  "Month",
			Range: &chart.ContinuousRange{Min: 0.5, Max: 12.5},
			Ticks: monthTicks,
		},
		YAxis: chart.YAxis{
			Name:  "Average Probability to Win",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	var buf bytes.Buffer
	if err := c.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render trend: %w", err)
	}
	return buf.Bytes(), nil
}

// niceMax pads v up to a round axis maximum, never below 1.
func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	step := math.Pow(10, math.Floor(math.Log10(v)))
	m := math.Ceil(v*1.1/step) * step
	if m < 1 {
		return 1
	}
	return m
}
