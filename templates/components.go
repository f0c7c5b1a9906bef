package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"soccer-science/stats"
)

// html collects writes and keeps the first error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) { h.raw(templ.EscapeString(s)) }

func (h *html) rawf(format string, args ...any) { h.raw(fmt.Sprintf(format, args...)) }

func (h *html) attr(name, value string) {
	h.rawf(` %s="%s"`, name, templ.EscapeString(value))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (h *html) options(values []string, selected ...string) {
	for _, v := range values {
		h.raw(`<option`)
		h.attr("value", v)
		if contains(selected, v) {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(v)
		h.raw(`</option>`)
	}
}

const (
	labelClass  = "block text-sm font-semibold mb-1"
	selectClass = "w-full p-3 border rounded-md"
	buttonClass = "bg-[#5D4037] text-white font-bold py-2 px-6 rounded-xl"
)

func (h *html) selectField(label, name, id string, values []string, selected string, teamsPanel string) {
	h.raw(`<div class="mb-4"><label class="` + labelClass + `">`)
	h.text(label)
	h.raw(`</label><select class="` + selectClass + `"`)
	h.attr("name", name)
	h.attr("id", id)
	if teamsPanel != "" {
		h.attr("hx-get", "/fragments/teams?panel="+teamsPanel)
		h.attr("hx-target", "#"+teamsPanel+"-teams")
		h.attr("hx-include", "closest form")
		h.raw(` hx-trigger="change"`)
	}
	h.raw(`>`)
	h.options(values, selected)
	h.raw(`</select></div>`)
}

func (h *html) orientationField(current string) {
	h.raw(`<div class="mb-4"><span class="` + labelClass + `">Home or Away</span>`)
	for _, o := range []string{"Home", "Away"} {
		h.raw(`<label class="mr-4"><input type="radio" name="orientation"`)
		h.attr("value", o)
		if current == o || (current == "" && o == "Home") {
			h.raw(` checked`)
		}
		h.raw(`> `)
		h.text(o)
		h.raw(`</label>`)
	}
	h.raw(`</div>`)
}

func (h *html) teamPicker(panel string, teams, selected []string) {
	if panel == "pair" {
		if len(teams) < 2 {
			h.raw(`<p class="text-stone-600">Not enough teams in the selected league and year to display comparison.</p>`)
			return
		}
		a, b := teams[0], teams[1]
		if len(selected) > 0 && contains(teams, selected[0]) {
			a = selected[0]
		}
		if len(selected) > 1 && contains(teams, selected[1]) && selected[1] != a {
			b = selected[1]
		} else if b == a {
			b = teams[0]
		}
		h.raw(`<div class="grid grid-cols-2 gap-4">`)
		// Team 2 never offers Team 1, so changing Team 1 re-renders the picker.
		h.selectField("Select Team 1", "team_a", "pair-team-a", teams, a, "pair")
		var others []string
		for _, t := range teams {
			if t != a {
				others = append(others, t)
			}
		}
		h.selectField("Select Team 2", "team_b", "pair-team-b", others, b, "")
		h.raw(`</div>`)
		return
	}
	h.raw(`<div class="mb-4"><label class="` + labelClass + `">Select Teams</label><select multiple size="8" name="teams" class="` + selectClass + `">`)
	h.options(teams, selected...)
	h.raw(`</select></div>`)
}

// TeamPicker is the team selector block of a panel, swapped in when the
// panel's league or season changes.
func TeamPicker(panel string, teams, selected []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.teamPicker(panel, teams, selected)
		return h.err
	})
}

func (h *html) panel(id, title string, d DashboardData, f PanelFilters, teams []string, withOrientation bool) {
	h.raw(`<section class="mb-10"><h2 class="text-2xl font-black mb-4">`)
	h.text(title)
	h.raw(`</h2><form`)
	h.attr("hx-post", "/"+id)
	h.attr("hx-target", "#"+id+"-results")
	h.raw(`>`)
	h.selectField("Select Year", "season", id+"-season", d.Seasons, f.Season, id)
	h.selectField("Select League", "league", id+"-league", d.Leagues, f.League, id)
	h.raw(`<div`)
	h.attr("id", id+"-teams")
	h.raw(`>`)
	h.teamPicker(id, teams, f.Teams)
	h.raw(`</div>`)
	if withOrientation {
		h.orientationField(f.Orientation)
	}
	h.raw(`<button type="submit" class="` + buttonClass + `">Show</button></form><div class="mt-6"`)
	h.attr("id", id+"-results")
	h.raw(`></div></section>`)
}

// Dashboard is the full page with its three independent panels.
func Dashboard(d DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!doctype html><html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>Soccer Science</title>`)
		h.raw(`<script src="https://cdn.tailwindcss.com"></script><script src="https://unpkg.com/htmx.org@1.9.12"></script></head>`)
		h.raw(`<body class="bg-[#F7F0E6] font-sans text-stone-800"><div class="min-h-screen flex justify-center py-10"><div class="max-w-5xl w-full bg-white/90 rounded-3xl p-6 shadow-2xl">`)
		h.raw(`<h1 class="text-3xl font-black mb-8">Soccer Science: Data-Driven Game Analysis</h1>`)
		h.panel("radar", "Radar Chart - Comparison of Selected Teams", d, d.Radar, d.RadarTeams, true)
		h.panel("pair", "Bar Chart - Match Statistics", d, d.Pair, d.PairTeams, false)
		h.panel("trend", "Line Chart - Average Probability to Win over Months", d, d.Trend, d.TrendTeams, true)
		h.raw(`</div></div></body></html>`)
		return h.err
	})
}

// Message is the informational box shown instead of an empty chart.
func Message(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.message(text)
		return h.err
	})
}

func (h *html) message(text string) {
	h.raw(`<div class="p-4 rounded-xl bg-amber-50 border border-amber-200 text-stone-700">`)
	h.text(text)
	h.raw(`</div>`)
}

func (h *html) figure(svg string) {
	h.raw(`<figure class="overflow-x-auto">`)
	h.raw(svg)
	h.raw(`</figure>`)
}

func formatMean(a stats.Averages, m stats.Metric) string {
	if v, ok := a.Get(m); ok {
		return fmt.Sprintf("%.2f", v)
	}
	return "n/a"
}

// RadarResults renders the radar chart fragment.
func RadarResults(v RadarView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		if v.Message != "" {
			h.message(v.Message)
			return h.err
		}
		h.figure(v.SVG)
		for _, t := range v.Result.Missing {
			h.message(fmt.Sprintf("No %s games for %s in %s.", v.Result.Orientation, t, v.Result.Season))
		}
		h.raw(`<table class="mt-4 w-full text-sm"><thead><tr><th class="text-left">Team</th>`)
		for _, m := range stats.RadarMetrics {
			h.raw(`<th class="text-right">`)
			h.text(m.RadarLabel())
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		row := func(name string, a stats.Averages) {
			h.raw(`<tr><td>`)
			h.text(name)
			h.raw(`</td>`)
			for _, m := range stats.RadarMetrics {
				h.raw(`<td class="text-right">`)
				h.text(formatMean(a, m))
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		row("League Average", v.Result.LeagueAverage)
		for _, t := range v.Result.Teams {
			row(t.Team, t.Averages)
		}
		h.raw(`</tbody></table>`)
		return h.err
	})
}

// PairResults renders the bar and pie pair fragment.
func PairResults(v PairView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		if v.Message != "" {
			h.message(v.Message)
			return h.err
		}
		h.raw(`<div class="grid grid-cols-1 lg:grid-cols-3 gap-4"><div class="lg:col-span-2">`)
		h.figure(v.BarsSVG)
		h.raw(`</div><div>`)
		if v.SplitSVG != "" {
			h.figure(v.SplitSVG)
		} else {
			h.message("Pre-match split unavailable: neither team has Non-Shot Expected Goals for these games.")
		}
		for _, l := range v.SplitLabels {
			h.raw(`<p class="text-sm">`)
			h.text(l)
			h.raw(`</p>`)
		}
		h.raw(`</div></div>`)
		h.rawf(`<p class="mt-2 text-sm text-stone-600">%d game(s) between `, v.Result.Matches)
		h.text(v.Result.TeamA)
		h.raw(` and `)
		h.text(v.Result.TeamB)
		h.raw(`.</p>`)
		return h.err
	})
}

// TrendResults renders the monthly line chart fragment.
func TrendResults(v TrendView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		if v.Message != "" {
			h.message(v.Message)
			return h.err
		}
		h.figure(v.SVG)
		return h.err
	})
}
