package stats

import (
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	"soccer-science/dataset"
)

// MonthlyTeamProbability is the mean win probability of one team in one
// calendar month.
type MonthlyTeamProbability struct {
	Month       time.Month
	Team        string
	Matches     int
	Probability sql.NullFloat64
}

func (m MonthlyTeamProbability) MarshalJSON() ([]byte, error) {
	var p *float64
	if m.Probability.Valid {
		v := m.Probability.Float64
		p = &v
	}
	return json.Marshal(struct {
		Month       string   `json:"month"`
		Team        string   `json:"team"`
		Matches     int      `json:"matches"`
		Probability *float64 `json:"prob"`
	}{m.Month.String(), m.Team, m.Matches, p})
}

// MonthlyTrend groups the chosen side's rows by (month, team) and averages
// the win probability. With no teams every team of the league season is
// kept. Rows come back in calendar order, then by team name.
func MonthlyTrend(records []dataset.MatchRecord, league, season string, o Orientation, teams []string) []MonthlyTeamProbability {
	want := make(map[string]bool)
	for _, t := range uniqueNames(teams) {
		want[t] = true
	}

	type key struct {
		month time.Month
		team  string
	}
	groups := make(map[key]*meanAcc)
	counts := make(map[key]int)
	for _, r := range Resolve(inSlice(records, league, season), o) {
		if len(want) > 0 && !want[r.Team] {
			continue
		}
		k := key{r.Date.Month(), r.Team}
		acc, ok := groups[k]
		if !ok {
			acc = &meanAcc{}
			groups[k] = acc
		}
		acc.add(r.Prob)
		counts[k]++
	}

	out := make([]MonthlyTeamProbability, 0, len(groups))
	for k, acc := range groups {
		out = append(out, MonthlyTeamProbability{
			Month:       k.month,
			Team:        k.team,
			Matches:     counts[k],
			Probability: acc.mean(),
		})
	}
	SortByCalendar(out)
	return out
}

// SortByCalendar orders rows January to December, then by team name.
func SortByCalendar(rows []MonthlyTeamProbability) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Team < rows[j].Team
	})
}

// DefaultTrendTeams is the preselection used when the trend panel opens:
// the first two teams of the league season in first-seen order.
func DefaultTrendTeams(records []dataset.MatchRecord, league, season string) []string {
	teams := dataset.TeamsOf(inSlice(records, league, season))
	if len(teams) > 2 {
		teams = teams[:2]
	}
	return teams
}

// TrendTeams lists the teams present in trend rows, sorted by name.
func TrendTeams(rows []MonthlyTeamProbability) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if !seen[r.Team] {
			seen[r.Team] = true
			out = append(out, r.Team)
		}
	}
	sort.Strings(out)
	return out
}
