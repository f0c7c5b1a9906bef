package stats

import (
	"strings"

	"soccer-science/dataset"
)

// Split is the two-way pre-match share derived from each side's mean nSxG.
// Defined is false when both means are zero or absent.
type Split struct {
	ShareA  float64 `json:"share_a"`
	ShareB  float64 `json:"share_b"`
	Defined bool    `json:"defined"`
}

// PairResult is the head-to-head comparison of two teams.
type PairResult struct {
	League  string   `json:"league"`
	Season  string   `json:"season"`
	TeamA   string   `json:"team_a"`
	TeamB   string   `json:"team_b"`
	Matches int      `json:"matches"`
	StatsA  Averages `json:"stats_a"`
	StatsB  Averages `json:"stats_b"`
	Split   Split    `json:"split"`
}

// PairStats averages the fixtures between teamA and teamB in a league
// season. Each row contributes to a team under the side it played, so home
// and away legs land in the same four metrics.
func PairStats(records []dataset.MatchRecord, league, season, teamA, teamB string) (PairResult, error) {
	teamA, teamB = strings.TrimSpace(teamA), strings.TrimSpace(teamB)
	res := PairResult{League: league, Season: season, TeamA: teamA, TeamB: teamB}
	if teamA == teamB {
		return res, ErrSameTeam
	}

	accA := make([]meanAcc, len(PairMetrics))
	accB := make([]meanAcc, len(PairMetrics))
	for _, r := range inSlice(records, league, season) {
		if !r.Involves(teamA, teamB) {
			continue
		}
		res.Matches++
		sideA, sideB := r.Side1, r.Side2
		if r.Team1 == teamB {
			sideA, sideB = r.Side2, r.Side1
		}
		for i, m := range PairMetrics {
			accA[i].add(sideValue(sideA, m))
			accB[i].add(sideValue(sideB, m))
		}
	}
	if res.Matches == 0 {
		return res, ErrNoMatchFound
	}

	res.StatsA = make(Averages, len(PairMetrics))
	res.StatsB = make(Averages, len(PairMetrics))
	for i, m := range PairMetrics {
		res.StatsA[m] = accA[i].mean()
		res.StatsB[m] = accB[i].mean()
	}
	a, _ := res.StatsA.Get(NSXG)
	b, _ := res.StatsB.Get(NSXG)
	res.Split = ShareOf(a, b)
	return res, nil
}

// ShareOf splits a and b proportionally. Negative inputs count as zero.
func ShareOf(a, b float64) Split {
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	total := a + b
	if total == 0 {
		return Split{}
	}
	return Split{ShareA: a / total, ShareB: b / total, Defined: true}
}
