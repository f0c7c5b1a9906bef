package stats

import "soccer-science/dataset"

// TeamAverages is one team's radar polygon.
type TeamAverages struct {
	Team     string   `json:"team"`
	Matches  int      `json:"matches"`
	Averages Averages `json:"averages"`
}

// RadarResult compares selected teams with the league baseline.
type RadarResult struct {
	League        string         `json:"league"`
	Season        string         `json:"season"`
	Orientation   string         `json:"orientation"`
	LeagueAverage Averages       `json:"league_average"`
	Teams         []TeamAverages `json:"teams"`
	// Missing lists requested teams with no rows on this side of the fixture.
	Missing []string `json:"missing,omitempty"`
}

// LeagueOnly reports the "League Average" display with no team polygons.
func (r RadarResult) LeagueOnly() bool { return len(r.Teams) == 0 }

// RadarAverages averages the five radar metrics. The league baseline covers
// every team in the league season; team polygons cover only teams, in the
// order requested. ErrNoData is returned when the league season is empty.
func RadarAverages(records []dataset.MatchRecord, league, season string, o Orientation, teams []string) (RadarResult, error) {
	res := RadarResult{League: league, Season: season, Orientation: o.String()}

	rows := Resolve(inSlice(records, league, season), o)
	if len(rows) == 0 {
		return res, ErrNoData
	}
	res.LeagueAverage = averageOf(rows, RadarMetrics)

	byTeam := make(map[string][]PerspectiveRecord)
	for _, r := range rows {
		byTeam[r.Team] = append(byTeam[r.Team], r)
	}
	for _, t := range uniqueNames(teams) {
		tr, ok := byTeam[t]
		if !ok {
			res.Missing = append(res.Missing, t)
			continue
		}
		res.Teams = append(res.Teams, TeamAverages{
			Team:     t,
			Matches:  len(tr),
			Averages: averageOf(tr, RadarMetrics),
		})
	}
	return res, nil
}
