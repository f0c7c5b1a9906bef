// Package stats turns match rows into the summary tables behind the
// dashboard panels: per-team radar averages, head-to-head statistics and
// monthly win probability trends.
package stats

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"soccer-science/dataset"
)

// Orientation picks which side of a fixture a team is read from.
type Orientation int

const (
	Home Orientation = iota
	Away
)

func (o Orientation) String() string {
	if o == Away {
		return "Away"
	}
	return "Home"
}

// ParseOrientation accepts "home"/"away" in any case; empty means Home.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "home":
		return Home, nil
	case "away":
		return Away, nil
	}
	return Home, fmt.Errorf("unknown orientation %q", s)
}

// PerspectiveRecord is a match row read from one side only.
type PerspectiveRecord struct {
	League     string
	Season     string
	Date       time.Time
	Month      string
	Team       string
	Opponent   string
	ProjScore  sql.NullFloat64
	Score      sql.NullFloat64
	XG         sql.NullFloat64
	NSXG       sql.NullFloat64
	AdjScore   sql.NullFloat64
	Importance sql.NullFloat64
	Prob       sql.NullFloat64
}

// Value returns the unified metric m.
func (p PerspectiveRecord) Value(m Metric) sql.NullFloat64 {
	return sideValue(p.side(), m)
}

func (p PerspectiveRecord) side() dataset.Side {
	return dataset.Side{
		ProjScore:  p.ProjScore,
		Score:      p.Score,
		XG:         p.XG,
		NSXG:       p.NSXG,
		AdjScore:   p.AdjScore,
		Importance: p.Importance,
		Prob:       p.Prob,
	}
}

// Resolve maps every record to its Home or Away perspective, one output per
// input row. Absent metrics stay absent.
func Resolve(records []dataset.MatchRecord, o Orientation) []PerspectiveRecord {
	out := make([]PerspectiveRecord, len(records))
	for i, r := range records {
		team, opp, side := r.Team1, r.Team2, r.Side1
		if o == Away {
			team, opp, side = r.Team2, r.Team1, r.Side2
		}
		out[i] = PerspectiveRecord{
			League:     r.League,
			Season:     r.Season,
			Date:       r.Date,
			Month:      r.Month(),
			Team:       team,
			Opponent:   opp,
			ProjScore:  side.ProjScore,
			Score:      side.Score,
			XG:         side.XG,
			NSXG:       side.NSXG,
			AdjScore:   side.AdjScore,
			Importance: side.Importance,
			Prob:       side.Prob,
		}
	}
	return out
}

// sideValue is the single metric accessor over a fixture side.
func sideValue(s dataset.Side, m Metric) sql.NullFloat64 {
	switch m {
	case ProjScore:
		return s.ProjScore
	case Score:
		return s.Score
	case XG:
		return s.XG
	case NSXG:
		return s.NSXG
	case AdjScore:
		return s.AdjScore
	case Importance:
		return s.Importance
	case Prob:
		return s.Prob
	}
	return sql.NullFloat64{}
}

func inSlice(records []dataset.MatchRecord, league, season string) []dataset.MatchRecord {
	var out []dataset.MatchRecord
	for _, r := range records {
		if r.League == league && r.Season == season {
			out = append(out, r)
		}
	}
	return out
}

// uniqueNames drops blanks and repeats, keeping the caller's order.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
