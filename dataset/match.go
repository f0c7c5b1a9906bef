package dataset

import (
	"database/sql"
	"time"
)

// Leagues is the fixed set of competitions the dashboard covers, in display order.
var Leagues = []string{
	"Barclays Premier League",
	"Spanish Primera Division",
	"French Ligue 1",
	"German Bundesliga",
	"Italy Serie A",
}

// IsAllowedLeague reports whether name is one of Leagues. The caller trims.
func IsAllowedLeague(name string) bool {
	for _, l := range Leagues {
		if l == name {
			return true
		}
	}
	return false
}

// Side holds the per-team columns of one match row. Every metric may be
// absent (Valid == false); absent never means zero.
type Side struct {
	ProjScore  sql.NullFloat64
	Score      sql.NullFloat64
	XG         sql.NullFloat64
	NSXG       sql.NullFloat64
	AdjScore   sql.NullFloat64
	Importance sql.NullFloat64
	Prob       sql.NullFloat64
}

// MatchRecord is one cleaned row of the match dataset.
type MatchRecord struct {
	League string
	Season string
	Date   time.Time
	Team1  string
	Team2  string
	Side1  Side
	Side2  Side
}

// Month is the English calendar month name of the match date.
func (m MatchRecord) Month() string {
	return m.Date.Month().String()
}

// Involves reports whether the fixture is between a and b, in either order.
func (m MatchRecord) Involves(a, b string) bool {
	return (m.Team1 == a && m.Team2 == b) || (m.Team1 == b && m.Team2 == a)
}

// Num wraps a present value.
func Num(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}
