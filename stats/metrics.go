package stats

import (
	"database/sql"
	"encoding/json"
	"errors"
)

var (
	// ErrNoData means the filter selection matched no rows.
	ErrNoData = errors.New("no data for selection")
	// ErrNoMatchFound means the two teams never met in the league season.
	ErrNoMatchFound = errors.New("no games between those teams")
	// ErrSameTeam rejects a head-to-head of a team against itself.
	ErrSameTeam = errors.New("pick two different teams")
)

type Metric string

const (
	ProjScore  Metric = "proj_score"
	Score      Metric = "score"
	XG         Metric = "xg"
	NSXG       Metric = "nsxg"
	AdjScore   Metric = "adj_score"
	Importance Metric = "importance"
	Prob       Metric = "prob"
)

// RadarMetrics are the radar axes, in display order.
var RadarMetrics = []Metric{ProjScore, Score, XG, NSXG, AdjScore}

// PairMetrics are the head-to-head bar groups, in display order.
var PairMetrics = []Metric{Score, XG, ProjScore, NSXG}

var radarLabels = map[Metric]string{
	ProjScore: "Projected Score",
	Score:     "Score",
	XG:        "xG",
	NSXG:      "nSxG",
	AdjScore:  "Adjusted Score",
}

var pairLabels = map[Metric]string{
	Score:     "Actual Goals Scored",
	XG:        "Expected Goals",
	ProjScore: "Projected Goals",
	NSXG:      "Non-Shot Expected Goals",
}

// RadarLabel is the radar axis caption of m.
func (m Metric) RadarLabel() string {
	if l, ok := radarLabels[m]; ok {
		return l
	}
	return string(m)
}

// PairLabel is the bar caption of m.
func (m Metric) PairLabel() string {
	if l, ok := pairLabels[m]; ok {
		return l
	}
	return string(m)
}

// Averages holds one skip-missing mean per metric. An entry with
// Valid == false had no present values.
type Averages map[Metric]sql.NullFloat64

// Get returns the mean of m and whether it is defined.
func (a Averages) Get(m Metric) (float64, bool) {
	v, ok := a[m]
	if !ok || !v.Valid {
		return 0, false
	}
	return v.Float64, true
}

// MarshalJSON writes absent means as null.
func (a Averages) MarshalJSON() ([]byte, error) {
	out := make(map[Metric]*float64, len(a))
	for m, v := range a {
		if v.Valid {
			f := v.Float64
			out[m] = &f
		} else {
			out[m] = nil
		}
	}
	return json.Marshal(out)
}

// meanAcc accumulates a mean over present values only.
type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v sql.NullFloat64) {
	if !v.Valid {
		return
	}
	a.sum += v.Float64
	a.n++
}

func (a meanAcc) mean() sql.NullFloat64 {
	if a.n == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: a.sum / float64(a.n), Valid: true}
}

// Mean is the skip-missing mean: absent values count in neither the sum
// nor the denominator.
func Mean(values []sql.NullFloat64) sql.NullFloat64 {
	var acc meanAcc
	for _, v := range values {
		acc.add(v)
	}
	return acc.mean()
}

// averageOf computes every metric in metrics over rows.
func averageOf(rows []PerspectiveRecord, metrics []Metric) Averages {
	accs := make([]meanAcc, len(metrics))
	for _, r := range rows {
		for i, m := range metrics {
			accs[i].add(r.Value(m))
		}
	}
	out := make(Averages, len(metrics))
	for i, m := range metrics {
		out[m] = accs[i].mean()
	}
	return out
}
