package stats

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soccer-science/dataset"
)

const ligue1 = "French Ligue 1"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func side(score float64) dataset.Side {
	return dataset.Side{
		ProjScore: dataset.Num(score + 0.5),
		Score:     dataset.Num(score),
		XG:        dataset.Num(score + 0.25),
		NSXG:      dataset.Num(score + 1),
		AdjScore:  dataset.Num(score),
		Prob:      dataset.Num(0.5),
	}
}

func match(date time.Time, t1, t2 string, s1, s2 float64) dataset.MatchRecord {
	return dataset.MatchRecord{
		League: ligue1, Season: "2020", Date: date,
		Team1: t1, Team2: t2, Side1: side(s1), Side2: side(s2),
	}
}

func fixture() []dataset.MatchRecord {
	return []dataset.MatchRecord{
		match(day(2020, 3, 1), "X", "Y", 2, 1),
		match(day(2020, 4, 15), "Y", "X", 0, 3),
		match(day(2020, 4, 20), "Z", "X", 1, 1),
		match(day(2020, 1, 5), "Z", "Y", 4, 0),
	}
}

func TestResolve_OneToOne(t *testing.T) {
	recs := fixture()

	home := Resolve(recs, Home)
	away := Resolve(recs, Away)
	require.Len(t, home, len(recs))
	require.Len(t, away, len(recs))

	assert.Equal(t, "X", home[0].Team)
	assert.Equal(t, "Y", home[0].Opponent)
	assert.Equal(t, 2.0, home[0].Score.Float64)
	assert.Equal(t, "Y", away[0].Team)
	assert.Equal(t, 1.0, away[0].Score.Float64)
	assert.Equal(t, "March", home[0].Month)
	assert.Empty(t, Resolve(nil, Home))
}

func TestResolve_KeepsAbsent(t *testing.T) {
	r := match(day(2020, 3, 1), "X", "Y", 2, 1)
	r.Side2.XG = sql.NullFloat64{}

	away := Resolve([]dataset.MatchRecord{r}, Away)
	require.Len(t, away, 1)
	assert.False(t, away[0].XG.Valid)
	assert.True(t, away[0].Score.Valid)
}

func TestPerspectiveValue_MatchesSide(t *testing.T) {
	r := match(day(2020, 3, 1), "X", "Y", 2, 1)
	r.Side2.Importance = dataset.Num(61)
	away := Resolve([]dataset.MatchRecord{r}, Away)[0]

	for _, m := range []Metric{ProjScore, Score, XG, NSXG, AdjScore, Importance, Prob} {
		assert.Equal(t, sideValue(r.Side2, m), away.Value(m), m)
	}
	assert.False(t, away.Value(Metric("spi")).Valid)
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{"": Home, "Home": Home, " away ": Away, "AWAY": Away} {
		got, err := ParseOrientation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOrientation("neutral")
	assert.Error(t, err)
}

func TestMean_SkipsMissing(t *testing.T) {
	got := Mean([]sql.NullFloat64{dataset.Num(1), {}, dataset.Num(4)})
	require.True(t, got.Valid)
	assert.Equal(t, 2.5, got.Float64)

	assert.False(t, Mean([]sql.NullFloat64{{}, {}}).Valid)
	assert.False(t, Mean(nil).Valid)
}

func TestRadarAverages_TeamsAndBaseline(t *testing.T) {
	recs := fixture()
	recs[0].Side1.XG = sql.NullFloat64{}

	res, err := RadarAverages(recs, ligue1, "2020", Home, []string{"Z", "X", "Z"})
	require.NoError(t, err)

	require.Len(t, res.Teams, 2)
	assert.Equal(t, "Z", res.Teams[0].Team)
	assert.Equal(t, 2, res.Teams[0].Matches)
	score, ok := res.Teams[0].Averages.Get(Score)
	require.True(t, ok)
	assert.Equal(t, 2.5, score)

	_, ok = res.Teams[1].Averages.Get(XG)
	assert.False(t, ok, "X only has one home row and its xG is absent")

	leagueScore, ok := res.LeagueAverage.Get(Score)
	require.True(t, ok)
	assert.Equal(t, (2.0+0+1+4)/4, leagueScore)
	leagueXG, _ := res.LeagueAverage.Get(XG)
	assert.InDelta(t, (0.25+1.25+4.25)/3, leagueXG, 1e-9)
}

func TestRadarAverages_BaselineIndependentOfSelection(t *testing.T) {
	recs := fixture()

	all, err := RadarAverages(recs, ligue1, "2020", Away, []string{"X", "Y"})
	require.NoError(t, err)
	one, err := RadarAverages(recs, ligue1, "2020", Away, []string{"Y"})
	require.NoError(t, err)
	none, err := RadarAverages(recs, ligue1, "2020", Away, nil)
	require.NoError(t, err)

	assert.Equal(t, all.LeagueAverage, one.LeagueAverage)
	assert.Equal(t, all.LeagueAverage, none.LeagueAverage)
	assert.True(t, none.LeagueOnly())
}

func TestRadarAverages_MissingTeamAndEmptySlice(t *testing.T) {
	recs := fixture()

	res, err := RadarAverages(recs, ligue1, "2020", Away, []string{"Z", "Y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Z"}, res.Missing, "Z never played away")
	require.Len(t, res.Teams, 1)

	_, err = RadarAverages(recs, ligue1, "2019", Home, []string{"X"})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestPairStats_BothLegs(t *testing.T) {
	recs := []dataset.MatchRecord{
		{League: ligue1, Season: "2020", Date: day(2020, 3, 1), Team1: "X", Team2: "Y",
			Side1: dataset.Side{Score: dataset.Num(2)}, Side2: dataset.Side{Score: dataset.Num(1)}},
		{League: ligue1, Season: "2020", Date: day(2020, 4, 15), Team1: "Y", Team2: "X",
			Side1: dataset.Side{Score: dataset.Num(0)}, Side2: dataset.Side{Score: dataset.Num(3)}},
	}

	res, err := PairStats(recs, ligue1, "2020", "X", "Y")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Matches)

	x, _ := res.StatsA.Get(Score)
	y, _ := res.StatsB.Get(Score)
	assert.Equal(t, 2.5, x)
	assert.Equal(t, 0.5, y)
	assert.False(t, res.Split.Defined, "no nSxG values at all")
}

func TestPairStats_ArgumentOrderSymmetric(t *testing.T) {
	recs := fixture()

	ab, err := PairStats(recs, ligue1, "2020", "X", "Y")
	require.NoError(t, err)
	ba, err := PairStats(recs, ligue1, "2020", "Y", "X")
	require.NoError(t, err)

	assert.Equal(t, ab.StatsA, ba.StatsB)
	assert.Equal(t, ab.StatsB, ba.StatsA)
	assert.InDelta(t, ab.Split.ShareA, ba.Split.ShareB, 1e-12)
}

func TestPairStats_NoMatchAndSameTeam(t *testing.T) {
	recs := fixture()

	_, err := PairStats(recs, ligue1, "2020", "X", "Nobody")
	assert.ErrorIs(t, err, ErrNoMatchFound)
	_, err = PairStats(recs, ligue1, "2021", "X", "Y")
	assert.ErrorIs(t, err, ErrNoMatchFound)
	_, err = PairStats(recs, ligue1, "2020", "X", "X")
	assert.ErrorIs(t, err, ErrSameTeam)
}

func TestPairStats_Split(t *testing.T) {
	res, err := PairStats(fixture(), ligue1, "2020", "X", "Y")
	require.NoError(t, err)

	// X nSxG: 3 (home, scored 2) and 4 (away, scored 3); Y: 2 and 1.
	require.True(t, res.Split.Defined)
	assert.InDelta(t, 3.5/5.0, res.Split.ShareA, 1e-12)
	assert.InDelta(t, 1.5/5.0, res.Split.ShareB, 1e-12)
}

func TestShareOf_Degenerate(t *testing.T) {
	assert.False(t, ShareOf(0, 0).Defined)
	assert.False(t, ShareOf(-1, 0).Defined)
	s := ShareOf(1, 0)
	assert.True(t, s.Defined)
	assert.Equal(t, 1.0, s.ShareA)
}

func TestMonthlyTrend_CalendarOrder(t *testing.T) {
	recs := fixture()
	recs[2].Side2.Prob = dataset.Num(0.25)

	rows := MonthlyTrend(recs, ligue1, "2020", Away, nil)
	require.Len(t, rows, 3)
	assert.Equal(t, time.January, rows[0].Month)
	assert.Equal(t, "Y", rows[0].Team)
	assert.Equal(t, time.March, rows[1].Month)
	assert.Equal(t, time.April, rows[2].Month)
	assert.Equal(t, "X", rows[2].Team)
	assert.Equal(t, 2, rows[2].Matches)
	assert.InDelta(t, 0.375, rows[2].Probability.Float64, 1e-12)
}

func TestMonthlyTrend_FilterAndAbsent(t *testing.T) {
	recs := fixture()
	recs[1].Side1.Prob = sql.NullFloat64{}

	rows := MonthlyTrend(recs, ligue1, "2020", Home, []string{"Y"})
	require.Len(t, rows, 1)
	assert.Equal(t, time.April, rows[0].Month)
	assert.False(t, rows[0].Probability.Valid)

	b, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"month":"April","team":"Y","matches":1,"prob":null}`, string(b))
}

func TestSortByCalendar(t *testing.T) {
	rows := []MonthlyTeamProbability{
		{Month: time.March, Team: "A"},
		{Month: time.January, Team: "B"},
		{Month: time.January, Team: "A"},
	}
	SortByCalendar(rows)
	assert.Equal(t, time.January, rows[0].Month)
	assert.Equal(t, "A", rows[0].Team)
	assert.Equal(t, "B", rows[1].Team)
	assert.Equal(t, time.March, rows[2].Month)
	assert.Equal(t, []string{"A", "B"}, TrendTeams(rows))
}

func TestDefaultTrendTeams(t *testing.T) {
	assert.Equal(t, []string{"X", "Y"}, DefaultTrendTeams(fixture(), ligue1, "2020"))
	assert.Empty(t, DefaultTrendTeams(fixture(), ligue1, "1999"))
}

func TestAverages_JSONNulls(t *testing.T) {
	a := Averages{Score: dataset.Num(1.5), XG: {}}
	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":1.5,"xg":null}`, string(b))
}
