package dataset

// Dataset is the cleaned, read-only match snapshot. It is built once and
// shared by every request; nothing mutates it after construction.
type Dataset struct {
	records []MatchRecord
	read    int
}

// New builds a Dataset from already coerced records, dropping leagues outside
// the allow-list.
func New(records []MatchRecord) *Dataset {
	kept := make([]MatchRecord, 0, len(records))
	for _, r := range records {
		if IsAllowedLeague(r.League) {
			kept = append(kept, r)
		}
	}
	return &Dataset{records: kept, read: len(records)}
}

// Len is the number of retained rows.
func (d *Dataset) Len() int { return len(d.records) }

// RowsRead is the number of rows seen before the league filter.
func (d *Dataset) RowsRead() int { return d.read }

// Records returns a copy of every retained row.
func (d *Dataset) Records() []MatchRecord {
	out := make([]MatchRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Slice returns the rows of one league and season, in file order.
func (d *Dataset) Slice(league, season string) []MatchRecord {
	var out []MatchRecord
	for _, r := range d.records {
		if r.League == league && r.Season == season {
			out = append(out, r)
		}
	}
	return out
}

// Seasons lists distinct seasons in first-seen order.
func (d *Dataset) Seasons() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range d.records {
		if !seen[r.Season] {
			seen[r.Season] = true
			out = append(out, r.Season)
		}
	}
	return out
}

// Leagues is the fixed league list.
func (d *Dataset) Leagues() []string {
	out := make([]string, len(Leagues))
	copy(out, Leagues)
	return out
}

// HasSeason reports whether any retained row belongs to season.
func (d *Dataset) HasSeason(season string) bool {
	for _, r := range d.records {
		if r.Season == season {
			return true
		}
	}
	return false
}

// Teams lists the teams of a league season: every home team column value
// first, then every away team value, de-duplicated in first-seen order.
func (d *Dataset) Teams(league, season string) []string {
	return TeamsOf(d.Slice(league, season))
}

// TeamsOf applies the Teams ordering to an arbitrary slice of rows.
func TeamsOf(records []MatchRecord) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, r := range records {
		add(r.Team1)
	}
	for _, r := range records {
		add(r.Team2)
	}
	return out
}
