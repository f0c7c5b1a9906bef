package dataset

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// LoadError aborts the session: the file is missing, unreadable, malformed,
// or holds a date that cannot be parsed.
type LoadError struct {
	Line   int // 1-based CSV line, header is line 1; 0 when not row specific
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("load dataset: line %d, column %q: %v", e.Line, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load dataset: column %q: %v", e.Column, e.Err)
	default:
		return fmt.Sprintf("load dataset: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

var errMissingColumn = errors.New("column missing from header")

var textColumns = []string{"league", "season", "date", "team1", "team2"}

// NumericColumns are coerced to numbers; anything unparseable becomes absent.
var NumericColumns = []string{
	"proj_score1", "proj_score2",
	"score1", "score2",
	"xg1", "xg2",
	"nsxg1", "nsxg2",
	"adj_score1", "adj_score2",
	"importance1", "importance2",
	"prob1", "prob2",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// LoadCSV reads the match file at path.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses match rows, keeps the allowed leagues and coerces the
// numeric columns.
func ReadCSV(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	// No NaN markers: text cells such as "NA" keep their value, and numeric
	// cells that fail to parse become absent anyway.
	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		if strings.Contains(df.Err.Error(), "empty DataFrame") {
			return headerOnly(raw)
		}
		return nil, &LoadError{Err: df.Err}
	}

	text := make(map[string][]string, len(textColumns))
	for _, name := range textColumns {
		col := df.Col(name)
		if col.Err != nil {
			return nil, &LoadError{Column: name, Err: errMissingColumn}
		}
		text[name] = col.Records()
	}
	numeric := make(map[string][]float64, len(NumericColumns))
	for _, name := range NumericColumns {
		col := df.Col(name)
		if col.Err != nil {
			return nil, &LoadError{Column: name, Err: errMissingColumn}
		}
		numeric[name] = col.Float()
	}

	num := func(name string, i int) sql.NullFloat64 {
		return coerce(numeric[name][i])
	}

	rows := df.Nrow()
	records := make([]MatchRecord, 0, rows)
	for i := 0; i < rows; i++ {
		league := strings.TrimSpace(text["league"][i])
		if !IsAllowedLeague(league) {
			continue
		}
		date, err := ParseDate(text["date"][i])
		if err != nil {
			return nil, &LoadError{Line: i + 2, Column: "date", Err: err}
		}
		records = append(records, MatchRecord{
			League: league,
			Season: strings.TrimSpace(text["season"][i]),
			Date:   date,
			Team1:  text["team1"][i],
			Team2:  text["team2"][i],
			Side1: Side{
				ProjScore:  num("proj_score1", i),
				Score:      num("score1", i),
				XG:         num("xg1", i),
				NSXG:       num("nsxg1", i),
				AdjScore:   num("adj_score1", i),
				Importance: num("importance1", i),
				Prob:       num("prob1", i),
			},
			Side2: Side{
				ProjScore:  num("proj_score2", i),
				Score:      num("score2", i),
				XG:         num("xg2", i),
				NSXG:       num("nsxg2", i),
				AdjScore:   num("adj_score2", i),
				Importance: num("importance2", i),
				Prob:       num("prob2", i),
			},
		})
	}
	return &Dataset{records: records, read: rows}, nil
}

// headerOnly handles a file gota rejects for having no rows: a complete
// header yields an empty Dataset.
func headerOnly(raw []byte) (*Dataset, error) {
	header, err := csv.NewReader(bytes.NewReader(raw)).Read()
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("read header: %w", err)}
	}
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[strings.TrimSpace(h)] = true
	}
	for _, name := range append(append([]string{}, textColumns...), NumericColumns...) {
		if !have[name] {
			return nil, &LoadError{Column: name, Err: errMissingColumn}
		}
	}
	return &Dataset{}, nil
}

// ParseDate accepts the date layouts found in match exports.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func coerce(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return Num(v)
}
