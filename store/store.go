// Package store keeps a persisted copy of the cleaned match dataset so a
// restart can skip CSV parsing.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/lib/pq"

	"soccer-science/dataset"
)

// Store wraps the snapshot database.
type Store struct {
	DB       *sql.DB
	postgres bool
}

// Open picks the driver from the DSN: postgres:// URLs use lib/pq, anything
// else is a sqlite file path.
func Open(dsn string) (*Store, error) {
	driver := "sqlite"
	pg := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	if pg {
		driver = "postgres"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open snapshot %s: %w", driver, err)
	}
	return &Store{DB: db, postgres: pg}, nil
}

func (s *Store) Close() error { return s.DB.Close() }

// Init creates the snapshot table.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
    CREATE TABLE IF NOT EXISTS matches (
      row_num INTEGER PRIMARY KEY,
      league TEXT NOT NULL,
      season TEXT NOT NULL,
      match_date TEXT NOT NULL,
      team1 TEXT NOT NULL,
      team2 TEXT NOT NULL,

      -- home side
      proj_score1 DOUBLE PRECISION, score1 DOUBLE PRECISION, xg1 DOUBLE PRECISION, nsxg1 DOUBLE PRECISION,
      adj_score1 DOUBLE PRECISION, importance1 DOUBLE PRECISION, prob1 DOUBLE PRECISION,

      -- away side
      proj_score2 DOUBLE PRECISION, score2 DOUBLE PRECISION, xg2 DOUBLE PRECISION, nsxg2 DOUBLE PRECISION,
      adj_score2 DOUBLE PRECISION, importance2 DOUBLE PRECISION, prob2 DOUBLE PRECISION
    );`)
	return err
}

const insertMatch = `INSERT INTO matches (row_num, league, season, match_date, team1, team2,
  proj_score1, score1, xg1, nsxg1, adj_score1, importance1, prob1,
  proj_score2, score2, xg2, nsxg2, adj_score2, importance2, prob2)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectMatches = `SELECT league, season, match_date, team1, team2,
  proj_score1, score1, xg1, nsxg1, adj_score1, importance1, prob1,
  proj_score2, score2, xg2, nsxg2, adj_score2, importance2, prob2
  FROM matches ORDER BY row_num`

// SaveMatches replaces the snapshot with records, keeping their order.
func (s *Store) SaveMatches(ctx context.Context, records []dataset.MatchRecord) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, s.rebind(insertMatch))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx, i, r.League, r.Season, r.Date.Format(time.DateOnly), r.Team1, r.Team2,
			r.Side1.ProjScore, r.Side1.Score, r.Side1.XG, r.Side1.NSXG, r.Side1.AdjScore, r.Side1.Importance, r.Side1.Prob,
			r.Side2.ProjScore, r.Side2.Score, r.Side2.XG, r.Side2.NSXG, r.Side2.AdjScore, r.Side2.Importance, r.Side2.Prob)
		if err != nil {
			return fmt.Errorf("save match %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// LoadMatches reads the snapshot back in saved order.
func (s *Store) LoadMatches(ctx context.Context) ([]dataset.MatchRecord, error) {
	rows, err := s.DB.QueryContext(ctx, selectMatches)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dataset.MatchRecord
	for rows.Next() {
		var r dataset.MatchRecord
		var date string
		if err := rows.Scan(&r.League, &r.Season, &date, &r.Team1, &r.Team2,
			&r.Side1.ProjScore, &r.Side1.Score, &r.Side1.XG, &r.Side1.NSXG, &r.Side1.AdjScore, &r.Side1.Importance, &r.Side1.Prob,
			&r.Side2.ProjScore, &r.Side2.Score, &r.Side2.XG, &r.Side2.NSXG, &r.Side2.AdjScore, &r.Side2.Importance, &r.Side2.Prob); err != nil {
			return nil, err
		}
		if r.Date, err = dataset.ParseDate(date); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count is the number of saved rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n)
	return n, err
}

// rebind swaps ? placeholders for $n on postgres.
func (s *Store) rebind(q string) string {
	if !s.postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, c := range q {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
