package store

import (
	"database/sql"
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

type Totals struct {
	Plays       int64
	MsPlayed    int64
	UniqueSongs int64
	FirstDay    time.Time
	LastDay     time.Time
}

func (s *Store) GetTotals() (Totals, error) {
	var t Totals
	var first, last sql.NullString
	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(ms_played), 0), MIN(day), MAX(day)
		FROM Play`).Scan(&t.Plays, &t.MsPlayed, &first, &last)
	if err != nil {
		return t, fmt.Errorf("counting plays: %w", err)
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM (SELECT 1 FROM Play GROUP BY artist, track)").Scan(&t.UniqueSongs)
	if err != nil {
		return t, fmt.Errorf("counting songs: %w", err)
	}

	if t.FirstDay, err = parseDay(first); err != nil {
		return t, err
	}
	if t.LastDay, err = parseDay(last); err != nil {
		return t, err
	}
	return t, nil
}

// GetLatestPlay returns the timestamp of the most recent play, or the zero time for an empty store.
func (s *Store) GetLatestPlay() (time.Time, error) {
	var ts sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(ts) FROM Play").Scan(&ts); err != nil {
		return time.Time{}, fmt.Errorf("scanning latest play: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return time.Unix(ts.Int64, 0), nil
}

func parseDay(s sql.NullString) (time.Time, error) {
	if !s.Valid {
		return time.Time{}, nil
	}
	t, err := time.Parse(dayFormat, s.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day %q: %w", s.String, err)
	}
	return t, nil
}
