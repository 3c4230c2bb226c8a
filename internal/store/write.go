package store

import (
	"fmt"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// AddPlays inserts a batch of plays transactionally.
func (s *Store) AddPlays(events []history.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO Play (ts, day, weekday, year, artist, track, album, ms_played, platform, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		day := ev.Day()
		_, err := stmt.Exec(
			ev.Time.Unix(),
			day.Format(dayFormat),
			int(day.Weekday()),
			day.Year(),
			ev.Artist,
			ev.Track,
			ev.Album,
			ev.MsPlayed,
			ev.Platform,
			ev.Skipped,
		)
		if err != nil {
			return fmt.Errorf("inserting play of %q at %s: %w", ev.Track, ev.Time, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
