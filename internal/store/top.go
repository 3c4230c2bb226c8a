package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

type ArtistPlaytime struct {
	Artist   string
	Playtime int64
}

type DayPlaytime struct {
	Day      time.Time
	Playtime int64
}

type WeekdayPlaytime struct {
	Weekday     time.Weekday
	AvgPlaytime int64
	Days        int64
}

type YearCount struct {
	Year  string
	Count int
}

// GetTopSongs returns songs ordered by total playtime. A non-empty artist restricts the result to that
// artist (case-insensitive). limit <= 0 returns every song.
func (s *Store) GetTopSongs(limit int, artist string) ([]history.SongData, error) {
	query := `
	SELECT artist, track, SUM(ms_played) AS playtime
	FROM Play
	WHERE ? = '' OR artist = ? COLLATE NOCASE
	GROUP BY artist, track
	ORDER BY playtime DESC, artist, track
	LIMIT ?
	`
	rows, err := s.db.Query(query, artist, artist, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("querying top songs: %w", err)
	}
	defer rows.Close()

	var results []history.SongData
	for rows.Next() {
		var sd history.SongData
		if err := rows.Scan(&sd.Artist, &sd.Track, &sd.Playtime); err != nil {
			return nil, err
		}
		results = append(results, sd)
	}
	return results, rows.Err()
}

// GetTopArtists returns artists ordered by total playtime, counting only plays after since when it is
// not zero.
func (s *Store) GetTopArtists(limit int, since time.Time) ([]ArtistPlaytime, error) {
	var after int64 = -1 << 62
	if !since.IsZero() {
		after = since.Unix()
	}
	query := `
	SELECT artist, SUM(ms_played) AS playtime
	FROM Play
	WHERE ts > ?
	GROUP BY artist
	ORDER BY playtime DESC, artist
	LIMIT ?
	`
	rows, err := s.db.Query(query, after, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("querying top artists: %w", err)
	}
	defer rows.Close()

	var results []ArtistPlaytime
	for rows.Next() {
		var ap ArtistPlaytime
		if err := rows.Scan(&ap.Artist, &ap.Playtime); err != nil {
			return nil, err
		}
		results = append(results, ap)
	}
	return results, rows.Err()
}

func (s *Store) GetTopDays(limit int) ([]DayPlaytime, error) {
	query := `
	SELECT day, SUM(ms_played) AS playtime
	FROM Play
	GROUP BY day
	ORDER BY playtime DESC, day
	LIMIT ?
	`
	rows, err := s.db.Query(query, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("querying top days: %w", err)
	}
	defer rows.Close()

	var results []DayPlaytime
	for rows.Next() {
		var day sql.NullString
		var dp DayPlaytime
		if err := rows.Scan(&day, &dp.Playtime); err != nil {
			return nil, err
		}
		if dp.Day, err = parseDay(day); err != nil {
			return nil, err
		}
		results = append(results, dp)
	}
	return results, rows.Err()
}

// GetWeekdayAverages returns, per weekday, the total playtime divided by the number of days on that
// weekday with at least one play. Days without plays do not count.
func (s *Store) GetWeekdayAverages() ([]WeekdayPlaytime, error) {
	query := `
	SELECT weekday, SUM(playtime) / COUNT(*) AS average, COUNT(*)
	FROM (
		SELECT day, weekday, SUM(ms_played) AS playtime
		FROM Play
		GROUP BY day
	)
	GROUP BY weekday
	ORDER BY average DESC, weekday
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying weekday averages: %w", err)
	}
	defer rows.Close()

	var results []WeekdayPlaytime
	for rows.Next() {
		var wp WeekdayPlaytime
		var weekday int
		if err := rows.Scan(&weekday, &wp.AvgPlaytime, &wp.Days); err != nil {
			return nil, err
		}
		wp.Weekday = time.Weekday(weekday)
		results = append(results, wp)
	}
	return results, rows.Err()
}

// GetArtistYears returns the number of plays of an artist per year, in year order.
func (s *Store) GetArtistYears(artist string) ([]YearCount, error) {
	query := `
	SELECT CAST(year AS TEXT), COUNT(*)
	FROM Play
	WHERE artist = ?
	GROUP BY year
	ORDER BY year
	`
	rows, err := s.db.Query(query, artist)
	if err != nil {
		return nil, fmt.Errorf("querying years of %q: %w", artist, err)
	}
	defer rows.Close()

	var counts []YearCount
	for rows.Next() {
		var yc YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, yc)
	}
	return counts, rows.Err()
}
