package analysis

import (
	"fmt"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/store"
)

const (
	dateFormat = "2006-01-02"
	msPerMin   = 60 * 1000
)

// Options holds the list sizes of the summary report.
type Options struct {
	Songs         int
	Artists       int
	RecentArtists int
	RecentYears   int
	Days          int
	// Location is used to find the start of the last day of listening.
	Location *time.Location
}

func DefaultOptions() Options {
	return Options{
		Songs:         200,
		Artists:       50,
		RecentArtists: 30,
		RecentYears:   2,
		Days:          20,
		Location:      time.UTC,
	}
}

// GenerateSummary builds every grouped report over the plays in the store.
func GenerateSummary(s *store.Store, opts Options) (*Summary, error) {
	summary := &Summary{}
	var err error

	if summary.Totals, err = GetTotals(s); err != nil {
		return nil, err
	}
	if summary.TopSongs, err = TopSongs(s, opts.Songs, ""); err != nil {
		return nil, err
	}
	if summary.TopArtists, err = TopArtists(s, opts.Artists); err != nil {
		return nil, err
	}
	if summary.RecentArtists, err = RecentTopArtists(s, opts.RecentArtists, opts.RecentYears, opts.Location); err != nil {
		return nil, err
	}
	if summary.TopDays, err = TopDays(s, opts.Days); err != nil {
		return nil, err
	}
	if summary.Weekdays, err = Weekdays(s); err != nil {
		return nil, err
	}
	return summary, nil
}

func GetTotals(s *store.Store) (Totals, error) {
	t, err := s.GetTotals()
	if err != nil {
		return Totals{}, fmt.Errorf("getting totals: %w", err)
	}
	return Totals{
		SongRecords:      t.Plays,
		ListeningMinutes: t.MsPlayed / msPerMin,
		UniqueSongs:      t.UniqueSongs,
		FirstDay:         formatDay(t.FirstDay),
		LastDay:          formatDay(t.LastDay),
	}, nil
}

// TopSongs returns the most played songs, optionally of a single artist.
func TopSongs(s *store.Store, limit int, artist string) ([]SongStat, error) {
	songs, err := s.GetTopSongs(limit, artist)
	if err != nil {
		return nil, fmt.Errorf("top songs: %w", err)
	}
	stats := make([]SongStat, 0, len(songs))
	for _, song := range songs {
		stats = append(stats, SongStat{
			Artist:  song.Artist,
			Track:   song.Track,
			Minutes: song.Playtime / msPerMin,
		})
	}
	return stats, nil
}

// TopArtists returns the most played artists over the whole history, each with its peak years.
func TopArtists(s *store.Store, limit int) ([]ArtistStat, error) {
	stats, err := topArtists(s, limit, time.Time{})
	if err != nil {
		return nil, err
	}
	for i := range stats {
		counts, err := s.GetArtistYears(stats[i].Name)
		if err != nil {
			return nil, err
		}
		stats[i].PeakYears = peakYears(counts)
	}
	return stats, nil
}

// RecentTopArtists returns the most played artists in the last years before the day of the latest play.
func RecentTopArtists(s *store.Store, limit, years int, loc *time.Location) (RecentArtists, error) {
	recent := RecentArtists{Years: years}
	if loc == nil {
		loc = time.UTC
	}

	t, err := s.GetTotals()
	if err != nil {
		return recent, fmt.Errorf("getting last day: %w", err)
	}

	var since time.Time
	if !t.LastDay.IsZero() {
		since = time.Date(t.LastDay.Year(), t.LastDay.Month(), t.LastDay.Day(), 0, 0, 0, 0, loc).AddDate(-years, 0, 0)
		recent.Since = since.Format(dateFormat)
	}

	if recent.Artists, err = topArtists(s, limit, since); err != nil {
		return recent, err
	}
	return recent, nil
}

func topArtists(s *store.Store, limit int, since time.Time) ([]ArtistStat, error) {
	artists, err := s.GetTopArtists(limit, since)
	if err != nil {
		return nil, fmt.Errorf("top artists: %w", err)
	}
	stats := make([]ArtistStat, 0, len(artists))
	for _, a := range artists {
		stats = append(stats, ArtistStat{Name: a.Artist, Minutes: a.Playtime / msPerMin})
	}
	return stats, nil
}

func TopDays(s *store.Store, limit int) ([]DayStat, error) {
	days, err := s.GetTopDays(limit)
	if err != nil {
		return nil, fmt.Errorf("top days: %w", err)
	}
	stats := make([]DayStat, 0, len(days))
	for _, d := range days {
		stats = append(stats, DayStat{Date: formatDay(d.Day), Minutes: d.Playtime / msPerMin})
	}
	return stats, nil
}

// Weekdays returns the average listening time of each weekday, counting only days with listening.
func Weekdays(s *store.Store) ([]WeekdayStat, error) {
	averages, err := s.GetWeekdayAverages()
	if err != nil {
		return nil, fmt.Errorf("weekday averages: %w", err)
	}
	stats := make([]WeekdayStat, 0, len(averages))
	for _, a := range averages {
		stats = append(stats, WeekdayStat{
			Weekday:    a.Weekday.String(),
			AvgMinutes: a.AvgPlaytime / msPerMin,
			Days:       a.Days,
		})
	}
	return stats, nil
}

// peakYears returns the shortest run of consecutive years holding at least 80% of the plays, as "year"
// or "start-end".
func peakYears(counts []store.YearCount) string {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return ""
	}

	target := int(float64(total) * 0.8)

	bestStart, bestEnd := -1, -1
	minLen := len(counts) + 1
	for i := range counts {
		sum := 0
		for j := i; j < len(counts); j++ {
			sum += counts[j].Count
			if sum >= target {
				if j-i+1 < minLen {
					minLen = j - i + 1
					bestStart, bestEnd = i, j
				}
				break
			}
		}
	}

	if bestStart == -1 {
		return "Unknown"
	}
	if bestStart == bestEnd {
		return counts[bestStart].Year
	}
	return fmt.Sprintf("%s-%s", counts[bestStart].Year, counts[bestEnd].Year)
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}
