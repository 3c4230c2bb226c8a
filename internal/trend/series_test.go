package trend

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

func play(artist, track string, t time.Time, ms int64) history.Event {
	return history.Event{Time: t, Artist: artist, Track: track, MsPlayed: ms}
}

// seriesOf builds a dense series starting on 2024-01-01.
func seriesOf(values ...float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = DailyPoint{Date: date(2024, 1, 1).AddDate(0, 0, i), Value: v}
	}
	return s
}

func TestBuildDailyFillsGaps(t *testing.T) {
	events := []history.Event{
		play("Roxette", "Joyride", date(2024, 3, 1).Add(9*time.Hour), 1000),
		play("Roxette", "Joyride", date(2024, 3, 1).Add(22*time.Hour), 500),
		play("ABBA", "Waterloo", date(2024, 3, 3).Add(9*time.Hour), 7000),
		play("Roxette", "The Look", date(2024, 3, 5).Add(9*time.Hour), 2000),
	}

	s, err := BuildDaily(events, history.ByArtist("roxette"))
	require.NoError(t, err)

	require.Len(t, s, 5)
	assert.Equal(t, date(2024, 3, 1), s.Start())
	assert.Equal(t, date(2024, 3, 5), s.End())
	assert.Equal(t, []float64{1500, 0, 0, 0, 2000}, s.Values())

	for i := 1; i < len(s); i++ {
		assert.Equal(t, s[i-1].Date.AddDate(0, 0, 1), s[i].Date)
	}
}

func TestBuildDailyUsesWallClockDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	events := []history.Event{
		play("a", "b", time.Date(2024, 3, 30, 23, 0, 0, 0, loc), 1),
		play("a", "b", time.Date(2024, 4, 2, 1, 0, 0, 0, loc), 1),
	}
	s, err := BuildDaily(events, history.All())
	require.NoError(t, err)
	assert.Len(t, s, 4)
}

func TestBuildDailyNoData(t *testing.T) {
	events := []history.Event{play("ABBA", "Waterloo", date(2024, 3, 3), 7000)}

	_, err := BuildDaily(events, history.ByTrack("Joyride"))
	assert.True(t, errors.Is(err, ErrNoData), "got %v", err)
	assert.Contains(t, err.Error(), "joyride")

	_, err = BuildDaily(nil, history.All())
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestWiden(t *testing.T) {
	s := seriesOf(1, 2).Widen(2, 1)
	require.Len(t, s, 5)
	assert.Equal(t, date(2023, 12, 30), s.Start())
	assert.Equal(t, date(2024, 1, 3), s.End())
	assert.Equal(t, []float64{0, 0, 1, 2, 0}, s.Values())
}
