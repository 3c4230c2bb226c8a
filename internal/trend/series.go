// Package trend turns listening history into dense daily series, smooths them, and finds the periods a
// song or artist was in heavy rotation.
package trend

import (
	"errors"
	"fmt"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

const dateFormat = "2006-01-02"

var ErrNoData = errors.New("no listening events match")

// DailyPoint is the aggregate play duration of one calendar day, in milliseconds.
type DailyPoint struct {
	Date  time.Time `yaml:"date"`
	Value float64   `yaml:"value"`
}

// Series holds one point per calendar day, strictly increasing with no gaps.
type Series []DailyPoint

// BuildDaily sums the play duration of the selected events per day and fills every day between the first
// and last selected play, using zero for days without plays.
func BuildDaily(events []history.Event, sel history.Selector) (Series, error) {
	sums := make(map[time.Time]int64)
	var first, last time.Time
	for _, ev := range events {
		if !sel.Match(ev) {
			continue
		}
		d := ev.Day()
		if len(sums) == 0 || d.Before(first) {
			first = d
		}
		if len(sums) == 0 || d.After(last) {
			last = d
		}
		sums[d] += ev.MsPlayed
	}
	if len(sums) == 0 {
		return nil, fmt.Errorf("%s: %w", sel, ErrNoData)
	}

	n := daysBetween(first, last) + 1
	s := make(Series, n)
	for i := range s {
		d := first.AddDate(0, 0, i)
		s[i] = DailyPoint{Date: d, Value: float64(sums[d])}
	}
	return s, nil
}

// Start returns the first day of the series, or the zero time for an empty series.
func (s Series) Start() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Date
}

func (s Series) End() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// Values returns a copy of the series values.
func (s Series) Values() []float64 {
	v := make([]float64, len(s))
	for i, p := range s {
		v[i] = p.Value
	}
	return v
}

// Widen pads the series with zero days before its start and after its end.
func (s Series) Widen(before, after int) Series {
	if len(s) == 0 || (before <= 0 && after <= 0) {
		return s
	}
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}
	out := make(Series, 0, len(s)+before+after)
	start := s.Start()
	for i := before; i > 0; i-- {
		out = append(out, DailyPoint{Date: start.AddDate(0, 0, -i)})
	}
	out = append(out, s...)
	end := s.End()
	for i := 1; i <= after; i++ {
		out = append(out, DailyPoint{Date: end.AddDate(0, 0, i)})
	}
	return out
}

func (s Series) withValues(v []float64) Series {
	out := make(Series, len(s))
	for i, p := range s {
		out[i] = DailyPoint{Date: p.Date, Value: v[i]}
	}
	return out
}
