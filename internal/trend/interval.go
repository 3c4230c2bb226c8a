package trend

import (
	"errors"
	"fmt"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

var ErrInvalidRange = errors.New("interval end is before its start")

const day = 24 * time.Hour

// DateInterval is a closed range of calendar days.
type DateInterval struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

func NewDateInterval(start, end time.Time) (DateInterval, error) {
	if end.Before(start) {
		return DateInterval{}, fmt.Errorf("%s > %s: %w", start.Format(dateFormat), end.Format(dateFormat), ErrInvalidRange)
	}
	return DateInterval{Start: start, End: end}, nil
}

// Duration is End - Start; a single-day interval has zero duration.
func (d DateInterval) Duration() time.Duration {
	return d.End.Sub(d.Start)
}

// DurationDays is Duration in whole days.
func (d DateInterval) DurationDays() int {
	return daysBetween(d.Start, d.End)
}

// Days is the number of calendar days covered, counting both ends.
func (d DateInterval) Days() int {
	return d.DurationDays() + 1
}

func (d DateInterval) Contains(t time.Time) bool {
	return !t.Before(d.Start) && !t.After(d.End)
}

// Overlaps is true when the ranges share at least one day, including touching ends.
func (d DateInterval) Overlaps(o DateInterval) bool {
	return !d.Start.After(o.End) && !d.End.Before(o.Start)
}

// OverlapDays counts the days in the intersection of both ranges.
func (d DateInterval) OverlapDays(o DateInterval) int {
	if !d.Overlaps(o) {
		return 0
	}
	from := d.Start
	if o.Start.After(from) {
		from = o.Start
	}
	to := d.End
	if o.End.Before(to) {
		to = o.End
	}
	return daysBetween(from, to) + 1
}

func (d DateInterval) String() string {
	return d.Start.Format(dateFormat) + " - " + d.End.Format(dateFormat)
}

func daysBetween(from, to time.Time) int {
	return int(history.DayOf(to).Sub(history.DayOf(from)) / day)
}
