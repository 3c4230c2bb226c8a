package trend

import "github.com/ademuri/spotify-history-tools/internal/history"

// Threshold returns the run-detection cutoff for a smoothed series: the mean of every value that is at
// least half of the peak. ok is false when the series has no positive peak.
func Threshold(s Series) (cut float64, ok bool) {
	var peak float64
	for _, p := range s {
		if p.Value > peak {
			peak = p.Value
		}
	}
	if peak <= 0 {
		return 0, false
	}

	var sum float64
	var n int
	for _, p := range s {
		if p.Value >= peak/2 {
			sum += p.Value
			n++
		}
	}
	cut = sum / float64(n)
	// Rounding in the sum must not lift the cutoff above every value, e.g. for a constant series.
	if cut > peak {
		cut = peak
	}
	return cut, true
}

// Intervals returns the maximal runs of days whose value is at or above Threshold, in date order.
func Intervals(s Series) []DateInterval {
	cut, ok := Threshold(s)
	if !ok {
		return []DateInterval{}
	}

	intervals := []DateInterval{}
	gap := true
	var current DateInterval
	for _, p := range s {
		if p.Value >= cut {
			if gap {
				current = DateInterval{Start: p.Date, End: p.Date}
				gap = false
			} else {
				current.End = p.Date
			}
			continue
		}
		if !gap {
			intervals = append(intervals, current)
			gap = true
		}
	}
	if !gap {
		intervals = append(intervals, current)
	}
	return intervals
}

// Favorites runs the whole pipeline for a selection: daily series, the widths cascade, then Intervals.
func Favorites(events []history.Event, sel history.Selector, widths ...int) ([]DateInterval, error) {
	s, err := BuildDaily(events, sel)
	if err != nil {
		return nil, err
	}
	smoothed, err := Cascade(s, widths...)
	if err != nil {
		return nil, err
	}
	return Intervals(smoothed), nil
}
