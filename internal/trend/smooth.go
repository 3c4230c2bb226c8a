package trend

import (
	"errors"
	"fmt"
)

var ErrInvalidWidth = errors.New("smoothing width must be non-negative")

// FavoriteWidths is the cascade used to detect favorite periods.
var FavoriteWidths = []int{90, 60, 30}

// Smooth runs a moving average of the given width over the series. The window for a day d covers
// [d - (w/2 + w%2), d + w/2], so odd widths reach one day further into the past than into the future.
// Days outside the series contribute nothing but the divisor stays w+1, which pulls the edges of the
// series towards zero.
func Smooth(s Series, width int) (Series, error) {
	if width < 0 {
		return nil, fmt.Errorf("width %d: %w", width, ErrInvalidWidth)
	}
	return s.withValues(smoothValues(s.Values(), width)), nil
}

// Cascade applies Smooth once per width, in order. Widths are not commutative when any of them is odd.
func Cascade(s Series, widths ...int) (Series, error) {
	for _, w := range widths {
		if w < 0 {
			return nil, fmt.Errorf("width %d: %w", w, ErrInvalidWidth)
		}
	}
	v := s.Values()
	for _, w := range widths {
		v = smoothValues(v, w)
	}
	return s.withValues(v), nil
}

func smoothValues(v []float64, width int) []float64 {
	n := len(v)
	left := width/2 + width%2
	right := width / 2
	div := float64(width + 1)

	out := make([]float64, n)
	for i := range v {
		lo := max(i-left, 0)
		hi := min(i+right, n-1)
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += v[j]
		}
		out[i] = sum / div
	}
	return out
}
