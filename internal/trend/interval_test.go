package trend

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustInterval(t *testing.T, start, end time.Time) DateInterval {
	t.Helper()
	iv, err := NewDateInterval(start, end)
	require.NoError(t, err)
	return iv
}

func TestNewDateIntervalRejectsReversedRange(t *testing.T) {
	_, err := NewDateInterval(date(2024, 1, 5), date(2024, 1, 1))
	assert.True(t, errors.Is(err, ErrInvalidRange), "got %v", err)

	iv, err := NewDateInterval(date(2024, 1, 5), date(2024, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, 0, iv.DurationDays())
	assert.Equal(t, 1, iv.Days())
}

func TestOverlapDays(t *testing.T) {
	a := mustInterval(t, date(2024, 1, 1), date(2024, 1, 10))
	b := mustInterval(t, date(2024, 1, 5), date(2024, 1, 20))
	assert.Equal(t, 6, a.OverlapDays(b))

	touching := mustInterval(t, date(2024, 1, 10), date(2024, 1, 12))
	assert.True(t, a.Overlaps(touching))
	assert.Equal(t, 1, a.OverlapDays(touching))

	apart := mustInterval(t, date(2024, 2, 1), date(2024, 2, 3))
	assert.False(t, a.Overlaps(apart))
	assert.Equal(t, 0, a.OverlapDays(apart))

	inner := mustInterval(t, date(2024, 1, 3), date(2024, 1, 4))
	assert.Equal(t, 2, a.OverlapDays(inner))
}

func TestOverlapIsSymmetric(t *testing.T) {
	var intervals []DateInterval
	for s := 1; s <= 6; s++ {
		for e := s; e <= 8; e += 2 {
			intervals = append(intervals, mustInterval(t, date(2024, 3, s), date(2024, 3, e)))
		}
	}
	for _, a := range intervals {
		for _, b := range intervals {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "%v / %v", a, b)
			assert.Equal(t, a.OverlapDays(b), b.OverlapDays(a), "%v / %v", a, b)
		}
	}
}

func TestContains(t *testing.T) {
	iv := mustInterval(t, date(2024, 1, 1), date(2024, 1, 10))
	assert.True(t, iv.Contains(date(2024, 1, 1)))
	assert.True(t, iv.Contains(date(2024, 1, 10)))
	assert.True(t, iv.Contains(date(2024, 1, 5).Add(13*time.Hour)))
	assert.False(t, iv.Contains(date(2023, 12, 31)))
	assert.False(t, iv.Contains(date(2024, 1, 11)))
}

func TestIntervalString(t *testing.T) {
	iv := mustInterval(t, date(2024, 1, 1), date(2024, 1, 10))
	assert.Equal(t, "2024-01-01 - 2024-01-10", iv.String())
}
